package uploads

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/salaoflow/salon-scheduler/internal/config"
	"github.com/salaoflow/salon-scheduler/internal/httperr"
)

const maxDimension = 1024

// Uploader re-encodes images to webp and stores them in S3. Logos and
// service photos go through the same pipeline.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	})

	baseURL := cfg.S3BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &Uploader{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}
}

// Upload decodes, downscales, converts to webp and stores the image under
// prefix (e.g. "logos", "services"). Returns the public URL.
func (u *Uploader) Upload(ctx context.Context, prefix string, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_image")
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 85}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return u.baseURL + "/" + key, nil
}

func downscale(src image.Image) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return src
	}

	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
