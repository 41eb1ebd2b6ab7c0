package repository

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/salaoflow/salon-scheduler/internal/cache"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

const recoveryInterval = time.Minute

// FailoverRepository fronts the primary gateway with a Redis snapshot
// fallback for salon reads. Successful primary reads write through to the
// cache; when the primary is down, salon lookups degrade to the snapshot.
//
// Busy-interval reads and every write go to the primary only: serving stale
// appointment data would fabricate availability, which is worse than an
// outage error.
type FailoverRepository struct {
	domain.Repository

	salons *cache.SalonCache
	log    *zap.Logger

	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix seconds of the last primary probe
}

func NewFailoverRepository(
	primary domain.Repository,
	salons *cache.SalonCache,
	log *zap.Logger,
) *FailoverRepository {
	return &FailoverRepository{
		Repository: primary,
		salons:     salons,
		log:        log,
	}
}

// shouldTryPrimary allows one probe per recovery interval while marked down.
func (r *FailoverRepository) shouldTryPrimary() bool {
	if !r.isDown.Load() {
		return true
	}

	last := time.Unix(r.lastCheck.Load(), 0)
	if time.Since(last) >= recoveryInterval {
		r.lastCheck.Store(time.Now().Unix())
		return true
	}
	return false
}

func (r *FailoverRepository) markUp() {
	if r.isDown.Swap(false) {
		r.log.Info("primary gateway recovered")
	}
}

func (r *FailoverRepository) markDown(err error) {
	if !r.isDown.Swap(true) {
		r.log.Warn("primary gateway unreachable, degrading salon reads", zap.Error(err))
	}
	r.lastCheck.Store(time.Now().Unix())
}

func (r *FailoverRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	if r.shouldTryPrimary() {
		salon, err := r.Repository.GetSalonByID(ctx, id)
		if err == nil {
			r.markUp()
			if cacheErr := r.salons.Put(ctx, salon); cacheErr != nil {
				r.log.Debug("salon snapshot write failed", zap.Error(cacheErr))
			}
			return salon, nil
		}
		if !isUnavailable(err) {
			return nil, err
		}
		r.markDown(err)
	}

	salon, err := r.salons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return salon, nil
}

func (r *FailoverRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	if r.shouldTryPrimary() {
		salon, err := r.Repository.GetSalonBySlug(ctx, slug)
		if err == nil {
			r.markUp()
			if cacheErr := r.salons.Put(ctx, salon); cacheErr != nil {
				r.log.Debug("salon snapshot write failed", zap.Error(cacheErr))
			}
			return salon, nil
		}
		if !isUnavailable(err) {
			return nil, err
		}
		r.markDown(err)
	}

	salon, err := r.salons.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return salon, nil
}

func (r *FailoverRepository) UpdateSalon(
	ctx context.Context,
	salon *models.Salon,
) error {
	if err := r.Repository.UpdateSalon(ctx, salon); err != nil {
		return err
	}
	r.salons.Invalidate(ctx, salon)
	return nil
}

var _ domain.Repository = (*FailoverRepository)(nil)
