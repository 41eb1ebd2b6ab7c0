package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/httperr"
)

// isUnavailable separates gateway outages from ordinary lookup outcomes.
// Not-found, cancellation and business errors must surface as-is, never
// trigger the fallback.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var be httperr.BusinessError
	return !errors.As(err, &be)
}
