package entitlement

import (
	"time"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

// ===============================
// Subscription Status
// ===============================

type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusBlocked   Status = "blocked"
	StatusCancelled Status = "cancelled"
)

// TrialDays is the courtesy window counted from salon creation.
const TrialDays = 10

// Decision is the gating outcome consumed before any admin or booking
// surface is exposed to a tenant.
type Decision struct {
	Allowed bool `json:"allowed"`

	// DerivedStatus is the status as of now. The stored enum is never
	// auto-flipped on expiry; this field is the read-time truth.
	DerivedStatus Status `json:"derived_status"`

	// DaysRemaining is >= 0 while allowed with a known horizon, -1 when the
	// entitlement has no end (lifetime, or active without an end date).
	DaysRemaining int `json:"days_remaining"`
}

// Evaluate derives the gating decision from the stored subscription fields
// and the wall clock. Pure: no store access, no mutation.
//
// Precedence: the lifetime-free flag short-circuits every stored status,
// including blocked. Expiry is computed lazily here, never written back.
func Evaluate(salon *models.Salon, now time.Time) Decision {
	if salon.IsLifetimeFree {
		return Decision{Allowed: true, DerivedStatus: StatusActive, DaysRemaining: -1}
	}

	switch Status(salon.SubscriptionStatus) {
	case StatusActive:
		if salon.SubscriptionEndDate == nil {
			return Decision{Allowed: true, DerivedStatus: StatusActive, DaysRemaining: -1}
		}
		if salon.SubscriptionEndDate.Before(now) {
			return Decision{Allowed: false, DerivedStatus: StatusExpired}
		}
		return Decision{
			Allowed:       true,
			DerivedStatus: StatusActive,
			DaysRemaining: daysUntil(now, *salon.SubscriptionEndDate),
		}

	case StatusTrial:
		trialEnd := salon.CreatedAt.AddDate(0, 0, TrialDays)
		if now.Sub(salon.CreatedAt) > TrialDays*24*time.Hour {
			return Decision{Allowed: false, DerivedStatus: StatusExpired}
		}
		return Decision{
			Allowed:       true,
			DerivedStatus: StatusTrial,
			DaysRemaining: daysUntil(now, trialEnd),
		}

	case StatusBlocked:
		return Decision{Allowed: false, DerivedStatus: StatusBlocked}

	case StatusCancelled:
		return Decision{Allowed: false, DerivedStatus: StatusCancelled}

	default:
		return Decision{Allowed: false, DerivedStatus: StatusExpired}
	}
}

func daysUntil(now, end time.Time) int {
	d := int(end.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// ===============================
// Admin Transitions
// ===============================

// Grant activates a subscription until endDate and clears the lifetime
// override (trial -> active, or a courtesy extension).
func Grant(salon *models.Salon, plan string, endDate time.Time) {
	salon.SubscriptionStatus = string(StatusActive)
	salon.SubscriptionPlan = plan
	salon.SubscriptionEndDate = &endDate
	salon.IsLifetimeFree = false
}

func Block(salon *models.Salon) {
	salon.SubscriptionStatus = string(StatusBlocked)
}

func Unblock(salon *models.Salon) {
	salon.SubscriptionStatus = string(StatusActive)
}

func Cancel(salon *models.Salon) {
	salon.SubscriptionStatus = string(StatusCancelled)
}

func SetLifetimeFree(salon *models.Salon, lifetime bool) {
	salon.IsLifetimeFree = lifetime
}
