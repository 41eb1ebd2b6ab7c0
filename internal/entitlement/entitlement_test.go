package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

var baseNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func salonWith(status Status) *models.Salon {
	return &models.Salon{
		SubscriptionStatus: string(status),
		CreatedAt:          baseNow.AddDate(0, 0, -3),
	}
}

func TestEvaluateTrial(t *testing.T) {
	salon := salonWith(StatusTrial)

	dec := Evaluate(salon, baseNow)
	assert.True(t, dec.Allowed)
	assert.Equal(t, StatusTrial, dec.DerivedStatus)
	assert.Equal(t, 7, dec.DaysRemaining)
}

func TestEvaluateTrialExpired(t *testing.T) {
	salon := salonWith(StatusTrial)
	salon.CreatedAt = baseNow.AddDate(0, 0, -11)

	dec := Evaluate(salon, baseNow)
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusExpired, dec.DerivedStatus)

	// o enum armazenado não é reescrito: a expiração é derivada na leitura
	assert.Equal(t, string(StatusTrial), salon.SubscriptionStatus)
}

func TestEvaluateTrialBoundary(t *testing.T) {
	salon := salonWith(StatusTrial)
	salon.CreatedAt = baseNow.Add(-TrialDays * 24 * time.Hour)

	// exatamente no limite ainda é trial
	dec := Evaluate(salon, baseNow)
	assert.True(t, dec.Allowed)
	assert.Equal(t, StatusTrial, dec.DerivedStatus)
	assert.Equal(t, 0, dec.DaysRemaining)

	dec = Evaluate(salon, baseNow.Add(time.Second))
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusExpired, dec.DerivedStatus)
}

func TestEvaluateActive(t *testing.T) {
	end := baseNow.AddDate(0, 0, 30)
	salon := salonWith(StatusActive)
	salon.SubscriptionEndDate = &end

	dec := Evaluate(salon, baseNow)
	assert.True(t, dec.Allowed)
	assert.Equal(t, StatusActive, dec.DerivedStatus)
	assert.Equal(t, 30, dec.DaysRemaining)
}

func TestEvaluateActiveExpired(t *testing.T) {
	end := baseNow.AddDate(0, 0, -1)
	salon := salonWith(StatusActive)
	salon.SubscriptionEndDate = &end

	dec := Evaluate(salon, baseNow)
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusExpired, dec.DerivedStatus)
	assert.Equal(t, string(StatusActive), salon.SubscriptionStatus)
}

func TestEvaluateActiveWithoutEndDate(t *testing.T) {
	salon := salonWith(StatusActive)

	dec := Evaluate(salon, baseNow)
	assert.True(t, dec.Allowed)
	assert.Equal(t, -1, dec.DaysRemaining)
}

func TestEvaluateBlockedAndCancelled(t *testing.T) {
	dec := Evaluate(salonWith(StatusBlocked), baseNow)
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusBlocked, dec.DerivedStatus)

	dec = Evaluate(salonWith(StatusCancelled), baseNow)
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusCancelled, dec.DerivedStatus)
}

func TestEvaluateUnknownStatus(t *testing.T) {
	salon := salonWith(Status("weird"))

	dec := Evaluate(salon, baseNow)
	assert.False(t, dec.Allowed)
	assert.Equal(t, StatusExpired, dec.DerivedStatus)
}

func TestLifetimeOverridesEverything(t *testing.T) {
	for _, status := range []Status{
		StatusTrial, StatusActive, StatusExpired, StatusBlocked, StatusCancelled,
	} {
		salon := salonWith(status)
		salon.IsLifetimeFree = true
		salon.CreatedAt = baseNow.AddDate(-1, 0, 0)

		dec := Evaluate(salon, baseNow)
		assert.True(t, dec.Allowed, "status %s", status)
		assert.Equal(t, StatusActive, dec.DerivedStatus)
		assert.Equal(t, -1, dec.DaysRemaining)
	}
}

func TestTransitions(t *testing.T) {
	salon := salonWith(StatusTrial)
	end := baseNow.AddDate(0, 0, 30)

	Grant(salon, "mensal", end)
	assert.Equal(t, string(StatusActive), salon.SubscriptionStatus)
	assert.Equal(t, "mensal", salon.SubscriptionPlan)
	assert.Equal(t, end, *salon.SubscriptionEndDate)
	assert.False(t, salon.IsLifetimeFree)

	Block(salon)
	assert.Equal(t, string(StatusBlocked), salon.SubscriptionStatus)
	assert.False(t, Evaluate(salon, baseNow).Allowed)

	Unblock(salon)
	assert.Equal(t, string(StatusActive), salon.SubscriptionStatus)
	assert.True(t, Evaluate(salon, baseNow).Allowed)

	Cancel(salon)
	assert.Equal(t, string(StatusCancelled), salon.SubscriptionStatus)

	SetLifetimeFree(salon, true)
	assert.True(t, Evaluate(salon, baseNow).Allowed)
}

func TestDescribe(t *testing.T) {
	salon := salonWith(StatusTrial)
	assert.Equal(t, "Período de teste — 7 dias restantes", Describe(salon, baseNow))

	salon.IsLifetimeFree = true
	assert.Equal(t, "Vitalício", Describe(salon, baseNow))

	blocked := salonWith(StatusBlocked)
	assert.Equal(t, "Bloqueado", Describe(blocked, baseNow))

	active := salonWith(StatusActive)
	assert.Equal(t, "Ativo", Describe(active, baseNow))
}
