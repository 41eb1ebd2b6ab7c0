package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

// 2026-03-02 é uma segunda-feira.
const monday = "2026-03-02"

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := clock.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustTime(t *testing.T, date, hm string) time.Time {
	t.Helper()
	ts, err := clock.ParseDateTime(date, hm)
	require.NoError(t, err)
	return ts
}

func salonOpenOn(dayOfWeek int, slots ...schedule.TimeRange) *models.Salon {
	return &models.Salon{
		ID:   1,
		Slug: "studio-glow",
		OpeningHours: schedule.OpeningHours{
			{DayOfWeek: dayOfWeek, IsOpen: true, Slots: slots},
		},
	}
}

func serviceMin(durationMin int) *models.Service {
	return &models.Service{ID: 10, SalonID: 1, Name: "Corte", DurationMin: durationMin}
}

func availabilityUC(repo domain.Repository, now time.Time) *GetAvailability {
	uc := NewGetAvailability(repo)
	uc.now = func() time.Time { return now }
	return uc
}

func starts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

// longBefore garante que o filtro de passado não interfere no cenário.
func longBefore(t *testing.T) time.Time {
	t.Helper()
	return mustDate(t, "2026-01-01")
}

func TestAvailabilityEmptyDay(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00"},
		starts(slots))

	// o fim de cada slot segue a duração do serviço, não o passo da grade
	assert.Equal(t, "10:00", slots[0].End)
}

func TestAvailabilitySkipsBusyWindow(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	// 09:00-10:00 encosta no ocupado sem conflitar; 09:30, 10:00 e 10:30
	// sobrepõem; 11:00-12:00 volta a caber
	assert.Equal(t, []string{"09:00", "11:00"}, starts(slots))
}

func TestAvailabilityTouchingIsNotConflict(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(30),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, starts(slots))
}

func TestAvailabilityFullDayBlocked(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	repo.blocked = append(repo.blocked, models.BlockedTime{
		SalonID:   1,
		StartTime: mustTime(t, monday, "00:00"),
		EndTime:   mustTime(t, monday, "23:59"),
	})
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestAvailabilityClosedDay(t *testing.T) {
	// aberto só na segunda; consulta num domingo
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, "2026-03-01"),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestAvailabilityDoesNotSpillAcrossBreak(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1,
			schedule.TimeRange{Start: "09:00", End: "12:00"},
			schedule.TimeRange{Start: "14:00", End: "16:00"},
		),
		serviceMin(60),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	// 11:30 não entra: 12:30 invadiria o intervalo de almoço
	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "14:00", "14:30", "15:00"},
		starts(slots))
}

func TestAvailabilityServiceLongerThanRange(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "10:00"}),
		serviceMin(90),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityFiltersPastSlots(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	uc := availabilityUC(repo, mustTime(t, monday, "10:15"))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:30", "11:00"}, starts(slots))
}

func TestAvailabilityCancelledFreesSlot(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "cancelled",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00"},
		starts(slots))
}

func TestAvailabilityUnusableRangeYieldsNothing(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "12:00", End: "12:00"}),
		serviceMin(30),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityDeduplicatesOverlappingRanges(t *testing.T) {
	// agenda malformada com sub-faixas sobrepostas: cada início aparece uma vez
	repo := newFakeRepo(
		salonOpenOn(1,
			schedule.TimeRange{Start: "09:00", End: "11:00"},
			schedule.TimeRange{Start: "09:00", End: "11:00"},
		),
		serviceMin(30),
	)
	uc := availabilityUC(repo, longBefore(t))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, starts(slots))
}

func TestAvailabilityServiceNotFound(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	uc := availabilityUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 999, Date: mustDate(t, monday),
	})
	require.Error(t, err)
	assert.EqualError(t, err, "service_not_found")
}

func TestAvailabilityPropagatesBusyReadFailure(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "12:00"}),
		serviceMin(60),
	)
	repo.busyErr = assert.AnError
	uc := availabilityUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 10, Date: mustDate(t, monday),
	})
	assert.ErrorIs(t, err, assert.AnError)
}
