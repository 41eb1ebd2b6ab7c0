package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/models"
	"github.com/salaoflow/salon-scheduler/internal/schedule"
)

func createUC(repo domain.Repository, now time.Time) *CreateAppointment {
	uc := NewCreateAppointment(repo, nopDispatcher())
	uc.now = func() time.Time { return now }
	return uc
}

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		SalonID:     1,
		ClientName:  "Maria Souza",
		ClientPhone: "+55 11 91234-5678",
		ServiceID:   10,
		Date:        monday,
		Time:        "10:00",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	uc := createUC(repo, longBefore(t))

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, mustTime(t, monday, "10:00"), ap.StartTime)
	assert.Equal(t, mustTime(t, monday, "11:00"), ap.EndTime)
	assert.Equal(t, "confirmed", ap.Status)

	// cliente criado e vinculado
	require.Len(t, repo.clients, 1)
	assert.Equal(t, repo.clients[0].ID, ap.ClientID)
}

func TestCreateAppointmentReusesClientByPhone(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	uc := createUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.Time = "14:00"
	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, repo.clients, 1)
}

func TestCreateAppointmentConflict(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:30"),
		EndTime:   mustTime(t, monday, "11:30"),
	})
	uc := createUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), baseInput())
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	// nada persistido além do agendamento pré-existente
	assert.Len(t, repo.appointments, 1)
	assert.Empty(t, repo.clients)
}

func TestCreateAppointmentSequentialDoubleBooking(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	uc := createUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	// segundo cliente tenta exatamente o mesmo horário: a releitura vê a
	// primeira gravação e rejeita
	in := baseInput()
	in.ClientName = "João Lima"
	in.ClientPhone = "+55 11 99999-0000"
	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointmentTouchingWindows(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "09:00"),
		EndTime:   mustTime(t, monday, "10:00"),
	})
	uc := createUC(repo, longBefore(t))

	// começa exatamente onde o anterior termina
	_, err := uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

func TestCreateAppointmentOverCancelled(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "cancelled",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})
	uc := createUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

func TestCreateAppointmentBlockedTime(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.blocked = append(repo.blocked, models.BlockedTime{
		SalonID:   1,
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "12:00"),
	})
	uc := createUC(repo, longBefore(t))

	_, err := uc.Execute(context.Background(), baseInput())
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestCreateAppointmentInvalidInput(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	uc := createUC(repo, longBefore(t))

	in := baseInput()
	in.Date = "02/03/2026"
	_, err := uc.Execute(context.Background(), in)
	assert.EqualError(t, err, "invalid_date_or_time")

	in = baseInput()
	in.ServiceID = 999
	_, err = uc.Execute(context.Background(), in)
	assert.EqualError(t, err, "service_not_found")

	in = baseInput()
	in.Status = domain.Status("noshow")
	_, err = uc.Execute(context.Background(), in)
	assert.EqualError(t, err, "invalid_status")
}

func TestCreateAppointmentAdminCancelledSkipsConflictCheck(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})
	uc := createUC(repo, longBefore(t))

	// registro histórico já cancelado não ocupa janela, pode colidir
	in := baseInput()
	in.Status = domain.StatusCancelled
	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
}

// ======================================================
// RESCHEDULE
// ======================================================

func TestRescheduleExcludesOwnInterval(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, ServiceID: 10, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})

	uc := NewRescheduleAppointment(repo, nopDispatcher())

	// novo horário sobrepõe o próprio intervalo atual: permitido
	ap, err := uc.Execute(context.Background(), 1, nil, 50, monday, "10:30")
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, monday, "10:30"), ap.StartTime)
	assert.Equal(t, mustTime(t, monday, "11:30"), ap.EndTime)
	assert.Equal(t, "confirmed", ap.Status)
}

func TestRescheduleConflictsWithOthers(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments,
		&models.Appointment{
			ID: 50, SalonID: 1, ServiceID: 10, Status: "confirmed",
			StartTime: mustTime(t, monday, "10:00"),
			EndTime:   mustTime(t, monday, "11:00"),
		},
		&models.Appointment{
			ID: 51, SalonID: 1, ServiceID: 10, Status: "confirmed",
			StartTime: mustTime(t, monday, "14:00"),
			EndTime:   mustTime(t, monday, "15:00"),
		},
	)

	uc := NewRescheduleAppointment(repo, nopDispatcher())

	_, err := uc.Execute(context.Background(), 1, nil, 50, monday, "14:30")
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

// ======================================================
// CANCEL / STATUS
// ======================================================

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})

	uc := NewCancelAppointment(repo, nopDispatcher())

	ap, err := uc.Execute(context.Background(), 1, nil, 50)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	// cancelar de novo é inválido
	_, err = uc.Execute(context.Background(), 1, nil, 50)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// isolamento de tenant: outro salão não enxerga o agendamento
	_, err = uc.Execute(context.Background(), 2, nil, 50)
	assert.EqualError(t, err, "appointment_not_found")
}

func TestUpdateStatusUncancelRechecksConflict(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	cancelledAt := mustTime(t, monday, "08:00")
	repo.appointments = append(repo.appointments,
		&models.Appointment{
			ID: 50, SalonID: 1, Status: "cancelled", CancelledAt: &cancelledAt,
			StartTime: mustTime(t, monday, "10:00"),
			EndTime:   mustTime(t, monday, "11:00"),
		},
		// outro cliente ficou com a janela liberada
		&models.Appointment{
			ID: 51, SalonID: 1, Status: "confirmed",
			StartTime: mustTime(t, monday, "10:00"),
			EndTime:   mustTime(t, monday, "11:00"),
		},
	)

	uc := NewUpdateAppointmentStatus(repo, nopDispatcher())

	_, err := uc.Execute(context.Background(), 1, nil, 50, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)
}

func TestUpdateStatusUncancelWhenFree(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	cancelledAt := mustTime(t, monday, "08:00")
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "cancelled", CancelledAt: &cancelledAt,
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})

	uc := NewUpdateAppointmentStatus(repo, nopDispatcher())

	ap, err := uc.Execute(context.Background(), 1, nil, 50, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	assert.Nil(t, ap.CancelledAt)
}

func TestUpdateStatusComplete(t *testing.T) {
	repo := newFakeRepo(
		salonOpenOn(1, schedule.TimeRange{Start: "09:00", End: "18:00"}),
		serviceMin(60),
	)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, SalonID: 1, Status: "confirmed",
		StartTime: mustTime(t, monday, "10:00"),
		EndTime:   mustTime(t, monday, "11:00"),
	})

	uc := NewUpdateAppointmentStatus(repo, nopDispatcher())

	ap, err := uc.Execute(context.Background(), 1, nil, 50, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	// concluído não cancela
	_, err = uc.Execute(context.Background(), 1, nil, 50, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
