package booking

import (
	"context"
	"time"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

// Repository is the persistence gateway consumed by the booking use cases.
// Implementations must propagate gateway failures: fabricating availability
// data is worse than surfacing an outage.
type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	UpdateSalon(
		ctx context.Context,
		salon *models.Salon,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Busy sources --------
	ListBusyAppointments(
		ctx context.Context,
		salonID uint,
		from time.Time,
	) ([]models.Appointment, error)

	ListBlockedTimes(
		ctx context.Context,
		salonID uint,
		from time.Time,
	) ([]models.BlockedTime, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment persists a new appointment. Implementations backed by
	// a transactional store additionally serialize against concurrent writes
	// of the same window (row locks / exclusion constraint) and return
	// ErrSlotUnavailable when the committed state already overlaps.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForSalon(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
