package booking

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/audit"
	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

// fakeRepo é um gateway em memória para os testes de caso de uso. Guarda o
// estado exatamente como persistido: as releituras de conflito enxergam tudo
// que já foi gravado.
type fakeRepo struct {
	salons   map[uint]*models.Salon
	services map[uint]*models.Service

	clients      []*models.Client
	appointments []*models.Appointment
	blocked      []models.BlockedTime

	nextID uint

	// erros injetáveis
	busyErr error
}

func newFakeRepo(salon *models.Salon, services ...*models.Service) *fakeRepo {
	r := &fakeRepo{
		salons:   map[uint]*models.Salon{salon.ID: salon},
		services: map[uint]*models.Service{},
		nextID:   100,
	}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	if s, ok := r.salons[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error) {
	for _, s := range r.salons {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateSalon(ctx context.Context, salon *models.Salon) error {
	r.salons[salon.ID] = salon
	return nil
}

func (r *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok && s.SalonID == salonID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name, phone, email string,
) (*models.Client, error) {
	for _, c := range r.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: r.id(), SalonID: salonID, Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *fakeRepo) ListBusyAppointments(
	ctx context.Context,
	salonID uint,
	from time.Time,
) ([]models.Appointment, error) {
	if r.busyErr != nil {
		return nil, r.busyErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && !ap.StartTime.Before(from) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBlockedTimes(
	ctx context.Context,
	salonID uint,
	from time.Time,
) ([]models.BlockedTime, error) {
	var out []models.BlockedTime
	for _, b := range r.blocked {
		if b.SalonID == salonID && !b.StartTime.Before(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = r.id()
	r.appointments = append(r.appointments, ap)
	return nil
}

func (r *fakeRepo) GetAppointmentForSalon(
	ctx context.Context,
	appointmentID, salonID uint,
) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.SalonID == salonID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	for i, cur := range r.appointments {
		if cur.ID == ap.ID {
			r.appointments[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) DeleteAppointment(ctx context.Context, appointmentID, salonID uint) error {
	for i, ap := range r.appointments {
		if ap.ID == appointmentID && ap.SalonID == salonID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	start, end time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func nopDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}
