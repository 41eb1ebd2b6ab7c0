package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salaoflow/salon-scheduler/internal/domain/booking"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) UpdateSalon(
	ctx context.Context,
	salon *models.Salon,
) error {
	return r.db.WithContext(ctx).Save(salon).Error
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Busy sources
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyAppointments(
	ctx context.Context,
	salonID uint,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "salon_id", "start_time", "end_time", "status").
		Where(
			"salon_id = ? AND status <> 'cancelled' AND start_time >= ?",
			salonID, from,
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BookingGormRepository) ListBlockedTimes(
	ctx context.Context,
	salonID uint,
	from time.Time,
) ([]models.BlockedTime, error) {

	var blocks []models.BlockedTime
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND start_time >= ?", salonID, from).
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment persists inside a transaction that locks conflicting
// rows, so two sequential commits for the same window cannot both land: the
// second writer observes the first one's committed interval and fails.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if !ap.EndTime.After(ap.StartTime) {
		return domain.ErrInvalidRange
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if domain.ContributesBusy(domain.Status(ap.Status)) {
			if err := assertNoConflict(tx, ap.SalonID, ap.StartTime, ap.EndTime, 0); err != nil {
				return err
			}
		}
		return tx.Create(ap).Error
	})
}

func assertNoConflict(tx *gorm.DB, salonID uint, start, end time.Time, excludeID uint) error {
	var count int64
	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"salon_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			salonID, end, start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrSlotUnavailable
	}

	if err := tx.
		Model(&models.BlockedTime{}).
		Where(
			"salon_id = ? AND start_time < ? AND end_time > ?",
			salonID, end, start,
		).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrSlotUnavailable
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentForSalon(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Delete(&models.Appointment{}).Error
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
