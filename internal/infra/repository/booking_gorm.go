package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Users / Locations
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetLocation(
	ctx context.Context,
	id uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *BookingGormRepository) GetMachine(
	ctx context.Context,
	id uint,
) (*models.Machine, error) {

	var machine models.Machine
	if err := r.db.WithContext(ctx).First(&machine, id).Error; err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *BookingGormRepository) UpdateSharpenerAggregate(
	ctx context.Context,
	sharpenerID uint,
	avg float64,
	count int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", sharpenerID).
		Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
		}).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetAvailability(
	ctx context.Context,
	id uint,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).First(&av, id).Error; err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *BookingGormRepository) CreateAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).Create(av).Error
}

func (r *BookingGormRepository) UpdateAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).Save(av).Error
}

func (r *BookingGormRepository) DeleteAvailability(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Availability{}, id).Error
}

func (r *BookingGormRepository) ListAvailabilitiesByLocation(
	ctx context.Context,
	locationID uint,
	machineID *uint,
) ([]models.Availability, error) {

	q := r.db.WithContext(ctx).Where("location_id = ?", locationID)
	if machineID != nil {
		q = q.Where("machine_id = ?", *machineID)
	}

	var avs []models.Availability
	if err := q.Order("date ASC, start_time ASC").Find(&avs).Error; err != nil {
		return nil, err
	}
	return avs, nil
}

func (r *BookingGormRepository) CountActiveAppointments(
	ctx context.Context,
	availabilityID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"availability_id = ? AND status IN ?",
			availabilityID, domain.ActiveStatuses,
		).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveAppointments(
	ctx context.Context,
	availabilityID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"availability_id = ? AND status IN ?",
			availabilityID, domain.ActiveStatuses,
		).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

// Reserve runs the check-then-insert critical section: the availability
// row is locked FOR UPDATE so concurrent reservations on the same window
// serialize, and the partial unique slot index catches anything that
// slips past the check.
func (r *BookingGormRepository) Reserve(
	ctx context.Context,
	availabilityID uint,
	fn domain.ReserveFn,
) (*models.Appointment, error) {

	var created *models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var av models.Availability
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&av, availabilityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAvailabilityNotFound
			}
			return err
		}

		var active []models.Appointment
		if err := tx.
			Where(
				"availability_id = ? AND status IN ?",
				availabilityID, domain.ActiveStatuses,
			).
			Order("start_time ASC").
			Find(&active).Error; err != nil {
			return err
		}

		ap, err := fn(&av, active)
		if err != nil {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrSlotTaken
			}
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
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

func (r *BookingGormRepository) UpdateAppointmentFrom(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListAppointmentsForSharpener(
	ctx context.Context,
	sharpenerID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("sharpener_id = ?", sharpenerID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListConfirmedOnOrBefore(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND date <= ?", string(domain.StatusConfirmed), date).
		Order("date ASC, start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Ratings
// --------------------------------------------------

func (r *BookingGormRepository) EnsureRatingStub(
	ctx context.Context,
	ap *models.Appointment,
) error {

	rating := models.Rating{
		AppointmentID: ap.ID,
		CustomerID:    ap.CustomerID,
		SharpenerID:   ap.SharpenerID,
	}

	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", ap.ID).
		FirstOrCreate(&rating).Error

	// A concurrent sweep may have created the stub first; that is fine.
	if err != nil && httperr.IsUniqueViolation(err) {
		return nil
	}
	return err
}

func (r *BookingGormRepository) GetRatingByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Rating, error) {

	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *BookingGormRepository) SaveRating(
	ctx context.Context,
	rating *models.Rating,
) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *BookingGormRepository) SharpenerRatingStats(
	ctx context.Context,
	sharpenerID uint,
) (float64, int, error) {

	var stats struct {
		Avg   float64
		Count int
	}

	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("sharpener_id = ? AND score IS NOT NULL", sharpenerID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	return stats.Avg, stats.Count, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
