package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/models"
)

// ReserveFn runs inside the reservation critical section with the
// availability row locked and its active appointments loaded. It returns
// the appointment to insert, or an error to abort.
type ReserveFn func(av *models.Availability, active []models.Appointment) (*models.Appointment, error)

type Repository interface {
	// -------- Users / Locations --------
	GetUser(ctx context.Context, id uint) (*models.User, error)

	GetLocation(ctx context.Context, id uint) (*models.Location, error)

	GetMachine(ctx context.Context, id uint) (*models.Machine, error)

	UpdateSharpenerAggregate(
		ctx context.Context,
		sharpenerID uint,
		avg float64,
		count int,
	) error

	// -------- Availability --------
	GetAvailability(ctx context.Context, id uint) (*models.Availability, error)

	CreateAvailability(ctx context.Context, av *models.Availability) error

	UpdateAvailability(ctx context.Context, av *models.Availability) error

	DeleteAvailability(ctx context.Context, id uint) error

	ListAvailabilitiesByLocation(
		ctx context.Context,
		locationID uint,
		machineID *uint,
	) ([]models.Availability, error)

	// CountActiveAppointments counts pending/confirmed appointments
	// referencing the availability (mutation guard).
	CountActiveAppointments(ctx context.Context, availabilityID uint) (int64, error)

	// -------- Appointments --------
	ListActiveAppointments(
		ctx context.Context,
		availabilityID uint,
	) ([]models.Appointment, error)

	// Reserve executes fn atomically against the availability's current
	// appointment set (row lock + partial unique slot index) and inserts
	// the returned appointment as one critical section.
	Reserve(ctx context.Context, availabilityID uint, fn ReserveFn) (*models.Appointment, error)

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// UpdateAppointmentFrom persists ap only if its stored status still
	// equals from; returns false when another writer got there first.
	UpdateAppointmentFrom(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) (bool, error)

	ListAppointmentsForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error)

	ListAppointmentsForSharpener(ctx context.Context, sharpenerID uint) ([]models.Appointment, error)

	// ListConfirmedOnOrBefore returns confirmed appointments whose date is
	// on or before the given YYYY-MM-DD date (sweep candidates).
	ListConfirmedOnOrBefore(ctx context.Context, date string) ([]models.Appointment, error)

	// -------- Ratings --------
	EnsureRatingStub(ctx context.Context, ap *models.Appointment) error

	GetRatingByAppointment(ctx context.Context, appointmentID uint) (*models.Rating, error)

	SaveRating(ctx context.Context, rating *models.Rating) error

	// SharpenerRatingStats averages the scored ratings of a sharpener.
	SharpenerRatingStats(ctx context.Context, sharpenerID uint) (avg float64, count int, err error)
}
