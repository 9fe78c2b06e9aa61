package booking

import (
	"context"
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/timezone"
)

// loadForTransition fetches the appointment and resolves "now" in its
// location's timezone; every lifecycle precondition is evaluated on the
// shop's wall clock.
func loadForTransition(
	ctx context.Context,
	repo domain.Repository,
	clk clock.Clock,
	appointmentID uint,
) (*models.Appointment, *models.Location, time.Time, error) {

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, nil, time.Time{}, httperr.ErrBusiness("appointment_not_found")
	}

	loc, err := repo.GetLocation(ctx, ap.LocationID)
	if err != nil {
		return nil, nil, time.Time{}, httperr.ErrBusiness("location_not_found")
	}

	now := clk.Now().In(timezone.Location(loc.Timezone))
	return ap, loc, now, nil
}

func tzOf(loc *models.Location) *time.Location {
	return timezone.Location(loc.Timezone)
}
