package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
)

type Confirm struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewConfirm(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Confirm {
	return &Confirm{repo: repo, notify: notify, audit: audit, clk: clk}
}

// Execute accepts a pending request. Confirmation is the trust boundary:
// the rating stub is created and the customer receives the sharpener's
// full contact and street address.
func (uc *Confirm) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, loc, now, err := loadForTransition(ctx, uc.repo, uc.clk, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(ap, actor, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if err := uc.repo.EnsureRatingStub(ctx, ap); err != nil {
		return nil, err
	}

	if customer, err := uc.repo.GetUser(ctx, ap.CustomerID); err == nil {
		sharpener, _ := uc.repo.GetUser(ctx, ap.SharpenerID)
		payload := map[string]any{
			"reference": ap.Reference,
			"date":      ap.Date,
			"start":     ap.StartTime,
			"end":       ap.EndTime,
			"street":    loc.Street,
			"city":      loc.City,
			"state":     loc.State,
			"zip":       loc.Zip,
		}
		if sharpener != nil {
			payload["sharpener_name"] = sharpener.Name
			payload["sharpener_phone"] = sharpener.Phone
			payload["sharpener_email"] = sharpener.Email
		}
		uc.notify.Dispatch(notify.Message{
			Event:     notify.EventBookingConfirmed,
			Recipient: customer.Email,
			Payload:   payload,
		})
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
