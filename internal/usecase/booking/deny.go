package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
)

type Deny struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewDeny(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Deny {
	return &Deny{repo: repo, notify: notify, audit: audit, clk: clk}
}

func (uc *Deny) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, _, now, err := loadForTransition(ctx, uc.repo, uc.clk, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Deny(ap, actor, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// The slot is free again the moment the status flips; the resolver
	// recomputes free slots from live statuses.
	if customer, err := uc.repo.GetUser(ctx, ap.CustomerID); err == nil {
		uc.notify.Dispatch(notify.Message{
			Event:     notify.EventBookingDenied,
			Recipient: customer.Email,
			Payload: map[string]any{
				"reference": ap.Reference,
				"date":      ap.Date,
				"start":     ap.StartTime,
				"end":       ap.EndTime,
			},
		})
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_denied",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
