package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
)

type Cancel struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewCancel(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Cancel {
	return &Cancel{repo: repo, notify: notify, audit: audit, clk: clk}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, loc, now, err := loadForTransition(ctx, uc.repo, uc.clk, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, actor, now, tzOf(loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Tell the counterparty.
	counterpartyID := ap.SharpenerID
	if actor.ID == ap.SharpenerID {
		counterpartyID = ap.CustomerID
	}
	if counterparty, err := uc.repo.GetUser(ctx, counterpartyID); err == nil {
		uc.notify.Dispatch(notify.Message{
			Event:     notify.EventBookingCancelled,
			Recipient: counterparty.Email,
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
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
