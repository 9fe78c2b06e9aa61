package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type Complete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clk   clock.Clock
}

func NewComplete(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Complete {
	return &Complete{repo: repo, audit: audit, clk: clk}
}

func (uc *Complete) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, loc, now, err := loadForTransition(ctx, uc.repo, uc.clk, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, actor, now, tzOf(loc)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Stub normally exists since confirmation; this is a no-op then.
	if err := uc.repo.EnsureRatingStub(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
