package availability

import (
	"context"
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type UpdateInput struct {
	Date  *string
	Start *string
	End   *string
	Price *float64
}

type Update struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdate(repo domain.Repository, audit *audit.Dispatcher) *Update {
	return &Update{repo: repo, audit: audit}
}

func (uc *Update) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
	in UpdateInput,
) (*models.Availability, error) {

	av, err := uc.repo.GetAvailability(ctx, id)
	if err != nil {
		return nil, domain.ErrAvailabilityNotFound
	}

	if actor.Role != models.RoleSharpener || av.SharpenerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	// A window with live bookings is frozen; the sharpener has to resolve
	// the pending/confirmed appointments first.
	active, err := uc.repo.CountActiveAppointments(ctx, av.ID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, domain.ErrAvailabilityInUse
	}

	if in.Date != nil {
		if _, err := time.Parse("2006-01-02", *in.Date); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		av.Date = *in.Date
	}
	if in.Start != nil {
		av.StartTime = *in.Start
	}
	if in.End != nil {
		av.EndTime = *in.End
	}
	if in.Price != nil {
		av.Price = *in.Price
	}

	window := domain.TimeInterval{Start: av.StartTime, End: av.EndTime}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAvailability(ctx, av); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "availability_updated",
		Entity:   "availability",
		EntityID: &av.ID,
	})

	return av, nil
}
