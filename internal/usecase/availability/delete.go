package availability

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type Delete struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDelete(repo domain.Repository, audit *audit.Dispatcher) *Delete {
	return &Delete{repo: repo, audit: audit}
}

func (uc *Delete) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) error {

	av, err := uc.repo.GetAvailability(ctx, id)
	if err != nil {
		return domain.ErrAvailabilityNotFound
	}

	if actor.Role != models.RoleSharpener || av.SharpenerID != actor.ID {
		return domain.ErrForbidden
	}

	active, err := uc.repo.CountActiveAppointments(ctx, av.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrAvailabilityInUse
	}

	if err := uc.repo.DeleteAvailability(ctx, av.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "availability_deleted",
		Entity:   "availability",
		EntityID: &av.ID,
	})

	return nil
}
