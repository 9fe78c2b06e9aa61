package availability

import (
	"context"
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	LocationID uint
	MachineID  uint
	Date       string // YYYY-MM-DD
	Start      string // HH:MM
	End        string // HH:MM
	Price      float64
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreate(repo domain.Repository, audit *audit.Dispatcher) *Create {
	return &Create{repo: repo, audit: audit}
}

func (uc *Create) Execute(
	ctx context.Context,
	actor domain.Actor,
	in CreateInput,
) (*models.Availability, error) {

	if actor.Role != models.RoleSharpener {
		return nil, domain.ErrForbidden
	}

	loc, err := uc.repo.GetLocation(ctx, in.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness("location_not_found")
	}
	if loc.SharpenerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	machine, err := uc.repo.GetMachine(ctx, in.MachineID)
	if err != nil || machine.LocationID != loc.ID {
		return nil, httperr.ErrBusiness("machine_not_found")
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	window := domain.TimeInterval{Start: in.Start, End: in.End}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	av := &models.Availability{
		SharpenerID: actor.ID,
		LocationID:  loc.ID,
		MachineID:   machine.ID,
		Date:        in.Date,
		StartTime:   window.Start,
		EndTime:     window.End,
		Price:       in.Price,
	}

	if err := uc.repo.CreateAvailability(ctx, av); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "availability_created",
		Entity:   "availability",
		EntityID: &av.ID,
	})

	return av, nil
}
