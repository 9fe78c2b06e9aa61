package booking

import (
	"context"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type RateInput struct {
	AppointmentID uint
	Score         int // 1..5
	Comment       string
}

type Rate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clk   clock.Clock
}

func NewRate(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Rate {
	return &Rate{repo: repo, audit: audit, clk: clk}
}

// Execute scores a completed appointment exactly once, moves it to
// rated and refreshes the sharpener's persisted average/count.
func (uc *Rate) Execute(
	ctx context.Context,
	actor domain.Actor,
	in RateInput,
) (*models.Rating, error) {

	if in.Score < 1 || in.Score > 5 {
		return nil, domain.ErrInvalidScore
	}

	ap, loc, now, err := loadForTransition(ctx, uc.repo, uc.clk, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// Validates actor, completed status and end-time precondition before
	// anything is written.
	if err := domain.MarkRated(ap, actor, now, tzOf(loc)); err != nil {
		return nil, err
	}

	rating, err := uc.repo.GetRatingByAppointment(ctx, ap.ID)
	if err != nil {
		// Old rows from before stubs were introduced.
		if err := uc.repo.EnsureRatingStub(ctx, ap); err != nil {
			return nil, err
		}
		if rating, err = uc.repo.GetRatingByAppointment(ctx, ap.ID); err != nil {
			return nil, httperr.ErrBusiness("rating_not_found")
		}
	}

	if rating.Score != nil {
		return nil, domain.ErrAlreadyRated
	}

	score := in.Score
	rating.Score = &score
	rating.Comment = in.Comment

	if err := uc.repo.SaveRating(ctx, rating); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	avg, count, err := uc.repo.SharpenerRatingStats(ctx, ap.SharpenerID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateSharpenerAggregate(ctx, ap.SharpenerID, avg, count); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_rated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"score": in.Score},
	})

	return rating, nil
}
