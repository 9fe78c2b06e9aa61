package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/timezone"
)

type Sweep struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clk   clock.Clock
	grace time.Duration
}

func NewSweep(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clk clock.Clock,
	grace time.Duration,
) *Sweep {
	return &Sweep{repo: repo, audit: audit, clk: clk, grace: grace}
}

// Execute finalizes confirmed appointments whose end time plus the grace
// period has elapsed. Idempotent: completed rows are never candidates
// again, and the status-guarded update means a parallel sweep processes
// each appointment at most once.
func (uc *Sweep) Execute(ctx context.Context) (int, error) {

	now := uc.clk.Now()

	// One day of slack so timezone offsets never hide a candidate; the
	// exact grace check below is authoritative.
	cutoff := now.AddDate(0, 0, 1).Format("2006-01-02")

	candidates, err := uc.repo.ListConfirmedOnOrBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	locations := map[uint]*time.Location{}
	swept := 0

	for i := range candidates {
		ap := &candidates[i]

		tz, ok := locations[ap.LocationID]
		if !ok {
			loc, err := uc.repo.GetLocation(ctx, ap.LocationID)
			if err != nil {
				zap.L().Warn("sweep: location lookup failed",
					zap.Uint("appointment_id", ap.ID),
					zap.Error(err),
				)
				continue
			}
			tz = timezone.Location(loc.Timezone)
			locations[ap.LocationID] = tz
		}

		_, end, err := domain.Bounds(
			ap.Date,
			domain.TimeInterval{Start: ap.StartTime, End: ap.EndTime},
			tz,
		)
		if err != nil {
			zap.L().Warn("sweep: unparseable interval",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}

		if now.Before(end.Add(uc.grace)) {
			continue
		}

		localNow := now.In(tz)
		if err := domain.Complete(ap, domain.Actor{Role: domain.RoleSystem}, localNow, tz); err != nil {
			continue
		}

		ok, err = uc.repo.UpdateAppointmentFrom(ctx, ap, domain.StatusConfirmed)
		if err != nil {
			return swept, err
		}
		if !ok {
			// someone else completed it between the list and the update
			continue
		}

		if err := uc.repo.EnsureRatingStub(ctx, ap); err != nil {
			return swept, err
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_auto_completed",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})

		swept++
	}

	return swept, nil
}
