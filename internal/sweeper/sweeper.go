package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	ucBooking "github.com/sharpside-app/sharpener-booking/internal/usecase/booking"
)

// ======================================================
// LIFECYCLE SWEEPER
// ======================================================

// Sweeper runs the auto-completion pass on a cron schedule. The pass
// itself is idempotent, so overlapping or restarted runs are harmless.
type Sweeper struct {
	cron  *cron.Cron
	sweep *ucBooking.Sweep
	spec  string
}

func New(sweep *ucBooking.Sweep, spec string) *Sweeper {
	return &Sweeper{
		cron:  cron.New(),
		sweep: sweep,
		spec:  spec,
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	swept, err := s.sweep.Execute(ctx)
	if err != nil {
		zap.L().Error("sweep failed", zap.Int("swept", swept), zap.Error(err))
		return
	}
	if swept > 0 {
		zap.L().Info("sweep finished", zap.Int("swept", swept))
	}
}
