package audit

import "go.uber.org/zap"

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder persists one audit entry. *Logger is the gorm-backed
// implementation; tests substitute an in-memory one.
type Recorder interface {
	Log(actorID *uint, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
}

func NewDispatcher(recorder Recorder) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.recorder.Log(
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			zap.L().Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full: drop the audit entry, never block the API
		zap.L().Warn("audit queue full, dropping event",
			zap.String("action", ev.Action),
		)
	}
}
