package notify

import "go.uber.org/zap"

// Events emitted by booking state transitions.
const (
	EventBookingRequested = "booking_requested"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingDenied    = "booking_denied"
	EventBookingCancelled = "booking_cancelled"
)

type Message struct {
	Event     string
	Recipient string // email address
	Payload   map[string]any
}

// Sender delivers a single notification. Email delivery is an external
// collaborator; implementations must be safe for concurrent use.
type Sender interface {
	Send(msg Message) error
}

// LogSender is the default sender: it records the notification in the
// application log. Swapped for a real mail gateway in deployment.
type LogSender struct{}

func (LogSender) Send(msg Message) error {
	zap.L().Info("notification",
		zap.String("event", msg.Event),
		zap.String("recipient", msg.Recipient),
		zap.Any("payload", msg.Payload),
	)
	return nil
}

// Dispatcher delivers notifications off the request path. Best effort:
// a full queue drops the message, and sender failures are logged and
// never surfaced to the triggering state transition.
type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.sender.Send(msg); err != nil {
			zap.L().Warn("notification send failed",
				zap.String("event", msg.Event),
				zap.String("recipient", msg.Recipient),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		zap.L().Warn("notification queue full, dropping message",
			zap.String("event", msg.Event),
		)
	}
}
