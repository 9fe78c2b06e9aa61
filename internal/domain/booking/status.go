package booking

// ======================================================
// Appointment Status
// ======================================================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDenied    Status = "denied"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusRated     Status = "rated"

	// Declared for stale pending requests but no transition produces it
	// yet; auto-expiry was never wired up in the product.
	StatusExpired Status = "expired"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusDenied, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {StatusRated},
}

// CanTransition reports whether from → to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsActive reports whether the appointment still holds its slot. Only
// active appointments block other customers from booking the interval.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusDenied, StatusCancelled, StatusNoShow, StatusRated, StatusExpired:
		return true
	}
	return false
}

// ActiveStatuses is the status set used in slot-conflict queries.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}
