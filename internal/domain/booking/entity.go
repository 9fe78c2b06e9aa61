package booking

import (
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/models"
)

// ======================================================
// Actors
// ======================================================

type Actor struct {
	ID   uint
	Role string
}

// RoleSystem is used by the lifecycle sweeper; it bypasses ownership
// checks but not state checks.
const RoleSystem = "system"

func (a Actor) isCustomerOf(ap *models.Appointment) bool {
	return a.Role == models.RoleCustomer && a.ID == ap.CustomerID
}

func (a Actor) isSharpenerOf(ap *models.Appointment) bool {
	return a.Role == models.RoleSharpener && a.ID == ap.SharpenerID
}

func (a Actor) isSystem() bool {
	return a.Role == RoleSystem
}

// ======================================================
// Domain Actions
// ======================================================
//
// Every action validates actor, current status and (where the lifecycle
// requires it) the interval clock precondition, then mutates the model.
// Persistence is the caller's job.

func interval(ap *models.Appointment) TimeInterval {
	return TimeInterval{Start: ap.StartTime, End: ap.EndTime}
}

func Confirm(ap *models.Appointment, actor Actor, now time.Time) error {
	if !actor.isSharpenerOf(ap) {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusConfirmed) {
		return ErrInvalidTransition
	}
	ap.Status = string(StatusConfirmed)
	return nil
}

func Deny(ap *models.Appointment, actor Actor, now time.Time) error {
	if !actor.isSharpenerOf(ap) {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusDenied) {
		return ErrInvalidTransition
	}
	ap.Status = string(StatusDenied)
	return nil
}

// Cancel may be issued by either owner; a sharpener can only back out
// before the reserved interval starts.
func Cancel(ap *models.Appointment, actor Actor, now time.Time, loc *time.Location) error {
	if !actor.isCustomerOf(ap) && !actor.isSharpenerOf(ap) {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusCancelled) {
		return ErrInvalidTransition
	}
	if actor.isSharpenerOf(ap) {
		start, _, err := Bounds(ap.Date, interval(ap), loc)
		if err != nil {
			return err
		}
		if !now.Before(start) {
			return ErrTooLateToCancel
		}
	}
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete requires the interval to have ended. The sweeper completes on
// behalf of the platform.
func Complete(ap *models.Appointment, actor Actor, now time.Time, loc *time.Location) error {
	if !actor.isCustomerOf(ap) && !actor.isSharpenerOf(ap) && !actor.isSystem() {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusCompleted) {
		return ErrInvalidTransition
	}
	_, end, err := Bounds(ap.Date, interval(ap), loc)
	if err != nil {
		return err
	}
	if now.Before(end) {
		return ErrNotEnded
	}
	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, actor Actor, now time.Time, loc *time.Location) error {
	if !actor.isSharpenerOf(ap) {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusNoShow) {
		return ErrInvalidTransition
	}
	start, _, err := Bounds(ap.Date, interval(ap), loc)
	if err != nil {
		return err
	}
	if now.Before(start) {
		return ErrNotStarted
	}
	ap.Status = string(StatusNoShow)
	return nil
}

// MarkRated moves a completed appointment to rated. Score validation and
// the aggregate recompute live in the rate use case.
func MarkRated(ap *models.Appointment, actor Actor, now time.Time, loc *time.Location) error {
	if !actor.isCustomerOf(ap) {
		return ErrForbidden
	}
	if !CanTransition(Status(ap.Status), StatusRated) {
		return ErrInvalidTransition
	}
	_, end, err := Bounds(ap.Date, interval(ap), loc)
	if err != nil {
		return err
	}
	if now.Before(end) {
		return ErrNotEnded
	}
	ap.Status = string(StatusRated)
	return nil
}
