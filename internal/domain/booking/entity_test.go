package booking

import (
	"testing"
	"time"

	"github.com/sharpside-app/sharpener-booking/internal/models"
)

var testTZ = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

func testAppointment(status Status) *models.Appointment {
	return &models.Appointment{
		ID:          7,
		CustomerID:  1,
		SharpenerID: 2,
		Date:        "2026-03-10",
		StartTime:   "09:00",
		EndTime:     "09:15",
		Status:      string(status),
	}
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-10 "+clock, testTZ)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

var (
	customer  = Actor{ID: 1, Role: models.RoleCustomer}
	sharpener = Actor{ID: 2, Role: models.RoleSharpener}
	stranger  = Actor{ID: 9, Role: models.RoleCustomer}
	system    = Actor{Role: RoleSystem}
)

func TestTransitionMatrix(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusDenied},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusCompleted, StatusRated},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be legal", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusRated},
		{StatusDenied, StatusConfirmed},
		{StatusCancelled, StatusPending},
		{StatusCompleted, StatusConfirmed},
		{StatusRated, StatusCompleted},
		{StatusNoShow, StatusCompleted},
		{StatusExpired, StatusConfirmed},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be illegal", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusDenied, StatusCancelled,
		StatusCompleted, StatusNoShow, StatusRated, StatusExpired,
	}
	for _, s := range all {
		if !IsTerminal(s) {
			continue
		}
		for _, to := range all {
			if CanTransition(s, to) {
				t.Errorf("terminal status %s has exit to %s", s, to)
			}
		}
	}
}

func TestConfirm(t *testing.T) {
	ap := testAppointment(StatusPending)
	if err := Confirm(ap, sharpener, at(t, "08:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", ap.Status)
	}

	if err := Confirm(testAppointment(StatusPending), customer, at(t, "08:00")); err != ErrForbidden {
		t.Errorf("customer confirm: got %v, want ErrForbidden", err)
	}
	if err := Confirm(testAppointment(StatusDenied), sharpener, at(t, "08:00")); err != ErrInvalidTransition {
		t.Errorf("confirm denied: got %v, want ErrInvalidTransition", err)
	}
}

func TestDeny(t *testing.T) {
	ap := testAppointment(StatusPending)
	if err := Deny(ap, sharpener, at(t, "08:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusDenied) {
		t.Errorf("status = %s, want denied", ap.Status)
	}

	if err := Deny(testAppointment(StatusConfirmed), sharpener, at(t, "08:00")); err != ErrInvalidTransition {
		t.Errorf("deny confirmed: got %v, want ErrInvalidTransition", err)
	}
}

func TestCancelByCustomer(t *testing.T) {
	// customers may cancel even after start
	ap := testAppointment(StatusConfirmed)
	now := at(t, "09:10")
	if err := Cancel(ap, customer, now, testTZ); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Errorf("status = %s, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Errorf("CancelledAt = %v, want %v", ap.CancelledAt, now)
	}
}

func TestCancelBySharpenerOnlyBeforeStart(t *testing.T) {
	if err := Cancel(testAppointment(StatusConfirmed), sharpener, at(t, "08:59"), testTZ); err != nil {
		t.Fatalf("cancel before start: unexpected error %v", err)
	}

	if err := Cancel(testAppointment(StatusConfirmed), sharpener, at(t, "09:00"), testTZ); err != ErrTooLateToCancel {
		t.Errorf("cancel at start: got %v, want ErrTooLateToCancel", err)
	}
	if err := Cancel(testAppointment(StatusConfirmed), sharpener, at(t, "09:30"), testTZ); err != ErrTooLateToCancel {
		t.Errorf("cancel after start: got %v, want ErrTooLateToCancel", err)
	}
}

func TestCancelByStranger(t *testing.T) {
	if err := Cancel(testAppointment(StatusPending), stranger, at(t, "08:00"), testTZ); err != ErrForbidden {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestCompleteRequiresEnd(t *testing.T) {
	if err := Complete(testAppointment(StatusConfirmed), sharpener, at(t, "09:10"), testTZ); err != ErrNotEnded {
		t.Errorf("complete before end: got %v, want ErrNotEnded", err)
	}

	ap := testAppointment(StatusConfirmed)
	now := at(t, "09:15")
	if err := Complete(ap, sharpener, now, testTZ); err != nil {
		t.Fatalf("complete at end: unexpected error %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Errorf("status = %s, want completed", ap.Status)
	}
	if ap.CompletedAt == nil || !ap.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", ap.CompletedAt, now)
	}
}

func TestCompleteBySystem(t *testing.T) {
	ap := testAppointment(StatusConfirmed)
	if err := Complete(ap, system, at(t, "10:00"), testTZ); err != nil {
		t.Fatalf("system complete: unexpected error %v", err)
	}

	// system bypasses ownership but not state
	if err := Complete(testAppointment(StatusPending), system, at(t, "10:00"), testTZ); err != ErrInvalidTransition {
		t.Errorf("system complete pending: got %v, want ErrInvalidTransition", err)
	}
}

func TestMarkNoShowRequiresStart(t *testing.T) {
	if err := MarkNoShow(testAppointment(StatusConfirmed), sharpener, at(t, "08:59"), testTZ); err != ErrNotStarted {
		t.Errorf("no-show before start: got %v, want ErrNotStarted", err)
	}
	if err := MarkNoShow(testAppointment(StatusConfirmed), customer, at(t, "09:30"), testTZ); err != ErrForbidden {
		t.Errorf("customer no-show: got %v, want ErrForbidden", err)
	}

	ap := testAppointment(StatusConfirmed)
	if err := MarkNoShow(ap, sharpener, at(t, "09:05"), testTZ); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusNoShow) {
		t.Errorf("status = %s, want no_show", ap.Status)
	}
}

func TestMarkRated(t *testing.T) {
	ap := testAppointment(StatusCompleted)
	if err := MarkRated(ap, customer, at(t, "10:00"), testTZ); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusRated) {
		t.Errorf("status = %s, want rated", ap.Status)
	}

	if err := MarkRated(testAppointment(StatusCompleted), sharpener, at(t, "10:00"), testTZ); err != ErrForbidden {
		t.Errorf("sharpener rate: got %v, want ErrForbidden", err)
	}
	if err := MarkRated(testAppointment(StatusConfirmed), customer, at(t, "10:00"), testTZ); err != ErrInvalidTransition {
		t.Errorf("rate confirmed: got %v, want ErrInvalidTransition", err)
	}
}
