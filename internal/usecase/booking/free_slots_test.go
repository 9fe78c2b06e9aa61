package booking

import (
	"context"
	"testing"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
)

func TestFreeSlotsOpenWindow(t *testing.T) {
	repo := newFixtureRepo()
	uc := NewFreeSlots(repo)

	res, err := uc.Execute(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Slots) != 4 {
		t.Errorf("slots = %d, want 4", len(res.Slots))
	}
	if res.FullyBooked {
		t.Error("open window reported fully booked")
	}
	if res.Visible == nil || res.Visible.Start != "09:00" || res.Visible.End != "10:00" {
		t.Errorf("visible = %v, want 09:00-10:00", res.Visible)
	}
}

func TestFreeSlotsAfterBooking(t *testing.T) {
	repo := newFixtureRepo()
	seedAppointment(repo, domain.StatusPending) // occupies 09:00-09:15

	uc := NewFreeSlots(repo)

	res, err := uc.Execute(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Slots) != 3 {
		t.Errorf("slots = %d, want 3", len(res.Slots))
	}
	if res.Visible == nil || res.Visible.Start != "09:15" {
		t.Errorf("visible = %v, want to start at 09:15", res.Visible)
	}
}

func TestFreeSlotsUnknownAvailability(t *testing.T) {
	repo := newFixtureRepo()
	uc := NewFreeSlots(repo)

	if _, err := uc.Execute(context.Background(), 404); err != domain.ErrAvailabilityNotFound {
		t.Errorf("got %v, want ErrAvailabilityNotFound", err)
	}
}
