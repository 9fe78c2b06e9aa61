package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
)

func newSweep(repo *fakeRepo, at string) *Sweep {
	_, a := newTestDispatchers()
	return NewSweep(repo, a, fixedClock(at), 8*time.Hour)
}

func TestSweepCompletesElapsedConfirmed(t *testing.T) {
	repo := newFixtureRepo()
	id := seedAppointment(repo, domain.StatusConfirmed)

	// appointment ends 09:15; grace is 8h, so 17:15 is the threshold
	uc := newSweep(repo, "2026-03-10 18:00")

	swept, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	ap, err := repo.GetAppointment(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if ap.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %s, want completed", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	if _, err := repo.GetRatingByAppointment(context.Background(), id); err != nil {
		t.Errorf("rating stub missing after sweep: %v", err)
	}
}

func TestSweepRespectsGrace(t *testing.T) {
	repo := newFixtureRepo()
	seedAppointment(repo, domain.StatusConfirmed)

	// past the end but inside the 8h grace window
	uc := newSweep(repo, "2026-03-10 12:00")

	swept, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}
}

func TestSweepSkipsNonConfirmed(t *testing.T) {
	repo := newFixtureRepo()
	seedAppointment(repo, domain.StatusPending)
	seedAppointment(repo, domain.StatusCancelled)
	seedAppointment(repo, domain.StatusCompleted)

	uc := newSweep(repo, "2026-03-11 12:00")

	swept, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}
}

func TestSweepIdempotent(t *testing.T) {
	repo := newFixtureRepo()
	seedAppointment(repo, domain.StatusConfirmed)

	uc := newSweep(repo, "2026-03-10 18:00")

	first, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if first != 1 || second != 0 {
		t.Errorf("sweeps = (%d, %d), want (1, 0)", first, second)
	}
}

func TestStatusGuardedUpdateRejectsStaleWriter(t *testing.T) {
	repo := newFixtureRepo()
	id := seedAppointment(repo, domain.StatusConfirmed)

	// a stale writer still holds the confirmed snapshot while another
	// worker already completed the row
	stale, err := repo.GetAppointment(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	repo.appointments[id].Status = string(domain.StatusCompleted)

	stale.Status = string(domain.StatusCompleted)
	ok, err := repo.UpdateAppointmentFrom(context.Background(), stale, domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("guarded update succeeded against a changed row")
	}
}
