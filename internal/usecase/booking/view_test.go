package booking

import (
	"context"
	"testing"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

func TestViewGetAppliesDisclosure(t *testing.T) {
	repo := newFixtureRepo()
	id := seedAppointment(repo, domain.StatusPending)

	uc := NewView(repo)

	view, err := uc.Get(context.Background(), testCustomer, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Sharpener.Phone != "" {
		t.Error("pending: sharpener contact leaked to customer")
	}
	if view.Location.Street != "" {
		t.Error("pending: street leaked to customer")
	}
	if view.Location.City != "Boston" {
		t.Error("city must stay visible")
	}
}

func TestViewGetDisclosedWhenConfirmed(t *testing.T) {
	repo := newFixtureRepo()
	id := seedAppointment(repo, domain.StatusConfirmed)

	uc := NewView(repo)

	view, err := uc.Get(context.Background(), testCustomer, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Sharpener.Phone != "555-0202" {
		t.Error("confirmed: sharpener contact should be visible")
	}
	if view.Location.Street != "42 Blade Ave" {
		t.Error("confirmed: street should be visible")
	}
}

func TestViewGetThirdPartyForbidden(t *testing.T) {
	repo := newFixtureRepo()
	id := seedAppointment(repo, domain.StatusConfirmed)
	repo.users[9] = &models.User{ID: 9, Name: "Eve", Role: models.RoleCustomer}

	uc := NewView(repo)

	if _, err := uc.Get(context.Background(), domain.Actor{ID: 9, Role: models.RoleCustomer}, id); err != domain.ErrForbidden {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestViewListMine(t *testing.T) {
	repo := newFixtureRepo()
	seedAppointment(repo, domain.StatusPending)
	seedAppointment(repo, domain.StatusConfirmed)

	uc := NewView(repo)

	views, err := uc.ListMine(context.Background(), testSharpener)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	for _, v := range views {
		if v.Customer.Phone == "" {
			t.Error("sharpener must always see customer contact")
		}
	}
}
