package booking

import (
	"testing"

	"github.com/sharpside-app/sharpener-booking/internal/models"
)

func disclosureFixture(status Status) (*models.Appointment, *models.User, *models.User, *models.Location) {
	ap := testAppointment(status)
	cust := &models.User{
		ID:    ap.CustomerID,
		Name:  "Casey",
		Phone: "555-0101",
		Email: "casey@example.com",
		Role:  models.RoleCustomer,
	}
	sharp := &models.User{
		ID:    ap.SharpenerID,
		Name:  "Sam",
		Phone: "555-0202",
		Email: "sam@example.com",
		Role:  models.RoleSharpener,
	}
	loc := &models.Location{
		ID:     3,
		Name:   "Rink Pro Shop",
		Street: "42 Blade Ave",
		City:   "Boston",
		State:  "MA",
		Zip:    "02101",
	}
	return ap, cust, sharp, loc
}

func TestDisclosed(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusCompleted, StatusRated} {
		if !Disclosed(s) {
			t.Errorf("%s should be disclosed", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusDenied, StatusCancelled, StatusNoShow, StatusExpired} {
		if Disclosed(s) {
			t.Errorf("%s should not be disclosed", s)
		}
	}
}

func TestProjectionPendingCustomerView(t *testing.T) {
	ap, cust, sharp, loc := disclosureFixture(StatusPending)

	view := ProjectAppointment(ap, cust, sharp, loc, customer)

	if view.Sharpener.Phone != "" || view.Sharpener.Email != "" {
		t.Error("pending: customer must not see sharpener contact")
	}
	if view.Location.Street != "" {
		t.Error("pending: customer must not see the street")
	}
	if view.Location.City != "Boston" || view.Location.Zip != "02101" {
		t.Error("city/state/zip must always be visible")
	}
	// own contact is never hidden from the owner
	if view.Customer.Phone != "555-0101" {
		t.Error("customer should see their own contact")
	}
}

func TestProjectionConfirmedCustomerView(t *testing.T) {
	ap, cust, sharp, loc := disclosureFixture(StatusConfirmed)

	view := ProjectAppointment(ap, cust, sharp, loc, customer)

	if view.Sharpener.Phone != "555-0202" || view.Sharpener.Email != "sam@example.com" {
		t.Error("confirmed: customer should see sharpener contact")
	}
	if view.Location.Street != "42 Blade Ave" {
		t.Error("confirmed: customer should see the street")
	}
}

func TestProjectionSharpenerAlwaysSeesCustomer(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		ap, cust, sharp, loc := disclosureFixture(status)

		view := ProjectAppointment(ap, cust, sharp, loc, sharpener)

		if view.Customer.Phone != "555-0101" || view.Customer.Email != "casey@example.com" {
			t.Errorf("%s: sharpener must see customer contact", status)
		}
		if view.Location.Street != "42 Blade Ave" {
			t.Errorf("%s: sharpener must see their own street", status)
		}
	}
}

func TestProjectionAdminSeesEverything(t *testing.T) {
	ap, cust, sharp, loc := disclosureFixture(StatusPending)
	admin := Actor{ID: 100, Role: models.RoleAdmin}

	view := ProjectAppointment(ap, cust, sharp, loc, admin)

	if view.Customer.Phone == "" || view.Sharpener.Phone == "" || view.Location.Street == "" {
		t.Error("admin view should be fully disclosed")
	}
}
