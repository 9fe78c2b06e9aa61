package booking

import "github.com/sharpside-app/sharpener-booking/internal/models"

// ======================================================
// Progressive-trust disclosure
// ======================================================
//
// Contact and street-level location details are withheld until a booking
// is mutually confirmed. The sharpener is the exception: they always see
// the customer's contact, since they need it to decide on the request.

type PartyView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type LocationView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street,omitempty"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type AppointmentView struct {
	ID        uint         `json:"id"`
	Reference string       `json:"reference"`
	Status    string       `json:"status"`
	Date      string       `json:"date"`
	Interval  TimeInterval `json:"interval"`
	Notes     string       `json:"notes,omitempty"`

	Customer  PartyView    `json:"customer"`
	Sharpener PartyView    `json:"sharpener"`
	Location  LocationView `json:"location"`
}

// Disclosed reports whether full contact/address details are mutually
// visible at this status.
func Disclosed(s Status) bool {
	return s == StatusConfirmed || s == StatusCompleted || s == StatusRated
}

// ProjectAppointment builds the view of ap that viewer is allowed to see.
func ProjectAppointment(
	ap *models.Appointment,
	customer *models.User,
	sharpener *models.User,
	location *models.Location,
	viewer Actor,
) AppointmentView {

	disclosed := Disclosed(Status(ap.Status))
	isAdmin := viewer.Role == models.RoleAdmin
	viewerIsSharpener := viewer.isSharpenerOf(ap)
	viewerIsCustomer := viewer.isCustomerOf(ap)

	view := AppointmentView{
		ID:        ap.ID,
		Reference: ap.Reference,
		Status:    ap.Status,
		Date:      ap.Date,
		Interval:  TimeInterval{Start: ap.StartTime, End: ap.EndTime},
		Notes:     ap.Notes,
		Customer:  PartyView{ID: customer.ID, Name: customer.Name},
		Sharpener: PartyView{ID: sharpener.ID, Name: sharpener.Name},
		Location: LocationView{
			ID:    location.ID,
			Name:  location.Name,
			City:  location.City,
			State: location.State,
			Zip:   location.Zip,
		},
	}

	if viewerIsSharpener || viewerIsCustomer || isAdmin {
		view.Customer.Phone = customer.Phone
		view.Customer.Email = customer.Email
	}

	if viewerIsSharpener || isAdmin || (viewerIsCustomer && disclosed) {
		view.Sharpener.Phone = sharpener.Phone
		view.Sharpener.Email = sharpener.Email
	}

	if viewerIsSharpener || isAdmin || disclosed {
		view.Location.Street = location.Street
	}

	return view
}
