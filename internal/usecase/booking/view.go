package booking

import (
	"context"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

// View reads appointments through the disclosure policy; raw models
// never leave the API without projection.
type View struct {
	repo domain.Repository
}

func NewView(repo domain.Repository) *View {
	return &View{repo: repo}
}

func (uc *View) project(
	ctx context.Context,
	ap *models.Appointment,
	actor domain.Actor,
) (*domain.AppointmentView, error) {

	customer, err := uc.repo.GetUser(ctx, ap.CustomerID)
	if err != nil {
		return nil, err
	}
	sharpener, err := uc.repo.GetUser(ctx, ap.SharpenerID)
	if err != nil {
		return nil, err
	}
	location, err := uc.repo.GetLocation(ctx, ap.LocationID)
	if err != nil {
		return nil, err
	}

	view := domain.ProjectAppointment(ap, customer, sharpener, location, actor)
	return &view, nil
}

func (uc *View) Get(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*domain.AppointmentView, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	isParty := actor.ID == ap.CustomerID || actor.ID == ap.SharpenerID
	if !isParty && actor.Role != models.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	return uc.project(ctx, ap, actor)
}

// ListMine returns the actor's appointments, each projected for them.
func (uc *View) ListMine(
	ctx context.Context,
	actor domain.Actor,
) ([]domain.AppointmentView, error) {

	var (
		aps []models.Appointment
		err error
	)

	switch actor.Role {
	case models.RoleCustomer:
		aps, err = uc.repo.ListAppointmentsForCustomer(ctx, actor.ID)
	case models.RoleSharpener:
		aps, err = uc.repo.ListAppointmentsForSharpener(ctx, actor.ID)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	views := make([]domain.AppointmentView, 0, len(aps))
	for i := range aps {
		view, err := uc.project(ctx, &aps[i], actor)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
