package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type ReserveInput struct {
	AvailabilityID uint
	Start          string // HH:MM, slot-aligned
	End            string // HH:MM
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type Reserve struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewReserve(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
	clk clock.Clock,
) *Reserve {
	return &Reserve{
		repo:   repo,
		notify: notify,
		audit:  audit,
		clk:    clk,
	}
}

// Execute places a pending appointment on one free sub-slot. The free
// check and the insert run as a single critical section in the
// repository; losing a race surfaces as slot_already_booked and the
// customer re-fetches free slots and picks another.
func (uc *Reserve) Execute(
	ctx context.Context,
	actor domain.Actor,
	in ReserveInput,
) (*models.Appointment, error) {

	if actor.Role != models.RoleCustomer {
		return nil, domain.ErrForbidden
	}

	iv := domain.TimeInterval{Start: in.Start, End: in.End}
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	ap, err := uc.repo.Reserve(ctx, in.AvailabilityID,
		func(av *models.Availability, active []models.Appointment) (*models.Appointment, error) {

			window := domain.TimeInterval{Start: av.StartTime, End: av.EndTime}

			aligned := false
			for _, slot := range domain.SubSlots(window, domain.SlotMinutes) {
				if slot == iv {
					aligned = true
					break
				}
			}
			if !aligned {
				return nil, domain.ErrSlotNotBookable
			}

			if !domain.SlotBookable(av, active, iv) {
				return nil, domain.ErrSlotTaken
			}

			return &models.Appointment{
				Reference:      uuid.NewString(),
				CustomerID:     actor.ID,
				SharpenerID:    av.SharpenerID,
				LocationID:     av.LocationID,
				MachineID:      av.MachineID,
				AvailabilityID: av.ID,
				Date:           av.Date,
				StartTime:      iv.Start,
				EndTime:        iv.End,
				Status:         string(domain.StatusPending),
				Notes:          in.Notes,
			}, nil
		})
	if err != nil {
		return nil, err
	}

	// The sharpener gets the customer's contact up front; they need it
	// to decide on the request.
	if sharpener, err := uc.repo.GetUser(ctx, ap.SharpenerID); err == nil {
		customer, _ := uc.repo.GetUser(ctx, ap.CustomerID)
		payload := map[string]any{
			"reference": ap.Reference,
			"date":      ap.Date,
			"start":     ap.StartTime,
			"end":       ap.EndTime,
		}
		if customer != nil {
			payload["customer_name"] = customer.Name
			payload["customer_phone"] = customer.Phone
			payload["customer_email"] = customer.Email
		}
		uc.notify.Dispatch(notify.Message{
			Event:     notify.EventBookingRequested,
			Recipient: sharpener.Email,
			Payload:   payload,
		})
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "appointment_requested",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
