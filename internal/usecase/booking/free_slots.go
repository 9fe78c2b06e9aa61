package booking

import (
	"context"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type FreeSlots struct {
	repo domain.Repository
}

func NewFreeSlots(repo domain.Repository) *FreeSlots {
	return &FreeSlots{repo: repo}
}

type FreeSlotsResult struct {
	Availability *models.Availability  `json:"availability"`
	Slots        []domain.TimeInterval `json:"slots"`
	Visible      *domain.TimeInterval  `json:"visible_range"`
	FullyBooked  bool                  `json:"fully_booked"`
}

// Execute computes the authoritative free slots and the compressed
// display range for one availability.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	availabilityID uint,
) (*FreeSlotsResult, error) {

	av, err := uc.repo.GetAvailability(ctx, availabilityID)
	if err != nil {
		return nil, domain.ErrAvailabilityNotFound
	}

	active, err := uc.repo.ListActiveAppointments(ctx, av.ID)
	if err != nil {
		return nil, err
	}

	slots := domain.FreeSubSlots(av, active)

	return &FreeSlotsResult{
		Availability: av,
		Slots:        slots,
		Visible:      domain.VisibleRange(av, active),
		FullyBooked:  len(slots) == 0,
	}, nil
}
