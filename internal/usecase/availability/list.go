package availability

import (
	"context"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// Execute lists a location's availabilities, date ascending, optionally
// narrowed to one machine.
func (uc *List) Execute(
	ctx context.Context,
	locationID uint,
	machineID *uint,
) ([]models.Availability, error) {

	if _, err := uc.repo.GetLocation(ctx, locationID); err != nil {
		return nil, httperr.ErrBusiness("location_not_found")
	}

	return uc.repo.ListAvailabilitiesByLocation(ctx, locationID, machineID)
}
