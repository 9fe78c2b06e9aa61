package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/httpresp"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	ucBooking "github.com/sharpside-app/sharpener-booking/internal/usecase/booking"
)

// ======================================================
// PUBLIC HANDLER
// ======================================================

// Unauthenticated browsing surface. Nothing here may leak a street
// address or anyone's contact details.
type PublicHandler struct {
	db        *gorm.DB
	freeSlots *ucBooking.FreeSlots
}

func NewPublicHandler(db *gorm.DB, freeSlots *ucBooking.FreeSlots) *PublicHandler {
	return &PublicHandler{db: db, freeSlots: freeSlots}
}

// ======================================================
// RESPONSES
// ======================================================

type PublicLocation struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	PhotoURL    string  `json:"photo_url"`
	Sharpener   string  `json:"sharpener"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

type PublicAvailability struct {
	Availability models.Availability  `json:"availability"`
	Visible      *domain.TimeInterval `json:"visible_range"`
	FullyBooked  bool                 `json:"fully_booked"`
}

// ======================================================
// SEARCH
// ======================================================

func (h *PublicHandler) SearchLocations(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		httperr.BadRequest(c, "missing_city", "Query parameter 'city' is required.")
		return
	}

	var locations []models.Location
	if err := h.db.
		Preload("Sharpener").
		Where("city ILIKE ?", city).
		Order("id ASC").
		Find(&locations).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not search locations.")
		return
	}

	out := make([]PublicLocation, 0, len(locations))
	for i := range locations {
		loc := &locations[i]
		out = append(out, PublicLocation{
			ID:          loc.ID,
			Name:        loc.Name,
			City:        loc.City,
			State:       loc.State,
			Zip:         loc.Zip,
			PhotoURL:    loc.PhotoURL,
			Sharpener:   loc.Sharpener.Name,
			RatingAvg:   loc.Sharpener.RatingAvg,
			RatingCount: loc.Sharpener.RatingCount,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// AVAILABILITIES
// ======================================================

// ListAvailabilities shows a location's open windows with the
// compressed display range only; the exact free sub-slots come from
// the slots endpoint when the customer picks a window.
func (h *PublicHandler) ListAvailabilities(c *gin.Context) {
	locationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var loc models.Location
	if err := h.db.First(&loc, locationID).Error; err != nil {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	q := h.db.Where("location_id = ?", loc.ID)
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if mid, err := parseQueryUint(c, "machine_id"); err != nil {
		httperr.BadRequest(c, "invalid_machine_id", "Invalid machine_id.")
		return
	} else if mid != nil {
		q = q.Where("machine_id = ?", *mid)
	}

	var avs []models.Availability
	if err := q.Order("date ASC, start_time ASC").Find(&avs).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list availabilities.")
		return
	}

	out := make([]PublicAvailability, 0, len(avs))
	for i := range avs {
		res, err := h.freeSlots.Execute(c.Request.Context(), avs[i].ID)
		if err != nil {
			mapBookingError(c, err)
			return
		}
		out = append(out, PublicAvailability{
			Availability: avs[i],
			Visible:      res.Visible,
			FullyBooked:  res.FullyBooked,
		})
	}

	httpresp.List(c, out)
}

// FreeSlots returns the authoritative free sub-slot list for one
// availability. This is what the booking form submits against.
func (h *PublicHandler) FreeSlots(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.freeSlots.Execute(c.Request.Context(), id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, res)
}
