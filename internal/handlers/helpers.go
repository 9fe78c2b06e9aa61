package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/middleware"
)

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.MustGet(middleware.ContextUserID).(uint),
		Role: c.GetString(middleware.ContextUserRole),
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// parseQueryUint reads an optional numeric query parameter; absent
// means (nil, nil).
func parseQueryUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

// --------------------------------------------------
// BUSINESS ERROR MAPPING
// --------------------------------------------------

// mapBookingError translates a use-case error into an HTTP response.
// Unknown errors become an opaque 500; the caller should have logged
// the details already.
func mapBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch code {
	case "malformed_time", "invalid_window", "invalid_date", "invalid_score":
		httperr.BadRequest(c, code, "Invalid request data.")

	case "forbidden":
		httperr.Forbidden(c, code, "You are not allowed to do that.")

	case "availability_not_found", "appointment_not_found",
		"location_not_found", "machine_not_found", "rating_not_found":
		httperr.NotFound(c, code, "Resource not found.")

	case "slot_already_booked", "availability_in_use", "already_rated":
		httperr.Conflict(c, code, "Conflicting state.")

	case "slot_not_bookable", "invalid_transition", "interval_not_ended",
		"interval_not_started", "too_late_to_cancel":
		httperr.Unprocessable(c, code, "Operation not allowed in the current state.")

	default:
		httperr.Internal(c, code, "Unexpected error.")
	}
}
