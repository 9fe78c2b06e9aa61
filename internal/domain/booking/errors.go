package booking

import "github.com/sharpside-app/sharpener-booking/internal/httperr"

// Business error codes shared by the booking core. Handlers map these to
// HTTP statuses; see handlers.mapBookingError.
var (
	ErrMalformedTime        = httperr.ErrBusiness("malformed_time")
	ErrInvalidWindow        = httperr.ErrBusiness("invalid_window")
	ErrAvailabilityNotFound = httperr.ErrBusiness("availability_not_found")
	ErrSlotTaken            = httperr.ErrBusiness("slot_already_booked")
	ErrSlotNotBookable      = httperr.ErrBusiness("slot_not_bookable")
	ErrInvalidTransition    = httperr.ErrBusiness("invalid_transition")
	ErrForbidden            = httperr.ErrBusiness("forbidden")
	ErrNotEnded             = httperr.ErrBusiness("interval_not_ended")
	ErrNotStarted           = httperr.ErrBusiness("interval_not_started")
	ErrTooLateToCancel      = httperr.ErrBusiness("too_late_to_cancel")
	ErrInvalidScore         = httperr.ErrBusiness("invalid_score")
	ErrAlreadyRated         = httperr.ErrBusiness("already_rated")
	ErrAvailabilityInUse    = httperr.ErrBusiness("availability_in_use")
)
