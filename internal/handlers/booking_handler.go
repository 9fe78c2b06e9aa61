package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/sharpside-app/sharpener-booking/internal/domain/booking"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/httpresp"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	ucBooking "github.com/sharpside-app/sharpener-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	reserve  *ucBooking.Reserve
	confirm  *ucBooking.Confirm
	deny     *ucBooking.Deny
	cancel   *ucBooking.Cancel
	complete *ucBooking.Complete
	noShow   *ucBooking.MarkNoShow
	rate     *ucBooking.Rate
	view     *ucBooking.View
}

func NewBookingHandler(
	reserve *ucBooking.Reserve,
	confirm *ucBooking.Confirm,
	deny *ucBooking.Deny,
	cancel *ucBooking.Cancel,
	complete *ucBooking.Complete,
	noShow *ucBooking.MarkNoShow,
	rate *ucBooking.Rate,
	view *ucBooking.View,
) *BookingHandler {
	return &BookingHandler{
		reserve:  reserve,
		confirm:  confirm,
		deny:     deny,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
		rate:     rate,
		view:     view,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReserveRequest struct {
	AvailabilityID uint   `json:"availability_id" binding:"required"`
	Start          string `json:"start" binding:"required"`
	End            string `json:"end" binding:"required"`
	Notes          string `json:"notes"`
}

type RateRequest struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

// ======================================================
// RESERVE
// ======================================================

func (h *BookingHandler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	ap, err := h.reserve.Execute(c.Request.Context(), actorFrom(c), ucBooking.ReserveInput{
		AvailabilityID: req.AvailabilityID,
		Start:          req.Start,
		End:            req.End,
		Notes:          req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context)    { h.transition(c, h.confirm.Execute) }
func (h *BookingHandler) Deny(c *gin.Context)       { h.transition(c, h.deny.Execute) }
func (h *BookingHandler) Cancel(c *gin.Context)     { h.transition(c, h.cancel.Execute) }
func (h *BookingHandler) Complete(c *gin.Context)   { h.transition(c, h.complete.Execute) }
func (h *BookingHandler) MarkNoShow(c *gin.Context) { h.transition(c, h.noShow.Execute) }

func (h *BookingHandler) transition(
	c *gin.Context,
	exec func(ctx context.Context, actor domain.Actor, id uint) (*models.Appointment, error),
) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := exec(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RATE
// ======================================================

func (h *BookingHandler) Rate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	rating, err := h.rate.Execute(c.Request.Context(), actorFrom(c), ucBooking.RateInput{
		AppointmentID: id,
		Score:         req.Score,
		Comment:       req.Comment,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, rating)
}

// ======================================================
// READS
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.view.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	views, err := h.view.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, views)
}
