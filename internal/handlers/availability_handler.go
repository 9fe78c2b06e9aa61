package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/httpresp"
	ucAvailability "github.com/sharpside-app/sharpener-booking/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	create *ucAvailability.Create
	update *ucAvailability.Update
	delete *ucAvailability.Delete
	list   *ucAvailability.List
}

func NewAvailabilityHandler(
	create *ucAvailability.Create,
	update *ucAvailability.Update,
	del *ucAvailability.Delete,
	list *ucAvailability.List,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create: create,
		update: update,
		delete: del,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAvailabilityRequest struct {
	LocationID uint    `json:"location_id" binding:"required"`
	MachineID  uint    `json:"machine_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Start      string  `json:"start" binding:"required"`
	End        string  `json:"end" binding:"required"`
	Price      float64 `json:"price"`
}

type UpdateAvailabilityRequest struct {
	Date  *string  `json:"date"`
	Start *string  `json:"start"`
	End   *string  `json:"end"`
	Price *float64 `json:"price"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	av, err := h.create.Execute(c.Request.Context(), actorFrom(c), ucAvailability.CreateInput{
		LocationID: req.LocationID,
		MachineID:  req.MachineID,
		Date:       req.Date,
		Start:      req.Start,
		End:        req.End,
		Price:      req.Price,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, av)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	av, err := h.update.Execute(c.Request.Context(), actorFrom(c), id, ucAvailability.UpdateInput{
		Date:  req.Date,
		Start: req.Start,
		End:   req.End,
		Price: req.Price,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, av)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		mapBookingError(c, err)
		return
	}

	c.Status(204)
}

func (h *AvailabilityHandler) ListByLocation(c *gin.Context) {
	locationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var machineID *uint
	if mid, err := parseQueryUint(c, "machine_id"); err != nil {
		httperr.BadRequest(c, "invalid_machine_id", "Invalid machine_id.")
		return
	} else if mid != nil {
		machineID = mid
	}

	avs, err := h.list.Execute(c.Request.Context(), locationID, machineID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, avs)
}
