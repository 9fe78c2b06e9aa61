package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/httpresp"
	"github.com/sharpside-app/sharpener-booking/internal/models"
)

type MachineHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMachineHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *MachineHandler {
	return &MachineHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateMachineRequest struct {
	Name        string `json:"name" binding:"required"`
	Model       string `json:"model"`
	Description string `json:"description"`
}

type UpdateMachineRequest struct {
	Name        *string `json:"name"`
	Model       *string `json:"model"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// --------- Handlers ---------

func (h *MachineHandler) ownedLocation(c *gin.Context) (*models.Location, bool) {
	actor := actorFrom(c)

	locationID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var loc models.Location
	if err := h.db.Where("id = ? AND sharpener_id = ?", locationID, actor.ID).First(&loc).Error; err != nil {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return nil, false
	}
	return &loc, true
}

func (h *MachineHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	loc, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	machine := models.Machine{
		LocationID:  loc.ID,
		Name:        req.Name,
		Model:       req.Model,
		Description: req.Description,
		Active:      true,
	}

	if err := h.db.Create(&machine).Error; err != nil {
		httperr.Internal(c, "failed_to_create_machine", "Could not create machine.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "machine_created",
		Entity:   "machine",
		EntityID: &machine.ID,
	})

	httpresp.Created(c, machine)
}

func (h *MachineHandler) List(c *gin.Context) {
	loc, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	var machines []models.Machine
	h.db.Where("location_id = ?", loc.ID).Order("id ASC").Find(&machines)

	httpresp.List(c, machines)
}

func (h *MachineHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	loc, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	machineID, ok := paramID(c, "machineId")
	if !ok {
		return
	}

	var machine models.Machine
	if err := h.db.Where("id = ? AND location_id = ?", machineID, loc.ID).First(&machine).Error; err != nil {
		httperr.NotFound(c, "machine_not_found", "Machine not found.")
		return
	}

	var req UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		machine.Name = *req.Name
	}
	if req.Model != nil {
		machine.Model = *req.Model
	}
	if req.Description != nil {
		machine.Description = *req.Description
	}
	if req.Active != nil {
		machine.Active = *req.Active
	}

	if err := h.db.Save(&machine).Error; err != nil {
		httperr.Internal(c, "failed_to_update_machine", "Could not update machine.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "machine_updated",
		Entity:   "machine",
		EntityID: &machine.ID,
	})

	httpresp.OK(c, machine)
}
