package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/httperr"
	"github.com/sharpside-app/sharpener-booking/internal/httpresp"
	"github.com/sharpside-app/sharpener-booking/internal/models"
	"github.com/sharpside-app/sharpener-booking/internal/storage"
	"github.com/sharpside-app/sharpener-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type LocationHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	photos *storage.PhotoStore
}

func NewLocationHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	photos *storage.PhotoStore,
) *LocationHandler {
	return &LocationHandler{db: db, audit: auditDispatcher, photos: photos}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Street   string `json:"street"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type UpdateLocationRequest struct {
	Name     *string `json:"name"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Phone    *string `json:"phone"`
	Timezone *string `json:"timezone"`
}

// ======================================================
// CRUD
// ======================================================

func (h *LocationHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	loc := models.Location{
		SharpenerID: actor.ID,
		Name:        req.Name,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		Phone:       req.Phone,
		Timezone:    tz,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Could not create location.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "location_created",
		Entity:   "location",
		EntityID: &loc.ID,
	})

	httpresp.Created(c, loc)
}

func (h *LocationHandler) ListMine(c *gin.Context) {
	actor := actorFrom(c)

	var locations []models.Location
	h.db.Where("sharpener_id = ?", actor.ID).Order("id ASC").Find(&locations)

	httpresp.List(c, locations)
}

func (h *LocationHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var loc models.Location
	if err := h.db.Where("id = ? AND sharpener_id = ?", id, actor.ID).First(&loc).Error; err != nil {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Street != nil {
		loc.Street = *req.Street
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.State != nil {
		loc.State = *req.State
	}
	if req.Zip != nil {
		loc.Zip = *req.Zip
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		loc.Timezone = *req.Timezone
	}

	if err := h.db.Save(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Could not update location.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "location_updated",
		Entity:   "location",
		EntityID: &loc.ID,
	})

	httpresp.OK(c, loc)
}

// Delete removes a location and everything hanging off it. Active
// appointments block the delete; history rows go with the location,
// child tables first so foreign keys never dangle mid-transaction.
func (h *LocationHandler) Delete(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var loc models.Location
	if err := h.db.Where("id = ? AND sharpener_id = ?", id, actor.ID).First(&loc).Error; err != nil {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	var active int64
	h.db.Model(&models.Appointment{}).
		Where("location_id = ? AND status IN ?", loc.ID, []string{"pending", "confirmed"}).
		Count(&active)
	if active > 0 {
		httperr.Conflict(c, "location_in_use", "Location has active appointments.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id IN (?)",
				tx.Model(&models.Appointment{}).Select("id").Where("location_id = ?", loc.ID),
			).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", loc.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", loc.ID).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", loc.ID).Delete(&models.Machine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&loc).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_location", "Could not delete location.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "location_deleted",
		Entity:   "location",
		EntityID: &loc.ID,
	})

	c.Status(204)
}

// ======================================================
// PHOTO
// ======================================================

func (h *LocationHandler) UploadPhoto(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var loc models.Location
	if err := h.db.Where("id = ? AND sharpener_id = ?", id, actor.ID).First(&loc).Error; err != nil {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Multipart field 'photo' is required.")
		return
	}
	defer file.Close()

	key := fmt.Sprintf("locations/%d/photo", loc.ID)
	url, err := h.photos.Upload(c.Request.Context(), key, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Could not process the image.")
		return
	}

	loc.PhotoURL = url
	if err := h.db.Save(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Could not save photo URL.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}
