package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBusinessHoursHandler(db *gorm.DB, c *cache.Cache) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, cache: c}
}

type BusinessHoursUpdateRequest struct {
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
	OpenDays  string `json:"open_days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var hours models.BusinessHours
	if err := h.db.Where("tenant_id = ?", tenantID).First(&hours).Error; err != nil {
		httperr.NotFound(c, "business_hours_not_found", "Business hours not configured.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update upserts the tenant policy. Business hours feed every
// professional's effective window, so the whole tenant's cached slot
// computations are dropped.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var hours models.BusinessHours
	err := h.db.Where("tenant_id = ?", tenantID).First(&hours).Error

	switch {
	case err == nil:
		hours.OpenTime = req.OpenTime
		hours.CloseTime = req.CloseTime
		hours.OpenDays = req.OpenDays
		err = h.db.Save(&hours).Error

	case err == gorm.ErrRecordNotFound:
		hours = models.BusinessHours{
			TenantID:  tenantID,
			OpenTime:  req.OpenTime,
			CloseTime: req.CloseTime,
			OpenDays:  req.OpenDays,
		}
		err = h.db.Create(&hours).Error

	default:
		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Could not save business hours.")
		return
	}

	h.cache.InvalidateTenant(c.Request.Context(), tenantID)

	c.JSON(http.StatusOK, hours)
}
