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

type AvailabilityRulesHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAvailabilityRulesHandler(db *gorm.DB, c *cache.Cache) *AvailabilityRulesHandler {
	return &AvailabilityRulesHandler{db: db, cache: c}
}

type AvailabilityRuleConfig struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type AvailabilityRulesUpdateRequest struct {
	Days []AvailabilityRuleConfig `json:"days" binding:"required"`
}

func (h *AvailabilityRulesHandler) Get(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {

		httperr.Internal(c, "failed_to_get_rules", "Could not load availability rules.")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// Update replaces the whole weekly template. Any rule write makes the
// cached slot computations for this professional stale, so they are
// dropped in the same request.
func (h *AvailabilityRulesHandler) Update(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req AvailabilityRulesUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		var toCreate []models.AvailabilityRule
		for _, d := range req.Days {
			toCreate = append(toCreate, models.AvailabilityRule{
				TenantID:       tenantID,
				ProfessionalID: professionalID,
				Weekday:        d.Weekday,
				IsAvailable:    d.IsAvailable,
				StartTime:      d.StartTime,
				EndTime:        d.EndTime,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_rules", "Could not save availability rules.")
		return
	}

	h.cache.InvalidateProfessional(c.Request.Context(), tenantID, professionalID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
