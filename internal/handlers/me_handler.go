package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var pro models.Professional
	if err := h.db.Preload("Tenant").Preload("Services").First(&pro, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        pro.ID,
			"name":      pro.Name,
			"email":     pro.Email,
			"phone":     pro.Phone,
			"role":      pro.Role,
			"tenant_id": pro.TenantID,
			"services":  pro.Services,
		},
		"tenant": gin.H{
			"id":       pro.Tenant.ID,
			"name":     pro.Tenant.Name,
			"slug":     pro.Tenant.Slug,
			"phone":    pro.Tenant.Phone,
			"address":  pro.Tenant.Address,
			"timezone": pro.Tenant.Timezone,
		},
	})
}
