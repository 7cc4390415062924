package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type TenantHandler struct {
	db *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{db: db}
}

type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *TenantHandler) GetMeTenant(c *gin.Context) {
	tenantIDVal, _ := c.Get(middleware.ContextTenantID)
	tenantID := tenantIDVal.(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "tenant_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_tenant", "Could not load business data.")
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) UpdateMeTenant(c *gin.Context) {
	tenantIDVal, _ := c.Get(middleware.ContextTenantID)
	tenantID := tenantIDVal.(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "tenant_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_tenant", "Could not load business data.")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone identifier.")
			return
		}
		tenant.Timezone = *req.Timezone
	}

	if err := h.db.Save(&tenant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Could not save business settings.")
		return
	}

	c.JSON(http.StatusOK, tenant)
}
