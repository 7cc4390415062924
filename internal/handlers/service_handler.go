package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

// ======================================================
// LIST / CREATE / UPDATE
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var services []models.Service
	if err := h.db.
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	service := models.Service{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	// The creating professional offers the new service by default.
	var pro models.Professional
	if err := h.db.First(&pro, userID).Error; err == nil {
		_ = h.db.Model(&pro).Association("Services").Append(&service)
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	// Duration is deliberately not updatable: every existing
	// appointment's interval was computed from it.
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// ======================================================
// OFFERED SERVICES (professional link)
// ======================================================

type SetOfferedServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// SetOffered replaces the set of services the authenticated
// professional may be booked for.
func (h *ServiceHandler) SetOffered(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req SetOfferedServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var services []models.Service
	if len(req.ServiceIDs) > 0 {
		if err := h.db.
			Where("tenant_id = ? AND id IN ?", tenantID, req.ServiceIDs).
			Find(&services).Error; err != nil {

			httperr.Internal(c, "failed_to_load_services", "Could not load services.")
			return
		}

		if len(services) != len(req.ServiceIDs) {
			httperr.BadRequest(c, "unknown_service", "One or more services do not exist.")
			return
		}
	}

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		First(&pro).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Professional not found.")
		return
	}

	if err := h.db.Model(&pro).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_set_services", "Could not update offered services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "service_ids": req.ServiceIDs})
}
