package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking surface, addressed
// by tenant slug.
type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ProfessionalID  uint   `json:"professional_id"`
	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone" binding:"required"`
	ServiceID       uint   `json:"service_id" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // HH:mm
	IsLoyaltyReward bool   `json:"is_loyalty_reward"`
	Notes           string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ? AND active = true", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("tenant_id = ? AND active = true", tenant.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenant,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	serviceID, ok := parseUintQuery(c, "service_id")
	if !ok || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	var tenant models.Tenant
	if err := h.db.Where("slug = ? AND active = true", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	professionalID, ok := parseUintQuery(c, "professional_id")
	if !ok {
		pro, err := h.defaultProfessional(tenant.ID)
		if err != nil {
			httperr.BadRequest(c, "professional_not_found", "Professional not found.")
			return
		}
		professionalID = pro.ID
	}

	date, err := parseDateInTenant(&tenant, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	result, err := h.availabilityUC.Execute(
		c.Request.Context(),
		ucAppointment.AvailabilityInput{
			TenantID:       tenant.ID,
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
			Date:           date,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ? AND active = true", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	professionalID := req.ProfessionalID
	if professionalID == 0 {
		pro, err := h.defaultProfessional(tenant.ID)
		if err != nil {
			httperr.BadRequest(c, "professional_not_found", "Professional not found.")
			return
		}
		professionalID = pro.ID
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			TenantID:        tenant.ID,
			ProfessionalID:  professionalID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			Time:            req.Time,
			IsLoyaltyReward: req.IsLoyaltyReward,
			Notes:           req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *PublicHandler) defaultProfessional(tenantID uint) (*models.Professional, error) {
	var pro models.Professional
	err := h.db.
		Where("tenant_id = ? AND role = ?", tenantID, "owner").
		First(&pro).Error
	if err != nil {
		return nil, err
	}
	return &pro, nil
}
