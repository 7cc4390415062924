package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	updateStatusUC *ucAppointment.UpdateStatus
	availabilityUC *ucAppointment.GetAvailability
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
	tenants        TenantLoader
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateStatusUC *ucAppointment.UpdateStatus,
	availabilityUC *ucAppointment.GetAvailability,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
	tenants TenantLoader,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateStatusUC: updateStatusUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		tenants:        tenants,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID  uint   `json:"professional_id" binding:"required"`
	ClientName      string `json:"client_name" binding:"required"`
	ClientPhone     string `json:"client_phone" binding:"required"`
	ServiceID       uint   `json:"service_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	IsLoyaltyReward bool   `json:"is_loyalty_reward"`
	Notes           string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		TenantID:        tenantID,
		ProfessionalID:  req.ProfessionalID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		IsLoyaltyReward: req.IsLoyaltyReward,
		Notes:           req.Notes,
		ActorID:         &userID,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		tenantID,
		userID,
		uint(id),
		req.Status,
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	professionalID, ok := parseUintQuery(c, "professional_id")
	if !ok {
		// The professional books their own calendar by default.
		professionalID = c.MustGet(middleware.ContextUserID).(uint)
	}

	serviceID, ok := parseUintQuery(c, "service_id")
	if !ok {
		httperr.BadRequest(c, "missing_service_id", "Service id is required.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	tenant, err := h.tenants.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	date, err := parseDateInTenant(tenant, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	result, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	tenant, err := h.tenants.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Business not found.")
		return
	}

	date, err := parseDateInTenant(tenant, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), tenantID, userID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), tenantID, userID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
