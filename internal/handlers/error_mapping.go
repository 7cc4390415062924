package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// mapBookingError translates business errors from the booking path into
// HTTP responses, carrying the computed boundary values along.
func mapBookingError(c *gin.Context, err error) {
	details := httperr.BusinessDetails(err)

	switch {
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.WriteDetails(c, http.StatusConflict, "slot_conflict",
			"The requested time overlaps an existing appointment.", details)

	case httperr.IsBusiness(err, "tenant_closed"):
		httperr.WriteDetails(c, http.StatusBadRequest, "tenant_closed",
			"The business is closed on that day.", details)

	case httperr.IsBusiness(err, "professional_unavailable"):
		httperr.BadRequest(c, "professional_unavailable",
			"The professional is not available on that day.")

	case httperr.IsBusiness(err, "service_not_offered"):
		httperr.WriteDetails(c, http.StatusBadRequest, "service_not_offered",
			"The professional does not offer that service.", details)

	case httperr.IsBusiness(err, "outside_availability"):
		httperr.WriteDetails(c, http.StatusBadRequest, "outside_availability",
			"The requested time is outside the professional's availability.", details)

	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "The requested time is in the past.")

	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")

	case httperr.IsBusiness(err, "invalid_client_phone"):
		httperr.BadRequest(c, "invalid_client_phone", "Invalid client phone number.")

	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")

	case httperr.IsBusiness(err, "tenant_not_found"):
		httperr.NotFound(c, "tenant_not_found", "Business not found.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found.")

	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.NotFound(c, "professional_not_found", "Professional not found.")

	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")

	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
