package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus writes the new status onto the record and stamps the
// matching timestamp. Appointments are never deleted; cancellation is
// a status transition like any other.
func ApplyStatus(ap *models.Appointment, status Status, now time.Time) {
	ap.Status = string(status)

	switch status {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
}

// Interval returns the half-open range the appointment occupies.
func Interval(ap *models.Appointment) (time.Time, time.Time) {
	return ap.StartTime, ap.EndTime
}
