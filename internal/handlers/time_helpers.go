package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// All request parsing happens in the tenant's configured location so a
// "14:00" in a request means 14:00 on that tenant's wall clock.

func locationFromTenant(tenant *models.Tenant) *time.Location {
	if tenant != nil {
		return timezone.Location(tenant.Timezone)
	}
	return timezone.Location("")
}

func parseDateInTenant(tenant *models.Tenant, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromTenant(tenant),
	)
}
