package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	c *cache.Cache,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// Execute moves an appointment to any of the four known statuses.
// Loyalty accrual happens at creation time, so no reward bookkeeping
// runs here.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	tenantID uint,
	actorID uint,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(tenant.Timezone)
	domain.ApplyStatus(ap, status, now)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &actorID,
		Action:   "appointment_status_" + string(status),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
