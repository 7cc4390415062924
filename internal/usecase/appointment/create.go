package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	loyaltyuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID       uint
	ProfessionalID uint

	ClientName  string
	ClientPhone string

	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	IsLoyaltyReward bool
	Notes           string

	// Authenticated actor, when the booking comes through the admin
	// surface. Nil for public self-service bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	loyalty *loyaltyuc.Engine
	cache   *cache.Cache
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	loyalty *loyaltyuc.Engine,
	c *cache.Cache,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		loyalty: loyalty,
		cache:   c,
		audit:   audit,
		log:     log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Tenant and requested start, in the tenant's wall clock
	// --------------------------------------------------
	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}

	loc := timezone.Location(tenant.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	phone, ok := validators.NormalizePhone(in.ClientPhone)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_client_phone")
	}

	// --------------------------------------------------
	// Tenant open on that weekday
	// --------------------------------------------------
	hours, err := uc.repo.GetBusinessHours(ctx, in.TenantID)
	if err != nil || !hours.IsOpenOn(start.Weekday()) {
		return nil, httperr.ErrBusinessDetails("tenant_closed", map[string]any{
			"weekday": int(start.Weekday()),
		})
	}

	// --------------------------------------------------
	// Professional offers the service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetProfessional(ctx, in.TenantID, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	offers, err := uc.repo.ProfessionalOffersService(ctx, in.ProfessionalID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, httperr.ErrBusinessDetails("service_not_offered", map[string]any{
			"professional_id": in.ProfessionalID,
			"service_id":      in.ServiceID,
		})
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Start inside the effective window, boundaries reported
	// --------------------------------------------------
	rule, _ := uc.repo.GetAvailabilityRule(ctx, in.ProfessionalID, int(start.Weekday()))

	window, err := schedule.EffectiveWindow(hours, rule, start)
	if err != nil {
		return nil, err
	}

	if !window.Contains(start, end) {
		return nil, httperr.ErrBusinessDetails("outside_availability", map[string]any{
			"window_start": window.Start.Format("15:04"),
			"window_end":   window.End.Format("15:04"),
			"requested":    start.Format("15:04"),
		})
	}

	now := timezone.NowIn(tenant.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	// --------------------------------------------------
	// Conflict re-check + insert, atomically
	// --------------------------------------------------
	ap := &models.Appointment{
		Code:            uuid.NewString(),
		TenantID:        in.TenantID,
		ProfessionalID:  in.ProfessionalID,
		ServiceID:       service.ID,
		ClientName:      in.ClientName,
		ClientPhone:     phone,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		IsLoyaltyReward: in.IsLoyaltyReward,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointmentIfFree(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_conflict")
		}
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.ProfessionalID, start.Format("2006-01-02"))

	// --------------------------------------------------
	// Loyalty side effect. The appointment is the primary effect:
	// loyalty failures are logged, never rolled back into the booking.
	// --------------------------------------------------
	if in.IsLoyaltyReward {
		_, err = uc.loyalty.ConsumeReward(ctx, in.TenantID, phone, in.ClientName, tenant.Timezone)
	} else {
		_, err = uc.loyalty.IncrementAttendance(ctx, in.TenantID, phone, in.ClientName)
	}
	if err != nil {
		uc.log.Error("loyalty update failed after booking",
			"appointment_id", ap.ID, "client_phone", phone, "err", err)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
