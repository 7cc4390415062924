package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AvailabilityInput struct {
	TenantID       uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
	TickMinutes    int
}

type AvailabilityResult struct {
	Date           string                    `json:"date"`
	Reason         string                    `json:"reason,omitempty"`
	AvailableSlots []schedule.TimeSlot       `json:"available_slots"`
	Diagnostics    []schedule.SlotDiagnostic `json:"diagnostics"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewGetAvailability(repo domain.Repository, c *cache.Cache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.repo.GetProfessional(ctx, in.TenantID, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	loc := timezone.Location(tenant.Timezone)
	date := in.Date.In(loc)
	dateStr := date.Format("2006-01-02")

	result := &AvailabilityResult{
		Date:           dateStr,
		AvailableSlots: []schedule.TimeSlot{},
		Diagnostics:    []schedule.SlotDiagnostic{},
	}

	window, err := uc.effectiveWindow(ctx, in, date)
	if err != nil {
		// Closed days and missing rules are an empty result with a
		// reason, not an error.
		result.Reason = err.Error()
		return result, nil
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	// Only slots the whole service fits into are offered. Booking
	// validation applies the same end-fit rule, so every listed slot
	// is bookable.
	candidates := make([]time.Time, 0)
	for _, slot := range uc.candidateSlots(ctx, in, date, window) {
		if window.Contains(slot, slot.Add(duration)) {
			candidates = append(candidates, slot)
		}
	}

	appointments, err := uc.dayAppointments(ctx, in.ProfessionalID, date, dateStr)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(tenant.Timezone)

	available, diagnostics := schedule.FilterAvailable(candidates, duration, appointments, now)

	for _, slot := range available {
		result.AvailableSlots = append(result.AvailableSlots, schedule.TimeSlot{
			Start: slot.Format("15:04"),
			End:   slot.Add(duration).Format("15:04"),
		})
	}
	result.Diagnostics = diagnostics

	return result, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *GetAvailability) effectiveWindow(
	ctx context.Context,
	in AvailabilityInput,
	date time.Time,
) (schedule.Window, error) {

	hours, err := uc.repo.GetBusinessHours(ctx, in.TenantID)
	if err != nil {
		return schedule.Window{}, httperr.ErrBusiness("tenant_closed")
	}

	// Absent rule means unavailable; EffectiveWindow handles nil.
	rule, _ := uc.repo.GetAvailabilityRule(ctx, in.ProfessionalID, int(date.Weekday()))

	return schedule.EffectiveWindow(hours, rule, date)
}

// candidateSlots serves the configuration-derived tick sequence from
// the (professional, weekday) cache when the default tick is in play.
func (uc *GetAvailability) candidateSlots(
	ctx context.Context,
	in AvailabilityInput,
	date time.Time,
	window schedule.Window,
) []time.Time {

	tick := in.TickMinutes
	if tick == 0 {
		tick = schedule.DefaultTickMinutes
	}

	if tick != schedule.DefaultTickMinutes {
		return schedule.Slots(window, tick)
	}

	weekday := int(date.Weekday())

	if cached, ok := uc.cache.GetCandidateSlots(ctx, in.TenantID, in.ProfessionalID, weekday); ok {
		slots := make([]time.Time, 0, len(cached))
		for _, hm := range cached {
			if t, err := schedule.ParseHM(hm, date); err == nil {
				slots = append(slots, t)
			}
		}
		return slots
	}

	slots := schedule.Slots(window, tick)

	encoded := make([]string, 0, len(slots))
	for _, s := range slots {
		encoded = append(encoded, s.Format("15:04"))
	}
	uc.cache.SetCandidateSlots(ctx, in.TenantID, in.ProfessionalID, weekday, encoded)

	return slots
}

func (uc *GetAvailability) dayAppointments(
	ctx context.Context,
	professionalID uint,
	date time.Time,
	dateStr string,
) ([]models.Appointment, error) {

	if cached, ok := uc.cache.GetDayAppointments(ctx, professionalID, dateStr); ok {
		apps := make([]models.Appointment, 0, len(cached))
		for _, e := range cached {
			apps = append(apps, models.Appointment{
				ID:        e.ID,
				StartTime: e.Start,
				EndTime:   e.End,
				Status:    e.Status,
			})
		}
		return apps, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	apps, err := uc.repo.ListAppointmentsForDay(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	entries := make([]cache.DayAppointment, 0, len(apps))
	for _, ap := range apps {
		entries = append(entries, cache.DayAppointment{
			ID:     ap.ID,
			Start:  ap.StartTime,
			End:    ap.EndTime,
			Status: ap.Status,
		})
	}
	uc.cache.SetDayAppointments(ctx, professionalID, dateStr, entries)

	return apps, nil
}
