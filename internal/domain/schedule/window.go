package schedule

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Effective window
// ===============================

// Window is the bookable range of a professional's day, as tenant-local
// wall-clock instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseHM anchors an "HH:MM" string on the given date, in that date's
// location.
func ParseHM(hm string, date time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// EffectiveWindow intersects the professional's availability rule with
// the tenant's business hours for the date's weekday.
//
// The start is clamped to the tenant's opening time. The end is the
// professional's own end time and is deliberately NOT clamped to the
// tenant's closing time; a professional may work past nominal close.
func EffectiveWindow(
	hours *models.BusinessHours,
	rule *models.AvailabilityRule,
	date time.Time,
) (Window, error) {

	if hours == nil || !hours.IsOpenOn(date.Weekday()) {
		return Window{}, httperr.ErrBusiness("tenant_closed")
	}

	if rule == nil || !rule.IsAvailable || rule.StartTime == "" || rule.EndTime == "" {
		return Window{}, httperr.ErrBusiness("professional_unavailable")
	}

	ruleStart, err := ParseHM(rule.StartTime, date)
	if err != nil {
		return Window{}, httperr.ErrBusiness("invalid_availability_rule")
	}

	ruleEnd, err := ParseHM(rule.EndTime, date)
	if err != nil {
		return Window{}, httperr.ErrBusiness("invalid_availability_rule")
	}

	open, err := ParseHM(hours.OpenTime, date)
	if err != nil {
		return Window{}, httperr.ErrBusiness("invalid_business_hours")
	}

	start := ruleStart
	if start.Before(open) {
		start = open
	}

	if !start.Before(ruleEnd) {
		return Window{}, httperr.ErrBusiness("professional_unavailable")
	}

	return Window{Start: start, End: ruleEnd}, nil
}

// Contains reports whether [start, end) fits inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Start) && !end.After(w.End)
}
