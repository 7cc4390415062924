package schedule

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Conflict resolution
// ===============================

// SlotDiagnostic explains why each candidate slot was kept or dropped.
type SlotDiagnostic struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	IsPast    bool   `json:"is_past"`
	Conflicts []uint `json:"conflicts,omitempty"`
}

// Overlaps applies the half-open interval rule. Touching intervals
// (one ends exactly where the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FilterAvailable drops candidate slots that lie in the past relative
// to now, or that overlap a non-cancelled appointment. Pure: the same
// inputs (including now) always produce the same output.
func FilterAvailable(
	slots []time.Time,
	duration time.Duration,
	appointments []models.Appointment,
	now time.Time,
) ([]time.Time, []SlotDiagnostic) {

	available := make([]time.Time, 0, len(slots))
	diagnostics := make([]SlotDiagnostic, 0, len(slots))

	for _, slot := range slots {
		slotEnd := slot.Add(duration)

		diag := SlotDiagnostic{
			Time:   slot.Format("15:04"),
			IsPast: slot.Before(now),
		}

		for _, ap := range appointments {
			if ap.Status == "cancelled" {
				continue
			}
			if Overlaps(slot, slotEnd, ap.StartTime, ap.EndTime) {
				diag.Conflicts = append(diag.Conflicts, ap.ID)
			}
		}

		diag.Available = !diag.IsPast && len(diag.Conflicts) == 0
		if diag.Available {
			available = append(available, slot)
		}

		diagnostics = append(diagnostics, diag)
	}

	return available, diagnostics
}
