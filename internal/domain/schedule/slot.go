package schedule

import "time"

// ===============================
// Slot generation
// ===============================

const DefaultTickMinutes = 30

// ValidTick accepts granularities that either divide the hour evenly or
// land on 5-minute marks.
func ValidTick(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	return 60%minutes == 0 || minutes%5 == 0
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slots emits every candidate start inside the window, tick minutes
// apart, starting at the window start. Strict upper bound: a slot may
// start at any instant before the window end.
//
// Depends on configuration only; existing appointments are the
// ConflictResolver's concern.
func Slots(w Window, tickMinutes int) []time.Time {
	if !ValidTick(tickMinutes) {
		tickMinutes = DefaultTickMinutes
	}

	tick := time.Duration(tickMinutes) * time.Minute

	var out []time.Time
	for cur := w.Start; cur.Before(w.End); cur = cur.Add(tick) {
		out = append(out, cur)
	}
	return out
}
