package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowOn(t *testing.T, start, end string) Window {
	t.Helper()

	s, err := ParseHM(start, monday)
	require.NoError(t, err)
	e, err := ParseHM(end, monday)
	require.NoError(t, err)

	return Window{Start: s, End: e}
}

func TestValidTick(t *testing.T) {
	tests := []struct {
		minutes int
		want    bool
	}{
		{30, true},
		{60, true},
		{15, true},
		{20, true},
		{10, true},
		{5, true},
		{45, true},
		{7, false},
		{0, false},
		{-30, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTick(tt.minutes), "tick %d", tt.minutes)
	}
}

func TestSlots_FullDay(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Format("15:04"))
	assert.Equal(t, "17:30", slots[17].Format("15:04"))
}

func TestSlots_StrictUpperBound(t *testing.T) {
	// The window end itself is never a candidate start.
	slots := Slots(windowOn(t, "09:00", "10:00"), 30)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Format("15:04"))
	assert.Equal(t, "09:30", slots[1].Format("15:04"))
}

func TestSlots_Deterministic(t *testing.T) {
	w := windowOn(t, "09:00", "18:00")

	first := Slots(w, 30)
	second := Slots(w, 30)
	assert.Equal(t, first, second)
}

func TestSlots_CustomTick(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "10:00"), 15)

	require.Len(t, slots, 4)
	assert.Equal(t, "09:45", slots[3].Format("15:04"))
}

func TestSlots_InvalidTickFallsBackToDefault(t *testing.T) {
	got := Slots(windowOn(t, "09:00", "18:00"), 7)
	want := Slots(windowOn(t, "09:00", "18:00"), DefaultTickMinutes)
	assert.Equal(t, want, got)
}

func TestSlots_EmptyWindow(t *testing.T) {
	w := windowOn(t, "09:00", "09:00")
	assert.Empty(t, Slots(w, 30))
}

func TestSlots_RunPastNominalClose(t *testing.T) {
	// Window end comes from the availability rule, which may outlast
	// the tenant's closing time.
	slots := Slots(windowOn(t, "09:00", "20:00"), 30)

	require.Len(t, slots, 22)
	assert.Equal(t, "19:30", slots[len(slots)-1].Format("15:04"))
}

func TestSlots_UnevenTail(t *testing.T) {
	// 09:00-09:50 with a 30-minute tick: 09:30 still starts before the
	// end, even though a service might not fit. Fitting is the
	// conflict filter's and the booking validator's job.
	slots := Slots(windowOn(t, "09:00", "09:50"), 30)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:30", slots[1].Format("15:04"))
}

func mustHM(t *testing.T, hm string) time.Time {
	t.Helper()
	ts, err := ParseHM(hm, monday)
	require.NoError(t, err)
	return ts
}
