package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestOverlaps_HalfOpen(t *testing.T) {
	a1, a2 := mustHM(t, "10:00"), mustHM(t, "10:30")
	b1, b2 := mustHM(t, "10:30"), mustHM(t, "11:00")

	// Touching intervals do not overlap.
	assert.False(t, Overlaps(a1, a2, b1, b2))
	assert.False(t, Overlaps(b1, b2, a1, a2))

	// Identical and partially overlapping intervals do.
	assert.True(t, Overlaps(a1, a2, a1, a2))
	assert.True(t, Overlaps(a1, a2, mustHM(t, "10:15"), mustHM(t, "10:45")))
	assert.True(t, Overlaps(mustHM(t, "09:00"), mustHM(t, "12:00"), a1, a2))
}

func booked(id uint, start, end time.Time, status string) models.Appointment {
	return models.Appointment{ID: id, StartTime: start, EndTime: end, Status: status}
}

func TestFilterAvailable_DropsOverlappingSlots(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)
	existing := []models.Appointment{
		booked(7, mustHM(t, "10:00"), mustHM(t, "10:30"), "scheduled"),
	}
	now := mustHM(t, "00:00")

	available, diags := FilterAvailable(slots, 30*time.Minute, existing, now)

	require.Len(t, available, 17)

	starts := make(map[string]bool, len(available))
	for _, s := range available {
		starts[s.Format("15:04")] = true
	}
	assert.False(t, starts["10:00"])
	assert.True(t, starts["09:30"])
	assert.True(t, starts["10:30"])

	for _, d := range diags {
		if d.Time == "10:00" {
			assert.False(t, d.Available)
			assert.Equal(t, []uint{7}, d.Conflicts)
		}
	}
}

func TestFilterAvailable_CancelledDoesNotBlock(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)
	existing := []models.Appointment{
		booked(7, mustHM(t, "10:00"), mustHM(t, "10:30"), "cancelled"),
	}

	available, _ := FilterAvailable(slots, 30*time.Minute, existing, mustHM(t, "00:00"))
	assert.Len(t, available, 18)
}

func TestFilterAvailable_LongServiceCollidesEarlier(t *testing.T) {
	// A 60-minute service starting 09:30 runs into a booking at 10:00.
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)
	existing := []models.Appointment{
		booked(3, mustHM(t, "10:00"), mustHM(t, "10:30"), "confirmed"),
	}

	available, _ := FilterAvailable(slots, 60*time.Minute, existing, mustHM(t, "00:00"))

	starts := make(map[string]bool, len(available))
	for _, s := range available {
		starts[s.Format("15:04")] = true
	}
	assert.True(t, starts["09:00"])
	assert.False(t, starts["09:30"])
	assert.False(t, starts["10:00"])
	assert.True(t, starts["10:30"])
}

func TestFilterAvailable_PastSlots(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)
	now := mustHM(t, "12:00")

	available, diags := FilterAvailable(slots, 30*time.Minute, nil, now)

	// Everything strictly before noon is gone; 12:00 itself survives.
	require.Len(t, available, 12)
	assert.Equal(t, "12:00", available[0].Format("15:04"))

	for _, d := range diags {
		if d.Time == "11:30" {
			assert.True(t, d.IsPast)
			assert.False(t, d.Available)
		}
	}
}

func TestFilterAvailable_PureInNow(t *testing.T) {
	slots := Slots(windowOn(t, "09:00", "18:00"), 30)
	now := mustHM(t, "12:00")

	a1, d1 := FilterAvailable(slots, 30*time.Minute, nil, now)
	a2, d2 := FilterAvailable(slots, 30*time.Minute, nil, now)

	assert.Equal(t, a1, a2)
	assert.Equal(t, d1, d2)
}
