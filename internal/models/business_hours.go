package models

import (
	"strconv"
	"strings"
	"time"
)

// BusinessHours is the tenant-wide opening policy. Professional
// availability is intersected with it at slot-generation time.
type BusinessHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex" json:"tenant_id"`

	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`

	// Comma-separated weekdays 0..6 (Sunday = 0), e.g. "1,2,3,4,5".
	OpenDays string `gorm:"size:20" json:"open_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BusinessHours) IsOpenOn(weekday time.Weekday) bool {
	for _, part := range strings.Split(b.OpenDays, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if d == int(weekday) {
			return true
		}
	}
	return false
}
