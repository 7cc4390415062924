package models

import "time"

// One rule per (professional, weekday). No rule means the professional
// is not bookable that day.
type AvailabilityRule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	TenantID       uint `gorm:"index" json:"tenant_id"`
	ProfessionalID uint `gorm:"uniqueIndex:idx_rule_professional_weekday" json:"professional_id"`

	Weekday int `gorm:"uniqueIndex:idx_rule_professional_weekday" json:"weekday"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
