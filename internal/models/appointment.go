package models

import "time"

type Appointment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	TenantID uint   `gorm:"index" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tenant"`

	ProfessionalID uint         `gorm:"index:idx_appointment_professional_start" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	// Tenant-local wall clock. All comparisons happen in the tenant's
	// configured location, never through a UTC round trip.
	StartTime time.Time `gorm:"index:idx_appointment_professional_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status          string `gorm:"size:20;default:'scheduled'" json:"status"`
	IsLoyaltyReward bool   `gorm:"default:false" json:"is_loyalty_reward"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
