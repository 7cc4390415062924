package models

import "time"

// One loyalty account per (tenant, client phone). Both counters only
// ever grow; eligible rewards are derived, never stored.
type RewardAccount struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex:idx_reward_tenant_phone" json:"tenant_id"`

	ClientPhone string `gorm:"size:20;uniqueIndex:idx_reward_tenant_phone" json:"client_phone"`
	ClientName  string `gorm:"size:100" json:"client_name"`

	TotalAttendances int `gorm:"default:0" json:"total_attendances"`
	FreeServicesUsed int `gorm:"default:0" json:"free_services_used"`

	LastRewardAt *time.Time `json:"last_reward_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
