package loyalty

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// ===============================
// Reward arithmetic
// ===============================

// Every RewardThreshold attendances earn one free service.
const RewardThreshold = 10

// EligibleRewards is earned minus redeemed. Never negative as long as
// consumption is gated on it.
func EligibleRewards(a *models.RewardAccount) int {
	eligible := a.TotalAttendances/RewardThreshold - a.FreeServicesUsed
	if eligible < 0 {
		return 0
	}
	return eligible
}

func AttendancesUntilNext(total int) int {
	if total%RewardThreshold == 0 {
		return 0
	}
	return RewardThreshold - total%RewardThreshold
}

// Summary is the caller-facing view of an account.
type Summary struct {
	ClientName                 string  `json:"client_name"`
	ClientPhone                string  `json:"client_phone"`
	TotalAttendances           int     `json:"total_attendances"`
	FreeServicesUsed           int     `json:"free_services_used"`
	EligibleRewards            int     `json:"eligible_rewards"`
	AttendancesUntilNextReward int     `json:"attendances_until_next_reward"`
	LastRewardAt               *string `json:"last_reward_at"`
}

func Summarize(a *models.RewardAccount) Summary {
	s := Summary{
		ClientName:                 a.ClientName,
		ClientPhone:                a.ClientPhone,
		TotalAttendances:           a.TotalAttendances,
		FreeServicesUsed:           a.FreeServicesUsed,
		EligibleRewards:            EligibleRewards(a),
		AttendancesUntilNextReward: AttendancesUntilNext(a.TotalAttendances),
	}

	if a.LastRewardAt != nil {
		v := a.LastRewardAt.Format("2006-01-02 15:04")
		s.LastRewardAt = &v
	}

	return s
}
