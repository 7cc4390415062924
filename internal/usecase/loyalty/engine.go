package loyalty

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// LOYALTY ENGINE
// ======================================================

// Engine is the only writer of reward accounts. The ledger calls it as
// a side effect of appointment creation; handlers call it for reads
// and the admin force-grant.
type Engine struct {
	repo domain.Repository
	log  *slog.Logger
}

func NewEngine(repo domain.Repository, log *slog.Logger) *Engine {
	return &Engine{repo: repo, log: log}
}

// IncrementAttendance seeds the account on first contact and counts
// one attendance.
func (e *Engine) IncrementAttendance(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
) (*models.RewardAccount, error) {

	return e.repo.MutateAccount(ctx, tenantID, clientPhone, clientName,
		func(a *models.RewardAccount) error {
			a.TotalAttendances++
			return nil
		})
}

// ConsumeReward redeems one earned free service. With nothing eligible
// it is a no-op, not an error; callers must check the counters rather
// than assume a non-error response granted anything.
func (e *Engine) ConsumeReward(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
	tz string,
) (*models.RewardAccount, error) {

	return e.repo.MutateAccount(ctx, tenantID, clientPhone, clientName,
		func(a *models.RewardAccount) error {
			if domain.EligibleRewards(a) <= 0 {
				e.log.Info("reward consumption with zero eligible, no-op",
					"tenant_id", tenantID, "client_phone", clientPhone)
				return nil
			}

			now := timezone.NowIn(tz)
			a.FreeServicesUsed++
			a.LastRewardAt = &now
			return nil
		})
}

// GrantReward is the admin override: tops total attendances up to the
// next multiple of the threshold so one more reward becomes eligible.
func (e *Engine) GrantReward(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
) (*models.RewardAccount, error) {

	return e.repo.MutateAccount(ctx, tenantID, clientPhone, clientName,
		func(a *models.RewardAccount) error {
			remainder := a.TotalAttendances % domain.RewardThreshold
			if remainder == 0 {
				a.TotalAttendances += domain.RewardThreshold
			} else {
				a.TotalAttendances += domain.RewardThreshold - remainder
			}
			return nil
		})
}

func (e *Engine) GetSummary(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
) (domain.Summary, error) {

	account, err := e.repo.GetAccount(ctx, tenantID, clientPhone)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(account), nil
}
