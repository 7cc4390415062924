package loyalty

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	GetAccount(
		ctx context.Context,
		tenantID uint,
		clientPhone string,
	) (*models.RewardAccount, error)

	// MutateAccount loads (or seeds) the account and applies fn under a
	// row lock, so concurrent mutations for the same (tenant, phone)
	// serialize instead of losing updates.
	MutateAccount(
		ctx context.Context,
		tenantID uint,
		clientPhone string,
		clientName string,
		fn func(*models.RewardAccount) error,
	) (*models.RewardAccount, error)
}
