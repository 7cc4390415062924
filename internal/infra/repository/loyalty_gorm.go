package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type LoyaltyGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyGormRepository(db *gorm.DB) *LoyaltyGormRepository {
	return &LoyaltyGormRepository{db: db}
}

func (r *LoyaltyGormRepository) GetAccount(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
) (*models.RewardAccount, error) {

	var account models.RewardAccount
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_phone = ?", tenantID, clientPhone).
		First(&account).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

// MutateAccount serializes writers per (tenant, phone): the account row
// is locked for the duration of fn, and seeded on first contact.
func (r *LoyaltyGormRepository) MutateAccount(
	ctx context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
	fn func(*models.RewardAccount) error,
) (*models.RewardAccount, error) {

	var account models.RewardAccount

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND client_phone = ?", tenantID, clientPhone).
			First(&account).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Two first-contact writers can race here; ON CONFLICT
			// DO NOTHING lets the loser fall through to the lock on
			// the winner's row instead of failing the transaction.
			seed := models.RewardAccount{
				TenantID:    tenantID,
				ClientPhone: clientPhone,
				ClientName:  clientName,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}

			err = tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("tenant_id = ? AND client_phone = ?", tenantID, clientPhone).
				First(&account).Error
		}
		if err != nil {
			return err
		}

		if err := fn(&account); err != nil {
			return err
		}

		return tx.Save(&account).Error
	})

	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Compile-time check
var _ domain.Repository = (*LoyaltyGormRepository)(nil)
