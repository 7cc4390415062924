package handlers

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// TenantLoader is the slice of the repository the handlers need for
// request parsing (timezone resolution, slug lookup).
type TenantLoader interface {
	GetTenantByID(ctx context.Context, id uint) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
}
