package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
)

// TenantRepository defines the interface for barbershop tenant operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error

	// GetDefaultForUser returns the first barbershop the user belongs to,
	// used when a request carries no explicit tenant
	GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*entity.Tenant, error)

	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, membership *entity.TenantMembership) error
	RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error
	ListMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error)
}
