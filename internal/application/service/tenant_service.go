package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/pkg/apperror"
	"github.com/sangkips/trimtally-api/pkg/email"
)

// TenantService manages barbershops and their staff
type TenantService struct {
	tenantRepo   repository.TenantRepository
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	emailService *email.EmailService
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	emailService *email.EmailService,
) *TenantService {
	return &TenantService{
		tenantRepo:   tenantRepo,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		emailService: emailService,
	}
}

// GetCurrentShop returns the barbershop bound to the request context
func (s *TenantService) GetCurrentShop(ctx context.Context) (*entity.Tenant, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Barbershop")
	}
	return tenant, nil
}

// UpdateShopInput represents the update shop input
type UpdateShopInput struct {
	Name     string
	Settings *entity.TenantSettings
}

// UpdateShop updates the current barbershop's profile. Only the owner may
// call this; the handler enforces the role.
func (s *TenantService) UpdateShop(ctx context.Context, input *UpdateShopInput) (*entity.Tenant, error) {
	tenant, err := s.GetCurrentShop(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		tenant.Name = input.Name
	}
	if input.Settings != nil {
		tenant.Settings = *input.Settings
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// ListMembers returns the staff of the current barbershop
func (s *TenantService) ListMembers(ctx context.Context) ([]entity.TenantMembership, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	return s.tenantRepo.ListMembers(ctx, tenantID)
}

// InviteMemberInput represents the invite member input
type InviteMemberInput struct {
	Email string
	Role  string
}

// InviteMember adds an existing user to the current barbershop as staff and
// emails them about it. The invitee must already have an account.
func (s *TenantService) InviteMember(ctx context.Context, input *InviteMemberInput) (*entity.TenantMembership, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Barbershop")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	isMember, err := s.tenantRepo.IsMember(ctx, tenantID, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperror.NewConflictError("User is already a member of this barbershop")
	}

	role := input.Role
	if role == "" {
		role = "barber"
	}

	membership := &entity.TenantMembership{
		TenantID: tenantID,
		UserID:   user.ID,
		Role:     role,
	}
	if err := s.tenantRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}

	if barberRole, err := s.roleRepo.GetByName(ctx, "barber"); err == nil && barberRole != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, barberRole.ID)
	}

	// Best effort; membership stands even if the mail bounces
	_ = s.emailService.SendMemberInviteEmail(user.Email, tenant.Name)

	membership.User = *user
	membership.PopulateUserDetails()
	return membership, nil
}

// RemoveMember removes a staff member from the current barbershop. The owner
// cannot be removed.
func (s *TenantService) RemoveMember(ctx context.Context, userID uuid.UUID) error {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperror.NewNotFoundError("Barbershop")
	}
	if tenant.OwnerID == userID {
		return apperror.NewBadRequestError("The shop owner cannot be removed")
	}

	isMember, err := s.tenantRepo.IsMember(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperror.NewNotFoundError("Member")
	}

	return s.tenantRepo.RemoveMember(ctx, tenantID, userID)
}
