package request

import "github.com/sangkips/trimtally-api/internal/domain/entity"

// UpdateShopRequest represents an update to the current barbershop's profile
type UpdateShopRequest struct {
	Name     string                 `json:"name"`
	Settings *entity.TenantSettings `json:"settings"`
}

// InviteMemberRequest represents a request to add staff to the current shop
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=owner barber"`
}
