package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/application/service"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/response"
	"github.com/sangkips/trimtally-api/pkg/utils"
)

// TenantHandler handles barbershop HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetCurrent handles fetching the current barbershop
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	tenant, err := h.tenantService.GetCurrentShop(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barbershop retrieved successfully", tenant)
}

// Update handles updating the current barbershop's profile
func (h *TenantHandler) Update(c *gin.Context) {
	var req request.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateShop(c.Request.Context(), &service.UpdateShopInput{
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Barbershop updated successfully", tenant)
}

// ListMembers handles listing the current shop's staff
func (h *TenantHandler) ListMembers(c *gin.Context) {
	members, err := h.tenantService.ListMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", members)
}

// InviteMember handles adding staff to the current shop
func (h *TenantHandler) InviteMember(c *gin.Context) {
	var req request.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.tenantService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", membership)
}

// RemoveMember handles removing staff from the current shop
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	userID, err := utils.ParseUUID(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.tenantService.RemoveMember(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}
