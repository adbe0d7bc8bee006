package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/pkg/utils"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// IsSuperAdmin checks if the user has the super-admin role
func IsSuperAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// scopedContext returns the request context for read endpoints. Super admins
// read across all barbershops, or a single one when shop_id is provided.
func scopedContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if !IsSuperAdmin(c) {
		return ctx
	}

	ctx = infraRepo.WithSkipTenantScope(ctx, true)
	if shopIDStr := c.Query("shop_id"); shopIDStr != "" {
		if shopID, err := utils.ParseUUID(shopIDStr); err == nil {
			ctx = infraRepo.WithTenant(ctx, shopID)
			ctx = infraRepo.WithSkipTenantScope(ctx, false)
		}
	}
	return ctx
}
