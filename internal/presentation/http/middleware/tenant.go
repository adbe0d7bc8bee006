package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/response"
)

// ExtractShopFromHost extracts the shop slug from a subdomain
// e.g., "fadehouse.trimtally.app" -> "fadehouse"
func ExtractShopFromHost(host string) (string, error) {
	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("invalid subdomain")
	}
	return parts[0], nil
}

// TenantMiddleware binds the request to a barbershop. The shop comes from the
// subdomain when one is present; otherwise it falls back to the first shop the
// authenticated user belongs to, so single-shop deployments work on a bare
// host. Membership is checked before the binding takes effect; super admins
// are exempt and may reach any shop, or operate without one.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := authenticatedUserID(c)

		shopSlug, err := ExtractShopFromHost(c.Request.Host)
		if err != nil {
			// No subdomain: fall back to the user's default shop
			if userID == uuid.Nil {
				c.Set("tenant_id", uuid.Nil)
				c.Next()
				return
			}

			tenant, err := tenantRepo.GetDefaultForUser(c.Request.Context(), userID)
			if err != nil || tenant == nil {
				// Super admins have no membership of their own; unscope
				// instead of rejecting so they can operate platform-wide
				if isSuperAdmin(c) {
					skipTenantScope(c)
					c.Next()
					return
				}
				response.NotFound(c, "No barbershop found for this account")
				c.Abort()
				return
			}
			bindTenant(c, tenant.ID)
			c.Next()
			return
		}

		tenant, err := tenantRepo.GetBySlug(c.Request.Context(), shopSlug)
		if err != nil || tenant == nil {
			response.NotFound(c, "Barbershop not found")
			c.Abort()
			return
		}

		if userID != uuid.Nil && !isSuperAdmin(c) {
			isMember, _ := tenantRepo.IsMember(c.Request.Context(), tenant.ID, userID)
			if !isMember {
				response.Forbidden(c, "Access denied to this barbershop")
				c.Abort()
				return
			}
		}

		bindTenant(c, tenant.ID)
		c.Next()
	}
}

// RequireTenant ensures a valid tenant context exists. Requests already
// unscoped for a super admin pass through.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skip, ok := c.Request.Context().Value(infraRepo.SkipTenantScopeKey).(bool); ok && skip {
			c.Next()
			return
		}

		tenantID, exists := c.Get("tenant_id")
		if !exists {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		id, ok := tenantID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func authenticatedUserID(c *gin.Context) uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// bindTenant sets the tenant on both the Gin context (for middleware and
// handlers) and the request context (for services and repositories)
func bindTenant(c *gin.Context, tenantID uuid.UUID) {
	c.Set("tenant_id", tenantID)
	ctx := infraRepo.WithTenant(c.Request.Context(), tenantID)
	c.Request = c.Request.WithContext(ctx)
}

// skipTenantScope marks the request context so repositories read across all
// barbershops
func skipTenantScope(c *gin.Context) {
	c.Set("tenant_id", uuid.Nil)
	ctx := infraRepo.WithSkipTenantScope(c.Request.Context(), true)
	c.Request = c.Request.WithContext(ctx)
}

func isSuperAdmin(c *gin.Context) bool {
	rolesVal, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == "super-admin" {
			return true
		}
	}
	return false
}
