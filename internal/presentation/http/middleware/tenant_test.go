package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/trimtally-api/internal/domain/entity"
	"github.com/sangkips/trimtally-api/internal/domain/repository"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTenantRepo overrides only the lookups the middleware performs; the
// embedded interface panics on anything else.
type stubTenantRepo struct {
	repository.TenantRepository
	bySlug     *entity.Tenant
	defaultFor *entity.Tenant
	member     bool
}

func (s *stubTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return s.bySlug, nil
}

func (s *stubTenantRepo) GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*entity.Tenant, error) {
	return s.defaultFor, nil
}

func (s *stubTenantRepo) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	return s.member, nil
}

func runTenantRequest(repo repository.TenantRepository, host string, roles []string) (*httptest.ResponseRecorder, context.Context) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_roles", roles)
	})
	router.Use(TenantMiddleware(repo))

	var gotCtx context.Context
	router.GET("/income", func(c *gin.Context) {
		gotCtx = c.Request.Context()
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/income", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, gotCtx
}

func TestTenantMiddlewareBindsDefaultShop(t *testing.T) {
	shop := &entity.Tenant{ID: uuid.New()}
	repo := &stubTenantRepo{defaultFor: shop}

	rec, ctx := runTenantRequest(repo, "trimtally.app", []string{"owner"})

	require.Equal(t, http.StatusOK, rec.Code)
	tenantID, ok := infraRepo.GetTenantID(ctx)
	require.True(t, ok)
	assert.Equal(t, shop.ID, tenantID)
}

func TestTenantMiddlewareRejectsUserWithoutShop(t *testing.T) {
	repo := &stubTenantRepo{}

	rec, _ := runTenantRequest(repo, "trimtally.app", []string{"owner"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTenantMiddlewareSuperAdminWithoutShopUnscoped(t *testing.T) {
	repo := &stubTenantRepo{}

	rec, ctx := runTenantRequest(repo, "trimtally.app", []string{"super-admin"})

	require.Equal(t, http.StatusOK, rec.Code)
	skip, ok := ctx.Value(infraRepo.SkipTenantScopeKey).(bool)
	require.True(t, ok)
	assert.True(t, skip, "shopless super admin reads platform-wide")
	_, bound := infraRepo.GetTenantID(ctx)
	assert.False(t, bound)
}

func TestTenantMiddlewareRejectsNonMember(t *testing.T) {
	shop := &entity.Tenant{ID: uuid.New()}
	repo := &stubTenantRepo{bySlug: shop, member: false}

	rec, _ := runTenantRequest(repo, "fadehouse.trimtally.app", []string{"barber"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantMiddlewareSuperAdminBypassesMembership(t *testing.T) {
	shop := &entity.Tenant{ID: uuid.New()}
	repo := &stubTenantRepo{bySlug: shop, member: false}

	rec, ctx := runTenantRequest(repo, "fadehouse.trimtally.app", []string{"super-admin"})

	require.Equal(t, http.StatusOK, rec.Code)
	tenantID, ok := infraRepo.GetTenantID(ctx)
	require.True(t, ok)
	assert.Equal(t, shop.ID, tenantID)
}

func TestRequireTenantAllowsUnscopedRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", uuid.Nil)
		c.Request = c.Request.WithContext(infraRepo.WithSkipTenantScope(c.Request.Context(), true))
	})
	router.Use(RequireTenant())
	router.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTenantRejectsMissingTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("tenant_id", uuid.Nil) })
	router.Use(RequireTenant())
	router.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
