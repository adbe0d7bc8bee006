package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/sangkips/trimtally-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGinContext(query string, roles []string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/income-total"+query, nil)
	c.Set("user_roles", roles)
	return c
}

func TestScopedContextRegularUserStaysScoped(t *testing.T) {
	c := testGinContext("", []string{"owner"})

	ctx := scopedContext(c)

	_, ok := ctx.Value(infraRepo.SkipTenantScopeKey).(bool)
	assert.False(t, ok, "non-admins never leave their shop's scope")
}

func TestScopedContextSuperAdminReadsAcrossShops(t *testing.T) {
	c := testGinContext("", []string{"super-admin"})

	ctx := scopedContext(c)

	skip, ok := ctx.Value(infraRepo.SkipTenantScopeKey).(bool)
	require.True(t, ok)
	assert.True(t, skip)
}

func TestScopedContextSuperAdminPinsShop(t *testing.T) {
	shopID := uuid.New()
	c := testGinContext("?shop_id="+shopID.String(), []string{"super-admin"})

	ctx := scopedContext(c)

	skip, _ := ctx.Value(infraRepo.SkipTenantScopeKey).(bool)
	assert.False(t, skip, "an explicit shop narrows the read back down")
	got, ok := infraRepo.GetTenantID(ctx)
	require.True(t, ok)
	assert.Equal(t, shopID, got)
}

func TestScopedContextSuperAdminIgnoresBadShopID(t *testing.T) {
	c := testGinContext("?shop_id=not-a-uuid", []string{"super-admin"})

	ctx := scopedContext(c)

	skip, ok := ctx.Value(infraRepo.SkipTenantScopeKey).(bool)
	require.True(t, ok)
	assert.True(t, skip)
}
