package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// scopeTestDB builds a bare statement holder so the scope's WHERE clauses can
// be inspected without a database connection.
func scopeTestDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db, Clauses: map[string]clause.Clause{}}
	return db
}

func whereExprs(t *testing.T, db *gorm.DB) []clause.Expression {
	t.Helper()
	c, ok := db.Statement.Clauses["WHERE"]
	require.True(t, ok, "expected a WHERE clause")
	where, ok := c.Expression.(clause.Where)
	require.True(t, ok)
	return where.Exprs
}

func TestTenantScopeFiltersByTenant(t *testing.T) {
	tenantID := uuid.New()
	ctx := WithTenant(context.Background(), tenantID)

	db := TenantScope(ctx)(scopeTestDB())

	exprs := whereExprs(t, db)
	require.Len(t, exprs, 1)
	expr, ok := exprs[0].(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, "tenant_id = ?", expr.SQL)
	require.Len(t, expr.Vars, 1)
	assert.Equal(t, tenantID, expr.Vars[0])
}

func TestTenantScopeFailSafeWithoutTenant(t *testing.T) {
	db := TenantScope(context.Background())(scopeTestDB())

	exprs := whereExprs(t, db)
	require.Len(t, exprs, 1)
	expr, ok := exprs[0].(clause.Expr)
	require.True(t, ok)
	assert.Equal(t, "1 = 0", expr.SQL, "missing tenant context must match no rows")
}

func TestTenantScopeSkipBypassesFailSafe(t *testing.T) {
	ctx := WithSkipTenantScope(context.Background(), true)
	db := scopeTestDB()

	scoped := TenantScope(ctx)(db)

	assert.Same(t, db, scoped)
	assert.Empty(t, db.Statement.Clauses, "super admin reads must stay unfiltered")
}

func TestTenantScopeSkipDisabledStillScopes(t *testing.T) {
	tenantID := uuid.New()
	ctx := WithSkipTenantScope(context.Background(), false)
	ctx = WithTenant(ctx, tenantID)

	db := TenantScope(ctx)(scopeTestDB())

	exprs := whereExprs(t, db)
	require.Len(t, exprs, 1)
	assert.Equal(t, "tenant_id = ?", exprs[0].(clause.Expr).SQL)
}
