// Package mixin provides reusable default scopes for entities.
//
// Available mixins:
//   - SoftDelete: hides rows whose deleted_at column is set
//   - TenantID: restricts rows to a single tenant
//
// Usage:
//
//	comment := schema.NewEntity("comment", mixin.SoftDelete())
//	invoice := schema.NewEntity("invoice", mixin.TenantID(42))
//
// Mixins are plain schema options, so project specific ones are written the
// same way:
//
//	func Published() schema.Option {
//	    return schema.WithScopes(schema.NewScope("published", func(v schema.View) *sql.Predicate {
//	        return sql.EQ(v.C("published"), true)
//	    }))
//	}
package mixin

import (
	"github.com/syssam/veloxjoin/dialect/sql"
	"github.com/syssam/veloxjoin/schema"
)

// Scope names registered by the mixins of this package.
const (
	SoftDeleteScope = "soft_delete"
	TenantScope     = "tenant"
)

// Default columns of the mixins.
const (
	DeletedAtColumn = "deleted_at"
	TenantColumn    = "tenant_id"
)

// SoftDelete registers the soft delete scope on the deleted_at column.
//
// Applied predicate:
//
//	<table>.deleted_at IS NULL
func SoftDelete() schema.Option {
	return SoftDeleteColumn(DeletedAtColumn)
}

// SoftDeleteColumn registers the soft delete scope on a custom column.
func SoftDeleteColumn(column string) schema.Option {
	return schema.WithScopes(SoftDeleteOn(column))
}

// SoftDeleteOn returns the soft delete scope for column.
func SoftDeleteOn(column string) schema.Scope {
	return schema.NewScope(SoftDeleteScope, func(v schema.View) *sql.Predicate {
		return sql.IsNull(v.C(column))
	})
}

// TenantID registers a scope restricting rows to the given tenant on the
// tenant_id column.
//
// Applied predicate:
//
//	<table>.tenant_id = ?
func TenantID(tenant any) schema.Option {
	return TenantIDColumn(TenantColumn, tenant)
}

// TenantIDColumn registers the tenant scope on a custom column.
func TenantIDColumn(column string, tenant any) schema.Option {
	return schema.WithScopes(schema.NewScope(TenantScope, func(v schema.View) *sql.Predicate {
		return sql.EQ(v.C(column), tenant)
	}))
}
