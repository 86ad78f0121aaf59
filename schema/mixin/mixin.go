// Package mixin provides reusable field presets for loom models.
//
// The presets are optional starting points; they return ordinary field
// builders and compose with per-model fields:
//
//	schema.New("Comment").
//		Fields(mixin.AutoKey()).
//		Fields(mixin.SoftDelete()...)
package mixin

import "github.com/loomstack/loom/schema/field"

// AutoKey returns an auto-incremented integer primary key named "id".
func AutoKey() *field.Builder {
	return field.Int("id").Key().AutoIncrement()
}

// UUIDKey returns a string primary key named "id" with a generated-UUID
// default.
func UUIDKey() *field.Builder {
	return field.String("id").Key().DefaultUUID()
}

// Time returns the createdAt and updatedAt timestamp fields.
func Time() []*field.Builder {
	return []*field.Builder{
		field.DateTime("createdAt").Required().DefaultNow(),
		field.DateTime("updatedAt").Required().DefaultNow().UpdateNow(),
	}
}

// SoftDelete returns a nullable deletedAt timestamp. A null value means
// the row is live.
func SoftDelete() []*field.Builder {
	return []*field.Builder{
		field.DateTime("deletedAt"),
	}
}

// TenantID returns the tenant discriminator field for multi-tenant models.
func TenantID() *field.Builder {
	return field.String("tenantId").Required().MaxLen(64)
}
