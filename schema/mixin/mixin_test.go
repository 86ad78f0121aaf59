package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom/schema"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/mixin"
)

func TestKeys(t *testing.T) {
	fd := mixin.AutoKey().Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, "id", fd.Name)
	assert.True(t, fd.PrimaryKey)
	assert.True(t, fd.AutoIncrement)

	fd = mixin.UUIDKey().Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, field.TypeString, fd.Type)
	assert.Equal(t, field.DefaultUUID, fd.DefaultKind)
}

func TestTime(t *testing.T) {
	fields := mixin.Time()
	require.Len(t, fields, 2)
	created, updated := fields[0].Descriptor(), fields[1].Descriptor()
	require.NoError(t, created.Err)
	require.NoError(t, updated.Err)
	assert.Equal(t, "createdAt", created.Name)
	assert.Equal(t, field.DefaultNow, created.DefaultKind)
	assert.Equal(t, "updatedAt", updated.Name)
	assert.True(t, updated.UpdateNow)
}

func TestComposition(t *testing.T) {
	m := schema.New("Account").
		Fields(mixin.UUIDKey(), mixin.TenantID()).
		Fields(mixin.Time()...).
		Fields(mixin.SoftDelete()...).
		Model()

	require.Len(t, m.Fields, 5)
	assert.Equal(t, "id", m.Fields[0].Name)
	assert.Equal(t, "tenantId", m.Fields[1].Name)
	assert.Equal(t, "deletedAt", m.Fields[4].Name)
}
