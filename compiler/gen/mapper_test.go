package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom/schema/field"
)

func TestMapField(t *testing.T) {
	col, err := mapField(field.Int("id").Key().AutoIncrement().Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "id", col.Name)
	assert.Equal(t, "Int", col.Type)
	assert.False(t, col.Optional)
	assert.Equal(t, []string{"@id", "@default(autoincrement())"}, col.Attrs)

	col, err = mapField(field.String("email").Required().Unique().MaxLen(255).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.False(t, col.Optional)
	assert.Equal(t, []string{"@unique", "@db.VarChar(255)"}, col.Attrs)

	col, err = mapField(field.String("nickname").Descriptor(), Postgres)
	require.NoError(t, err)
	assert.True(t, col.Optional, "non-required fields are nullable")
	assert.Empty(t, col.Attrs)

	col, err = mapField(field.DateTime("updatedAt").Required().DefaultNow().UpdateNow().Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, []string{"@default(now())", "@updatedAt"}, col.Attrs)

	col, err = mapField(field.String("id").Key().DefaultUUID().Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, []string{"@id", "@default(uuid())"}, col.Attrs)
}

func TestMapFieldLiteralDefaults(t *testing.T) {
	col, err := mapField(field.String("role").Default("user").Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Contains(t, col.Attrs, `@default("user")`)

	col, err = mapField(field.Bool("active").Required().Default(true).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Contains(t, col.Attrs, "@default(true)")

	col, err = mapField(field.Int("count").Required().Default(0).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Contains(t, col.Attrs, "@default(0)")

	col, err = mapField(field.Decimal("rate").Required().Default(2.5).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Contains(t, col.Attrs, "@default(2.5)")

	_, err = mapField(field.JSON("meta").Default([]string{"not", "a", "literal"}).Descriptor(), Postgres)
	assert.Error(t, err)
}

func TestConstraintDoc(t *testing.T) {
	col, err := mapField(field.String("role").In("admin", "user").Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "one of: admin, user", col.Doc)

	col, err = mapField(field.String("slug").Match("^[a-z-]+$").MinLen(3).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "pattern: ^[a-z-]+$; min length: 3", col.Doc)

	col, err = mapField(field.Decimal("rating").Min(0).Max(5).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Equal(t, "min: 0; max: 5", col.Doc)

	col, err = mapField(field.String("name").MaxLen(50).Descriptor(), Postgres)
	require.NoError(t, err)
	assert.Empty(t, col.Doc, "max length maps to a native attribute, not a comment")
}

func TestMapFieldInvalidType(t *testing.T) {
	_, err := mapField(&field.Descriptor{Name: "x", Type: field.Type(99)}, Postgres)
	assert.Error(t, err)
}

func TestAuditFields(t *testing.T) {
	fields := auditFields()
	require.Len(t, fields, len(auditFieldNames))
	for i, f := range fields {
		assert.Equal(t, auditFieldNames[i], f.Name)
		require.NoError(t, f.Err)
	}

	createdAt, updatedAt := fields[0], fields[1]
	assert.Equal(t, field.TypeDateTime, createdAt.Type)
	assert.Equal(t, field.DefaultNow, createdAt.DefaultKind)
	assert.True(t, updatedAt.UpdateNow)

	// Actor references stay nullable: system writes have no actor.
	assert.False(t, fields[2].Required)
	assert.False(t, fields[3].Required)
}
