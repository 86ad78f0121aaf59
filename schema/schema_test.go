package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/schema"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

func TestBuilder(t *testing.T) {
	m := schema.New("User").
		Module("auth").
		Table("app_users").
		Fields(
			field.Int("id").Key().AutoIncrement(),
			field.String("email").Required().Unique(),
		).
		Relations(
			relation.HasMany("posts", "Post"),
		).
		Access(loom.AccessRule{Role: "admin", Actions: []loom.Action{loom.ActionRead}}).
		OwnedBy("id").
		EmitEvents().
		AutoTimestamps().
		Model()

	assert.Equal(t, "User", m.Name)
	assert.Equal(t, "auth", m.Module)
	assert.Equal(t, "app_users", m.Table)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, "id", m.Fields[0].Name)
	assert.Equal(t, "email", m.Fields[1].Name)
	require.Len(t, m.Relations, 1)
	assert.Equal(t, relation.KindHasMany, m.Relations[0].Kind)
	require.Len(t, m.AccessRules, 1)
	assert.Equal(t, "admin", m.AccessRules[0].Role)
	require.NotNil(t, m.Ownership)
	assert.Equal(t, "id", m.Ownership.OwnerField)
	assert.True(t, m.Ownership.EmitEvents)
	assert.True(t, m.AutoTimestamps)
}

func TestCompositeKey(t *testing.T) {
	m := schema.New("OrderItem").
		Fields(
			field.Int("orderId").Required(),
			field.Int("productId").Required(),
			field.Int("quantity").Required().Default(1),
		).
		CompositeKey("orderId", "productId").
		Model()

	assert.Equal(t, []string{"orderId", "productId"}, m.PrimaryKey)
}

func TestFieldByName(t *testing.T) {
	m := schema.New("Post").
		Fields(field.Int("id").Key(), field.String("title")).
		Model()

	f, ok := m.FieldByName("title")
	require.True(t, ok)
	assert.Equal(t, field.TypeString, f.Type)

	_, ok = m.FieldByName("missing")
	assert.False(t, ok)
}
