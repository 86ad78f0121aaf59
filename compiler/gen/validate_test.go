package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/compiler/gen"
	"github.com/loomstack/loom/compiler/load"
	"github.com/loomstack/loom/schema"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

func registry(t *testing.T, models ...*loom.Model) *load.Registry {
	t.Helper()
	b := load.NewBuilder()
	for _, m := range models {
		require.NoError(t, b.Register(m))
	}
	return b.Build()
}

func TestValidateOK(t *testing.T) {
	reg := registry(t,
		schema.New("User").
			Fields(field.Int("id").Key().AutoIncrement()).
			Relations(relation.HasMany("posts", "Post")).
			Model(),
		schema.New("Post").
			Fields(field.Int("id").Key().AutoIncrement()).
			Relations(relation.BelongsTo("author", "User")).
			Model(),
	)
	assert.Empty(t, gen.Validate(reg))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	// Two broken models; every problem of both must be reported in one
	// pass, never just the first.
	reg := registry(t,
		schema.New("NoKey").
			Fields(field.String("name")).
			Model(),
		schema.New("Empty").Model(),
	)
	errs := gen.Validate(reg)
	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.True(t, gen.IsStructuralError(err))
		assert.ErrorIs(t, err, gen.ErrInvalidModel)
	}
}

func TestValidateMissingModelName(t *testing.T) {
	reg := registry(t, schema.New("").
		Fields(field.Int("id").Key()).
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no name")
}

func TestValidatePrimaryKeyForms(t *testing.T) {
	// All three qualifying forms pass.
	flagged := schema.New("A").Fields(field.Int("pk").Key()).Model()
	named := schema.New("B").Fields(field.Int("id")).Model()
	composite := schema.New("C").
		Fields(field.Int("x").Required(), field.Int("y").Required()).
		CompositeKey("x", "y").
		Model()
	assert.Empty(t, gen.Validate(registry(t, flagged, named, composite)))
}

func TestValidatePrimaryKeyExclusivity(t *testing.T) {
	// A flagged field next to a composite list would render both an
	// inline key and a block-level key directive.
	reg := registry(t, schema.New("Grant").
		Fields(
			field.Int("roleId").Key(),
			field.Int("userId").Required(),
		).
		CompositeKey("roleId", "userId").
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.True(t, gen.IsStructuralError(errs[0]))
	assert.Contains(t, errs[0].Error(), "composite key conflicts")

	// A field named "id" qualifies as a key on its own and conflicts the
	// same way.
	reg = registry(t, schema.New("Grant").
		Fields(
			field.Int("id"),
			field.Int("roleId").Required(),
			field.Int("userId").Required(),
		).
		CompositeKey("roleId", "userId").
		Model())
	errs = gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `field named "id"`)
}

func TestValidateMultipleFlaggedKeys(t *testing.T) {
	reg := registry(t, schema.New("Pair").
		Fields(
			field.Int("a").Key(),
			field.Int("b").Key(),
		).
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "multiple fields flagged")
}

func TestValidateCompositeKeyUnknownField(t *testing.T) {
	reg := registry(t, schema.New("Grant").
		Fields(field.Int("roleId").Required()).
		CompositeKey("roleId", "userId").
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "userId")
	assert.Contains(t, errs[0].Error(), "unknown field")
}

func TestValidateFieldErrors(t *testing.T) {
	reg := registry(t, schema.New("Bad").
		Fields(
			field.Int("id").Key(),
			field.String(""),
			field.New("loose", field.Type(0)),
			field.Bool("flag").MaxLen(3),
		).
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 3)
}

func TestValidateRelationTargetMissing(t *testing.T) {
	reg := registry(t, schema.New("Post").
		Fields(field.Int("id").Key()).
		Relations(relation.BelongsTo("author", "User")).
		Model())
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.True(t, gen.IsRelationIntegrityError(errs[0]))
	assert.ErrorIs(t, errs[0], gen.ErrRelationIntegrity)
}

func TestValidateThroughModelMissing(t *testing.T) {
	reg := registry(t,
		schema.New("Item").
			Fields(field.Int("id").Key()).
			Relations(relation.ManyToMany("tags", "Tag").Through("ItemTag", "itemId", "tagId")).
			Model(),
		schema.New("Tag").
			Fields(field.Int("id").Key()).
			Model(),
	)
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.True(t, gen.IsRelationIntegrityError(errs[0]))
}

func TestValidateForeignKeyTypeCollision(t *testing.T) {
	// A declared field with the conventional foreign-key name must match
	// the target's primary-key type; a mismatch is a collision, not an
	// explicit key declaration.
	reg := registry(t,
		schema.New("User").
			Fields(field.Int("id").Key().AutoIncrement()).
			Model(),
		schema.New("Post").
			Fields(
				field.Int("id").Key().AutoIncrement(),
				field.String("authorId"),
			).
			Relations(relation.BelongsTo("author", "User")).
			Model(),
	)
	errs := gen.Validate(reg)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "authorId")
	assert.Contains(t, errs[0].Error(), "does not match")
}

func TestValidateDeclaredForeignKeyMatchingType(t *testing.T) {
	reg := registry(t,
		schema.New("User").
			Fields(field.Int("id").Key().AutoIncrement()).
			Model(),
		schema.New("Post").
			Fields(
				field.Int("id").Key().AutoIncrement(),
				field.Int("authorId").Required(),
			).
			Relations(relation.BelongsTo("author", "User")).
			Model(),
	)
	assert.Empty(t, gen.Validate(reg))
}
