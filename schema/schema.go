// Package schema provides the entry point for declaring loom models.
//
// A model is declared once, at startup, and registered with the
// compiler/load registry:
//
//	user := schema.New("User").
//		Module("auth").
//		Fields(
//			field.Int("id").Key().AutoIncrement(),
//			field.String("email").Required().Unique().MaxLen(255),
//		).
//		Relations(
//			relation.HasMany("posts", "Post").Inverse("author"),
//		).
//		Access(loom.AccessRule{Role: "admin"}).
//		Model()
//
// The builder performs no structural validation beyond what the field and
// relation builders already enforce; the compiler validator reports all
// structural problems of all models together before any generation runs.
package schema

import (
	"github.com/loomstack/loom"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

// A Builder constructs one model descriptor.
type Builder struct {
	model *loom.Model
}

// New returns a builder for a model with the given PascalCase name.
func New(name string) *Builder {
	return &Builder{model: &loom.Model{Name: name}}
}

// Module sets the owning application module.
func (b *Builder) Module(name string) *Builder {
	b.model.Module = name
	return b
}

// Table overrides the target table name. The default is the snake_case
// plural of the model name.
func (b *Builder) Table(name string) *Builder {
	b.model.Table = name
	return b
}

// Fields appends field declarations in order.
func (b *Builder) Fields(fields ...*field.Builder) *Builder {
	for _, f := range fields {
		b.model.Fields = append(b.model.Fields, f.Descriptor())
	}
	return b
}

// Relations appends relation declarations.
func (b *Builder) Relations(relations ...*relation.Builder) *Builder {
	for _, r := range relations {
		b.model.Relations = append(b.model.Relations, r.Descriptor())
	}
	return b
}

// CompositeKey declares a composite primary key over the named fields.
func (b *Builder) CompositeKey(fields ...string) *Builder {
	b.model.PrimaryKey = append(b.model.PrimaryKey, fields...)
	return b
}

// Access appends access-control rules. The schema compiler carries them
// but does not interpret them.
func (b *Builder) Access(rules ...loom.AccessRule) *Builder {
	b.model.AccessRules = append(b.model.AccessRules, rules...)
	return b
}

// OwnedBy names the field holding the owning actor reference.
func (b *Builder) OwnedBy(field string) *Builder {
	b.ownership().OwnerField = field
	return b
}

// EmitEvents requests lifecycle events for this entity.
func (b *Builder) EmitEvents() *Builder {
	b.ownership().EmitEvents = true
	return b
}

// AutoTimestamps requests the standard audit fields for this model even
// when the generation run does not enable them globally.
func (b *Builder) AutoTimestamps() *Builder {
	b.model.AutoTimestamps = true
	return b
}

// Model returns the built model descriptor.
func (b *Builder) Model() *loom.Model {
	return b.model
}

func (b *Builder) ownership() *loom.Ownership {
	if b.model.Ownership == nil {
		b.model.Ownership = &loom.Ownership{}
	}
	return b.model.Ownership
}
