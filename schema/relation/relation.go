package relation

import "fmt"

// A Kind represents the kind of a relation. The set is closed and
// validated at construction.
type Kind uint8

// Relation kinds.
const (
	KindInvalid Kind = iota
	KindHasOne
	KindHasMany
	KindBelongsTo
	KindManyToMany
	endKinds
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindHasOne:     "hasOne",
	KindHasMany:    "hasMany",
	KindBelongsTo:  "belongsTo",
	KindManyToMany: "manyToMany",
}

// String returns the relation kind name.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the kind is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < endKinds
}

// Through is an explicit junction specification for a many-to-many
// relation. When present, the resolver uses the named junction model
// verbatim and synthesizes nothing.
type Through struct {
	// Model is the name of the junction model. It must be registered
	// like any other model.
	Model string
	// ForeignKey is the junction field referencing the declaring model.
	ForeignKey string
	// TargetKey is the junction field referencing the target model.
	TargetKey string
}

// Descriptor is a relation declaration between two models. Descriptors
// are produced by the Builder returned from the kind constructors and
// are immutable once their model is registered.
type Descriptor struct {
	// Name is the relation name (lowerCamel by convention). For
	// belongsTo relations it also drives the conventional foreign-key
	// name "<name>Id".
	Name string
	// Kind is the relation kind.
	Kind Kind
	// Target is the name of the model the relation points to.
	Target string
	// ForeignKey optionally overrides the conventional foreign-key
	// field name. Meaningful for belongsTo relations only.
	ForeignKey string
	// Inverse optionally names the inverse relation declared on the
	// target model.
	Inverse string
	// Through is the optional explicit junction specification for
	// manyToMany relations.
	Through *Through
	// Err holds the first construction error, if any.
	Err error
}

// A Builder constructs one relation descriptor.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a relation with the given name, kind and
// target model name. The kind constructors below are preferred.
func New(name string, k Kind, target string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name, Kind: k, Target: target}}
	if name == "" {
		b.err(fmt.Errorf("relation has no name"))
	}
	if !k.Valid() {
		b.err(fmt.Errorf("relation %q has invalid kind %d", name, k))
	}
	if target == "" {
		b.err(fmt.Errorf("relation %q has no target model", name))
	}
	return b
}

// HasOne declares a to-one relation whose foreign key lives on the
// target model.
func HasOne(name, target string) *Builder { return New(name, KindHasOne, target) }

// HasMany declares a to-many relation whose foreign key lives on the
// target model.
func HasMany(name, target string) *Builder { return New(name, KindHasMany, target) }

// BelongsTo declares a to-one relation owning the foreign key. The
// resolver synthesizes the key field ("<name>Id" by convention) unless
// the model already declares it.
func BelongsTo(name, target string) *Builder { return New(name, KindBelongsTo, target) }

// ManyToMany declares a many-to-many relation. Without an explicit
// Through junction, the resolver synthesizes one canonical junction
// entity per participating model pair.
func ManyToMany(name, target string) *Builder { return New(name, KindManyToMany, target) }

// ForeignKey overrides the conventional foreign-key field name.
// Valid for belongsTo relations only.
func (b *Builder) ForeignKey(name string) *Builder {
	if b.desc.Kind != KindBelongsTo {
		b.err(fmt.Errorf("relation %q: foreign key override is valid for belongsTo only, got %s", b.desc.Name, b.desc.Kind))
		return b
	}
	if name == "" {
		b.err(fmt.Errorf("relation %q: empty foreign key name", b.desc.Name))
		return b
	}
	b.desc.ForeignKey = name
	return b
}

// Inverse names the inverse relation declared on the target model. When
// both sides declare each other, the generated annotations carry a shared
// relation label, disambiguating multiple relations between the same two
// models.
func (b *Builder) Inverse(name string) *Builder {
	b.desc.Inverse = name
	return b
}

// Through sets an explicit junction for a manyToMany relation.
func (b *Builder) Through(model, foreignKey, targetKey string) *Builder {
	if b.desc.Kind != KindManyToMany {
		b.err(fmt.Errorf("relation %q: through junction is valid for manyToMany only, got %s", b.desc.Name, b.desc.Kind))
		return b
	}
	if model == "" || foreignKey == "" || targetKey == "" {
		b.err(fmt.Errorf("relation %q: through junction requires model and both key names", b.desc.Name))
		return b
	}
	b.desc.Through = &Through{Model: model, ForeignKey: foreignKey, TargetKey: targetKey}
	return b
}

// Descriptor returns the built relation descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// err records the first construction error.
func (b *Builder) err(e error) {
	if b.desc.Err == nil {
		b.desc.Err = e
	}
}
