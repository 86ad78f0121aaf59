package field

import (
	"fmt"
	"regexp"
)

// A Type represents the abstract type of a field. The set is closed:
// values outside it fail descriptor construction, not schema generation.
type Type uint8

// Field types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeText
	TypeInt
	TypeBool
	TypeDateTime
	TypeJSON
	TypeDecimal
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeString:   "string",
	TypeText:     "text",
	TypeInt:      "integer",
	TypeBool:     "boolean",
	TypeDateTime: "datetime",
	TypeJSON:     "json",
	TypeDecimal:  "decimal",
}

// String returns the abstract type name.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the type is a member of the closed type set.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// DefaultKind classifies the default value of a field.
type DefaultKind uint8

// Default kinds.
const (
	// DefaultNone means the field has no default value.
	DefaultNone DefaultKind = iota
	// DefaultLiteral means the default is a literal value.
	DefaultLiteral
	// DefaultUUID means the default is a generated UUID.
	DefaultUUID
	// DefaultNow means the default is the current timestamp.
	DefaultNow
	// DefaultAutoIncrement means the column is auto-incremented.
	DefaultAutoIncrement
)

// Constraints holds the validation constraints of a field. The schema
// compiler derives indexes and native-type annotations from them; any
// further interpretation is left to the embedding application.
type Constraints struct {
	// MaxLen is the maximum length for string fields.
	MaxLen *int
	// MinLen is the minimum length for string fields.
	MinLen *int
	// Pattern is a regular expression the value must match.
	Pattern string
	// Enum restricts the value to a fixed set.
	Enum []string
	// Min is the inclusive lower bound for numeric fields.
	Min *float64
	// Max is the inclusive upper bound for numeric fields.
	Max *float64
}

// Descriptor is a field declaration: one abstract column of a model.
// Descriptors are produced by the Builder returned from the type
// constructors (String, Int, ...) and are immutable once their model
// is registered.
//
// Construction errors accumulate on Err (first error wins) and surface
// when the descriptor's model is validated.
type Descriptor struct {
	// Name is the field name (lowerCamel by convention).
	Name string
	// Type is the abstract field type.
	Type Type
	// Required indicates the column is non-nullable.
	Required bool
	// Unique indicates a uniqueness constraint.
	Unique bool
	// PrimaryKey marks this field as the model's primary key.
	PrimaryKey bool
	// AutoIncrement marks an integer primary key as auto-incremented.
	AutoIncrement bool
	// DefaultKind classifies the default value, if any.
	DefaultKind DefaultKind
	// DefaultValue holds the literal default when DefaultKind is DefaultLiteral.
	DefaultValue any
	// UpdateNow resets the field to the current timestamp on every update.
	UpdateNow bool
	// Constraints holds the validation constraints.
	Constraints Constraints
	// UI holds presentation metadata. The schema compiler ignores it.
	UI map[string]any
	// Err holds the first construction error, if any.
	Err error
}

// A Builder constructs one field descriptor. All modifiers return the
// builder to allow chaining.
type Builder struct {
	desc *Descriptor
}

// New returns a builder for a field with the given name and type. The
// typed constructors below are preferred; New exists for programmatic
// construction (e.g. descriptors decoded from plugin manifests).
func New(name string, t Type) *Builder {
	b := &Builder{desc: &Descriptor{Name: name, Type: t}}
	if name == "" {
		b.err(fmt.Errorf("field has no name"))
	}
	if !t.Valid() {
		b.err(fmt.Errorf("field %q has invalid type %d", name, t))
	}
	return b
}

// String returns a builder for a bounded string field.
func String(name string) *Builder { return New(name, TypeString) }

// Text returns a builder for an unbounded text field.
func Text(name string) *Builder { return New(name, TypeText) }

// Int returns a builder for an integer field.
func Int(name string) *Builder { return New(name, TypeInt) }

// Bool returns a builder for a boolean field.
func Bool(name string) *Builder { return New(name, TypeBool) }

// DateTime returns a builder for a timestamp field.
func DateTime(name string) *Builder { return New(name, TypeDateTime) }

// JSON returns a builder for a structured JSON field.
func JSON(name string) *Builder { return New(name, TypeJSON) }

// Decimal returns a builder for an arbitrary-precision decimal field.
func Decimal(name string) *Builder { return New(name, TypeDecimal) }

// Required marks the field as non-nullable.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Unique adds a uniqueness constraint.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Key marks the field as the model's primary key. Primary keys are
// implicitly required.
func (b *Builder) Key() *Builder {
	b.desc.PrimaryKey = true
	b.desc.Required = true
	return b
}

// AutoIncrement marks an integer primary key as auto-incremented.
func (b *Builder) AutoIncrement() *Builder {
	if b.desc.Type != TypeInt {
		b.err(fmt.Errorf("field %q: auto-increment requires an integer field, got %s", b.desc.Name, b.desc.Type))
		return b
	}
	if b.desc.DefaultKind != DefaultNone {
		b.err(fmt.Errorf("field %q: multiple defaults", b.desc.Name))
		return b
	}
	b.desc.AutoIncrement = true
	b.desc.DefaultKind = DefaultAutoIncrement
	return b
}

// Default sets a literal default value.
func (b *Builder) Default(v any) *Builder {
	if b.desc.DefaultKind != DefaultNone {
		b.err(fmt.Errorf("field %q: multiple defaults", b.desc.Name))
		return b
	}
	b.desc.DefaultKind = DefaultLiteral
	b.desc.DefaultValue = v
	return b
}

// DefaultUUID sets a generated-UUID default. Valid for string fields only.
func (b *Builder) DefaultUUID() *Builder {
	if b.desc.Type != TypeString {
		b.err(fmt.Errorf("field %q: uuid default requires a string field, got %s", b.desc.Name, b.desc.Type))
		return b
	}
	if b.desc.DefaultKind != DefaultNone {
		b.err(fmt.Errorf("field %q: multiple defaults", b.desc.Name))
		return b
	}
	b.desc.DefaultKind = DefaultUUID
	return b
}

// DefaultNow sets a current-timestamp default. Valid for datetime fields only.
func (b *Builder) DefaultNow() *Builder {
	if b.desc.Type != TypeDateTime {
		b.err(fmt.Errorf("field %q: now default requires a datetime field, got %s", b.desc.Name, b.desc.Type))
		return b
	}
	if b.desc.DefaultKind != DefaultNone {
		b.err(fmt.Errorf("field %q: multiple defaults", b.desc.Name))
		return b
	}
	b.desc.DefaultKind = DefaultNow
	return b
}

// UpdateNow resets the field to the current timestamp on every update.
// Valid for datetime fields only.
func (b *Builder) UpdateNow() *Builder {
	if b.desc.Type != TypeDateTime {
		b.err(fmt.Errorf("field %q: update-now requires a datetime field, got %s", b.desc.Name, b.desc.Type))
		return b
	}
	b.desc.UpdateNow = true
	return b
}

// MaxLen sets the maximum length constraint for string fields.
func (b *Builder) MaxLen(n int) *Builder {
	if b.desc.Type != TypeString && b.desc.Type != TypeText {
		b.err(fmt.Errorf("field %q: max length on non-string field", b.desc.Name))
		return b
	}
	if n <= 0 {
		b.err(fmt.Errorf("field %q: max length must be positive, got %d", b.desc.Name, n))
		return b
	}
	b.desc.Constraints.MaxLen = &n
	return b
}

// MinLen sets the minimum length constraint for string fields.
func (b *Builder) MinLen(n int) *Builder {
	if b.desc.Type != TypeString && b.desc.Type != TypeText {
		b.err(fmt.Errorf("field %q: min length on non-string field", b.desc.Name))
		return b
	}
	if n < 0 {
		b.err(fmt.Errorf("field %q: min length must be non-negative, got %d", b.desc.Name, n))
		return b
	}
	b.desc.Constraints.MinLen = &n
	return b
}

// Match sets a regular-expression constraint. The pattern is compiled at
// construction so an invalid expression fails here, not at generation time.
func (b *Builder) Match(pattern string) *Builder {
	if _, err := regexp.Compile(pattern); err != nil {
		b.err(fmt.Errorf("field %q: invalid pattern: %w", b.desc.Name, err))
		return b
	}
	b.desc.Constraints.Pattern = pattern
	return b
}

// In restricts the value to a fixed set.
func (b *Builder) In(values ...string) *Builder {
	if len(values) == 0 {
		b.err(fmt.Errorf("field %q: empty enum", b.desc.Name))
		return b
	}
	b.desc.Constraints.Enum = values
	return b
}

// Min sets the inclusive lower bound for numeric fields.
func (b *Builder) Min(v float64) *Builder {
	if !b.numeric() {
		b.err(fmt.Errorf("field %q: min bound on non-numeric field", b.desc.Name))
		return b
	}
	b.desc.Constraints.Min = &v
	return b
}

// Max sets the inclusive upper bound for numeric fields.
func (b *Builder) Max(v float64) *Builder {
	if !b.numeric() {
		b.err(fmt.Errorf("field %q: max bound on non-numeric field", b.desc.Name))
		return b
	}
	b.desc.Constraints.Max = &v
	return b
}

// Meta attaches one UI metadata entry. The schema compiler carries the
// map through untouched.
func (b *Builder) Meta(key string, value any) *Builder {
	if b.desc.UI == nil {
		b.desc.UI = make(map[string]any)
	}
	b.desc.UI[key] = value
	return b
}

// Descriptor returns the built field descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

func (b *Builder) numeric() bool {
	return b.desc.Type == TypeInt || b.desc.Type == TypeDecimal
}

// err records the first construction error.
func (b *Builder) err(e error) {
	if b.desc.Err == nil {
		b.desc.Err = e
	}
}
