package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loomstack/loom/schema/field"
)

// A column is one rendered line inside a model block: a declared field,
// a synthesized foreign key, an audit field, or a relation annotation.
type column struct {
	Name     string
	Type     string
	Optional bool // renders the "?" modifier
	List     bool // renders the "[]" modifier
	Attrs    []string
	// Doc carries the validation constraints that have no attribute
	// syntax. Pretty mode renders it as a doc comment above the field.
	Doc string
}

// mapField maps one field declaration to a dialect-specific column
// definition. An unrecognized type or default is reported as an error,
// which the orchestrator downgrades to a per-model warning.
func mapField(f *field.Descriptor, d Dialect) (column, error) {
	scalar, err := d.scalar(f.Type)
	if err != nil {
		return column{}, err
	}
	col := column{
		Name:     f.Name,
		Type:     scalar,
		Optional: !f.Required && !f.PrimaryKey,
	}
	if f.PrimaryKey {
		col.Attrs = append(col.Attrs, "@id")
	}
	if def, err := defaultAttr(f); err != nil {
		return column{}, err
	} else if def != "" {
		col.Attrs = append(col.Attrs, def)
	}
	if f.UpdateNow {
		col.Attrs = append(col.Attrs, "@updatedAt")
	}
	if f.Unique {
		col.Attrs = append(col.Attrs, "@unique")
	}
	if native := d.nativeType(f); native != "" {
		col.Attrs = append(col.Attrs, native)
	}
	col.Doc = constraintDoc(f.Constraints)
	return col, nil
}

// constraintDoc renders the constraints that have no column-attribute
// syntax, so they survive into the document as a doc comment.
func constraintDoc(c field.Constraints) string {
	var parts []string
	if c.Pattern != "" {
		parts = append(parts, "pattern: "+c.Pattern)
	}
	if len(c.Enum) > 0 {
		parts = append(parts, "one of: "+strings.Join(c.Enum, ", "))
	}
	if c.MinLen != nil {
		parts = append(parts, fmt.Sprintf("min length: %d", *c.MinLen))
	}
	if c.Min != nil {
		parts = append(parts, "min: "+strconv.FormatFloat(*c.Min, 'f', -1, 64))
	}
	if c.Max != nil {
		parts = append(parts, "max: "+strconv.FormatFloat(*c.Max, 'f', -1, 64))
	}
	return strings.Join(parts, "; ")
}

// defaultAttr renders the @default attribute for a field, if any.
func defaultAttr(f *field.Descriptor) (string, error) {
	switch f.DefaultKind {
	case field.DefaultNone:
		return "", nil
	case field.DefaultAutoIncrement:
		return "@default(autoincrement())", nil
	case field.DefaultUUID:
		return "@default(uuid())", nil
	case field.DefaultNow:
		return "@default(now())", nil
	case field.DefaultLiteral:
		lit, err := literal(f.DefaultValue)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", f.Name, err)
		}
		return "@default(" + lit + ")", nil
	default:
		return "", fmt.Errorf("field %q: unrecognized default kind %d", f.Name, f.DefaultKind)
	}
}

// literal renders a literal default value in document syntax.
func literal(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported default literal %T", v)
	}
}

// Standard audit field names, in emission order.
var auditFieldNames = []string{"createdAt", "updatedAt", "createdBy", "updatedBy"}

// auditFields returns the standard bookkeeping field descriptors. The
// orchestrator appends only those whose names the model has not already
// declared, to avoid duplicate emission.
func auditFields() []*field.Descriptor {
	return []*field.Descriptor{
		field.DateTime("createdAt").Required().DefaultNow().Descriptor(),
		field.DateTime("updatedAt").Required().DefaultNow().UpdateNow().Descriptor(),
		field.String("createdBy").Descriptor(),
		field.String("updatedBy").Descriptor(),
	}
}
