package gen

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/compiler/load"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

// fkName returns the foreign-key field name for a belongsTo relation:
// the explicit override, or "<relationName>Id" by convention.
func fkName(r *relation.Descriptor) string {
	if r.ForeignKey != "" {
		return r.ForeignKey
	}
	return r.Name + "Id"
}

// primaryKey returns the single primary-key field of a model: the field
// flagged primary, or the field literally named "id". Models with only a
// composite primary key return false.
func primaryKey(m *loom.Model) (*field.Descriptor, bool) {
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	if f, ok := m.FieldByName("id"); ok {
		return f, true
	}
	return nil, false
}

// ForeignKeyFields computes the foreign-key fields the belongsTo
// relations of a model require and the model does not already declare.
// Each synthesized field carries the abstract type of the target's
// primary key and is optional (nullable) unless the application declared
// the key itself.
func ForeignKeyFields(m *loom.Model, reg *load.Registry) ([]*field.Descriptor, error) {
	var fks []*field.Descriptor
	seen := make(map[string]struct{})
	for _, rel := range m.Relations {
		if rel.Kind != relation.KindBelongsTo {
			continue
		}
		name := fkName(rel)
		if _, ok := m.FieldByName(name); ok {
			// Declared explicitly; the validator has already checked
			// the type against the target's primary key.
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		target, err := reg.Get(rel.Target)
		if err != nil {
			return nil, NewRelationIntegrityError(m.Name, rel.Name, rel.Target)
		}
		pk, ok := primaryKey(target)
		if !ok {
			return nil, NewGenerationError(m.Name,
				fmt.Sprintf("relation %q: target %s has no single-field primary key to reference", rel.Name, rel.Target), nil)
		}
		seen[name] = struct{}{}
		fks = append(fks, field.New(name, pk.Type).Descriptor())
	}
	return fks, nil
}

// pairKey canonicalizes a many-to-many model pair: the two names ordered
// lexicographically, so the same pair declared from either side (or from
// both) resolves to one key.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// JunctionModels computes the junction entities required by the
// manyToMany relations across the registry: explicit Through junctions
// are recorded verbatim (nothing is synthesized for them), and each
// remaining pair yields exactly one synthesized junction regardless of
// declaration order or how many sides declared the relation.
//
// It returns the synthesized junction models in first-declaration order,
// the pair-to-junction-name mapping consumed when rendering relation
// annotations, and one recoverable error per pair that could not be
// synthesized.
func JunctionModels(reg *load.Registry) ([]*loom.Model, map[string]string, []error) {
	junctions := make(map[string]string)
	// Explicit Through junctions win over synthesis for their pair.
	for _, m := range reg.All() {
		for _, rel := range m.Relations {
			if rel.Kind == relation.KindManyToMany && rel.Through != nil {
				junctions[pairKey(m.Name, rel.Target)] = rel.Through.Model
			}
		}
	}
	var (
		synthesized []*loom.Model
		taken       = make(map[string]struct{})
		errs        []error
	)
	for _, m := range reg.All() {
		for _, rel := range m.Relations {
			if rel.Kind != relation.KindManyToMany || rel.Through != nil {
				continue
			}
			key := pairKey(m.Name, rel.Target)
			if _, ok := junctions[key]; ok {
				continue
			}
			target, err := reg.Get(rel.Target)
			if err != nil {
				errs = append(errs, NewRelationIntegrityError(m.Name, rel.Name, rel.Target))
				continue
			}
			a, b := m, target
			if b.Name < a.Name {
				a, b = b, a
			}
			jm, err := synthesizeJunction(a, b)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			// A synthesized junction must not shadow a registered model
			// (or another synthesized pair); the document would define
			// the name twice.
			if _, dup := taken[jm.Name]; dup || reg.Has(jm.Name) {
				errs = append(errs, NewGenerationError(m.Name,
					fmt.Sprintf("relation %q: junction name %s collides with an existing model", rel.Name, jm.Name), nil))
				continue
			}
			taken[jm.Name] = struct{}{}
			junctions[key] = jm.Name
			synthesized = append(synthesized, jm)
		}
	}
	return synthesized, junctions, errs
}

// synthesizeJunction builds the implicit junction entity for a canonical
// (lexicographically ordered) model pair: two foreign keys typed after
// each side's primary key, forming a composite primary key.
func synthesizeJunction(a, b *loom.Model) (*loom.Model, error) {
	apk, ok := primaryKey(a)
	if !ok {
		return nil, NewGenerationError(a.Name,
			fmt.Sprintf("manyToMany with %s: no single-field primary key to reference", b.Name), nil)
	}
	bpk, ok := primaryKey(b)
	if !ok {
		return nil, NewGenerationError(b.Name,
			fmt.Sprintf("manyToMany with %s: no single-field primary key to reference", a.Name), nil)
	}
	relA, relB := camelDown(a.Name), camelDown(b.Name)
	fkA, fkB := relA+"Id", relB+"Id"
	if fkB == fkA {
		// Self-referencing pair: disambiguate the second leg.
		relB = "related" + a.Name
		fkB = relB + "Id"
	}
	return &loom.Model{
		Name:   a.Name + b.Name,
		Module: a.Module,
		Fields: []*field.Descriptor{
			field.New(fkA, apk.Type).Required().Descriptor(),
			field.New(fkB, bpk.Type).Required().Descriptor(),
		},
		Relations: []*relation.Descriptor{
			relation.BelongsTo(relA, a.Name).ForeignKey(fkA).Descriptor(),
			relation.BelongsTo(relB, b.Name).ForeignKey(fkB).Descriptor(),
		},
		PrimaryKey: []string{fkA, fkB},
	}, nil
}

// relationLabel derives the annotation label pairing the two sides of a
// relation whose inverse is declared. Both sides reach the same label
// from the unordered pair of relation names, so declaring the inverse on
// both models disambiguates multiple relations between the same pair.
func relationLabel(r *relation.Descriptor) string {
	if r.Inverse == "" {
		return ""
	}
	a, b := r.Name, r.Inverse
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// relationColumns renders the relation annotations of a model: belongsTo
// lines referencing their foreign key, hasOne/hasMany back-references,
// and manyToMany lines pointing at the pair's junction entity.
func relationColumns(m *loom.Model, reg *load.Registry, junctions map[string]string) ([]column, error) {
	var cols []column
	for _, rel := range m.Relations {
		label := relationLabel(rel)
		switch rel.Kind {
		case relation.KindBelongsTo:
			target, err := reg.Get(rel.Target)
			if err != nil {
				return nil, NewRelationIntegrityError(m.Name, rel.Name, rel.Target)
			}
			pk, ok := primaryKey(target)
			if !ok {
				return nil, NewGenerationError(m.Name,
					fmt.Sprintf("relation %q: target %s has no single-field primary key to reference", rel.Name, rel.Target), nil)
			}
			key := fkName(rel)
			optional := true
			if f, ok := m.FieldByName(key); ok {
				optional = !f.Required
			}
			attr := fmt.Sprintf("@relation(fields: [%s], references: [%s])", key, pk.Name)
			if label != "" {
				attr = fmt.Sprintf("@relation(%q, fields: [%s], references: [%s])", label, key, pk.Name)
			}
			cols = append(cols, column{
				Name:     rel.Name,
				Type:     rel.Target,
				Optional: optional,
				Attrs:    []string{attr},
			})
		case relation.KindHasOne:
			col := column{Name: rel.Name, Type: rel.Target, Optional: true}
			if label != "" {
				col.Attrs = []string{fmt.Sprintf("@relation(%q)", label)}
			}
			cols = append(cols, col)
		case relation.KindHasMany:
			col := column{Name: rel.Name, Type: rel.Target, List: true}
			if label != "" {
				col.Attrs = []string{fmt.Sprintf("@relation(%q)", label)}
			}
			cols = append(cols, col)
		case relation.KindManyToMany:
			// The column points at the junction entity; that pairing is
			// unambiguous, so the label never applies here.
			junction, ok := junctions[pairKey(m.Name, rel.Target)]
			if !ok {
				return nil, NewGenerationError(m.Name,
					fmt.Sprintf("relation %q: no junction entity for pair (%s, %s)", rel.Name, m.Name, rel.Target), nil)
			}
			cols = append(cols, column{Name: rel.Name, Type: junction, List: true})
		default:
			return nil, NewGenerationError(m.Name,
				fmt.Sprintf("relation %q: unrecognized kind %d", rel.Name, rel.Kind), nil)
		}
	}
	return cols, nil
}

// camelDown converts a PascalCase name to lowerCamel.
func camelDown(name string) string {
	return inflect.CamelizeDownFirst(inflect.Underscore(name))
}

// tableName returns the target table of a model: the explicit override,
// or the snake_case plural of the model name.
func tableName(m *loom.Model) string {
	if m.Table != "" {
		return m.Table
	}
	return inflect.Underscore(inflect.Pluralize(m.Name))
}
