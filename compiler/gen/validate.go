package gen

import (
	"fmt"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/compiler/load"
	"github.com/loomstack/loom/schema/relation"
)

// Validate checks the structural invariants of every model in the
// registry. All errors across all models are collected and returned
// together, never short-circuited, so the application author can fix the
// descriptors in one pass. Any returned error is fatal: generation must
// not proceed and no output artifact is written.
func Validate(reg *load.Registry) []error {
	var errs []error
	for _, m := range reg.All() {
		errs = append(errs, validateModel(m, reg)...)
	}
	return errs
}

func validateModel(m *loom.Model, reg *load.Registry) []error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, NewStructuralError("", "", "model has no name"))
		return errs
	}
	if len(m.Fields) == 0 {
		errs = append(errs, NewStructuralError(m.Name, "", "model has no fields"))
	}
	for _, f := range m.Fields {
		switch {
		case f.Name == "":
			errs = append(errs, NewStructuralError(m.Name, "", "field has no name"))
		case !f.Type.Valid():
			errs = append(errs, NewStructuralError(m.Name, f.Name, "field has no valid type"))
		case f.Err != nil:
			errs = append(errs, NewStructuralError(m.Name, f.Name, f.Err.Error()))
		}
	}
	if !hasPrimaryKey(m) {
		errs = append(errs, NewStructuralError(m.Name, "",
			"model has no primary key: flag a field as primary, declare a field named \"id\", or declare a composite key"))
	}
	// Exactly one primary-key form: a second flagged field, or a
	// composite list next to a field-level key, would render two keys on
	// the same model.
	var flagged []string
	for _, f := range m.Fields {
		if f.PrimaryKey {
			flagged = append(flagged, f.Name)
		}
	}
	if len(flagged) > 1 {
		errs = append(errs, NewStructuralError(m.Name, flagged[1],
			"multiple fields flagged as primary key"))
	}
	if len(m.PrimaryKey) > 0 {
		if len(flagged) > 0 {
			errs = append(errs, NewStructuralError(m.Name, flagged[0],
				"composite key conflicts with a field flagged as primary key"))
		} else if _, ok := m.FieldByName("id"); ok {
			errs = append(errs, NewStructuralError(m.Name, "id",
				"composite key conflicts with a field named \"id\""))
		}
	}
	for _, name := range m.PrimaryKey {
		if _, ok := m.FieldByName(name); !ok {
			errs = append(errs, NewStructuralError(m.Name, name, "composite key references unknown field"))
		}
	}
	for _, rel := range m.Relations {
		errs = append(errs, validateRelation(m, rel, reg)...)
	}
	return errs
}

func validateRelation(m *loom.Model, rel *relation.Descriptor, reg *load.Registry) []error {
	var errs []error
	switch {
	case rel.Name == "":
		errs = append(errs, NewStructuralError(m.Name, "", "relation has no name"))
		return errs
	case !rel.Kind.Valid():
		errs = append(errs, NewStructuralError(m.Name, rel.Name, "relation has no valid kind"))
		return errs
	case rel.Target == "":
		errs = append(errs, NewStructuralError(m.Name, rel.Name, "relation has no target model"))
		return errs
	case rel.Err != nil:
		errs = append(errs, NewStructuralError(m.Name, rel.Name, rel.Err.Error()))
		return errs
	}
	if !reg.Has(rel.Target) {
		errs = append(errs, NewRelationIntegrityError(m.Name, rel.Name, rel.Target))
		return errs
	}
	if rel.Through != nil && !reg.Has(rel.Through.Model) {
		errs = append(errs, NewRelationIntegrityError(m.Name, rel.Name, rel.Through.Model))
	}
	// A declared field may serve as the foreign key of a belongsTo
	// relation, but only with the exact type of the target's primary
	// key; anything else is a collision with the field the resolver
	// would otherwise synthesize.
	if rel.Kind == relation.KindBelongsTo {
		if f, ok := m.FieldByName(fkName(rel)); ok {
			target, err := reg.Get(rel.Target)
			if err == nil {
				if pk, ok := primaryKey(target); ok && f.Type != pk.Type {
					errs = append(errs, NewStructuralError(m.Name, f.Name,
						fmt.Sprintf("field collides with the foreign key of relation %q: type %s does not match %s.%s (%s)",
							rel.Name, f.Type, target.Name, pk.Name, pk.Type)))
				}
			}
		}
	}
	return errs
}

// hasPrimaryKey reports if the model has a primary key in any of the
// three qualifying forms: a field flagged primary, a field literally
// named "id", or a non-empty composite key list.
func hasPrimaryKey(m *loom.Model) bool {
	if len(m.PrimaryKey) > 0 {
		return true
	}
	_, ok := primaryKey(m)
	return ok
}
