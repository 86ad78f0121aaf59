// Package loom provides the declarative model layer for loom applications.
//
// A loom application describes its data entities as module-scoped model
// descriptors: plain Go values built with the schema, schema/field and
// schema/relation packages. Descriptors are collected once at startup into
// a registry (see compiler/load) and compiled into a single dialect-specific
// schema document (see compiler/gen).
//
// Descriptors are created once, registered once, and never mutated after
// the registry is built.
package loom

import (
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

// Model is the descriptor of one data entity. It is owned by the embedding
// application, constructed via the schema package, and treated as immutable
// once registered.
type Model struct {
	// Name is the unique PascalCase identifier of the entity.
	Name string
	// Module is the owning application module (e.g. "crm", "billing").
	// Generated model blocks are grouped by module.
	Module string
	// Table is the target table name. Empty means the snake_case plural
	// of Name, derived at formatting time.
	Table string
	// Fields holds the ordered field declarations.
	Fields []*field.Descriptor
	// Relations holds the relation declarations.
	Relations []*relation.Descriptor
	// PrimaryKey is an optional composite primary key, given as an ordered
	// list of field names. Mutually exclusive with a field-level primary
	// key in the generated output.
	PrimaryKey []string
	// AccessRules holds the access-control rule set of the entity.
	// The schema compiler carries them but does not interpret them.
	AccessRules []AccessRule
	// Ownership is the optional ownership/event configuration.
	Ownership *Ownership
	// AutoTimestamps requests the standard audit fields for this model
	// even when the generation run does not enable them globally.
	AutoTimestamps bool
}

// FieldByName returns the field declaration with the given name, if any.
func (m *Model) FieldByName(name string) (*field.Descriptor, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Action is a CRUD action referenced by access-control rules.
type Action string

// Access-control actions.
const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AccessRule grants a role a set of actions on an entity.
type AccessRule struct {
	// Role is the application role the rule applies to.
	Role string
	// Actions are the granted actions. Empty means all actions.
	Actions []Action
}

// Ownership configures row ownership and lifecycle events for an entity.
type Ownership struct {
	// OwnerField names the field holding the owning actor reference.
	OwnerField string
	// EmitEvents requests lifecycle events (created/updated/deleted)
	// to be published for this entity.
	EmitEvents bool
}
