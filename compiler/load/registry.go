// Package load collects model descriptors into an immutable registry.
//
// Registration is explicit: the embedding application (or its module
// loader) constructs a Builder, registers every model exactly once, and
// calls Build to obtain the frozen Registry the compiler consumes. The
// Loader type coordinates asynchronous producers (plugins registering
// models during startup) behind an awaited readiness future with a
// bounded timeout.
package load

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/schema/field"
	"github.com/loomstack/loom/schema/relation"
)

// A Builder accumulates model descriptors before the registry is frozen.
// It is safe for concurrent registration.
type Builder struct {
	mu     sync.Mutex
	models []*loom.Model
	names  map[string]struct{}
	frozen bool
}

// NewBuilder returns an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]struct{})}
}

// Register appends a model descriptor. It rejects a nil model, a
// duplicate name, and registration after Build.
func (b *Builder) Register(m *loom.Model) error {
	if m == nil {
		return errors.New("load: nil model descriptor")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return loom.ErrRegistryFrozen
	}
	if _, ok := b.names[m.Name]; ok {
		return loom.NewDuplicateModelError(m.Name)
	}
	b.names[m.Name] = struct{}{}
	b.models = append(b.models, m)
	return nil
}

// Build freezes the builder and returns the immutable registry snapshot.
// Further Register calls fail with ErrRegistryFrozen. Build is idempotent;
// repeated calls return snapshots over the same descriptors.
func (b *Builder) Build() *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen = true
	r := &Registry{
		models: make([]*loom.Model, len(b.models)),
		names:  make(map[string]*loom.Model, len(b.models)),
	}
	copy(r.models, b.models)
	for _, m := range r.models {
		r.names[m.Name] = m
	}
	return r
}

// A Registry is the frozen, process-wide collection of model descriptors.
// It is read-only for the remainder of a generation run.
type Registry struct {
	models []*loom.Model
	names  map[string]*loom.Model
}

// All returns the registered models in registration order.
func (r *Registry) All() []*loom.Model {
	out := make([]*loom.Model, len(r.models))
	copy(out, r.models)
	return out
}

// Get returns the model with the given name.
func (r *Registry) Get(name string) (*loom.Model, error) {
	m, ok := r.names[name]
	if !ok {
		return nil, loom.NewModelNotFoundError(name)
	}
	return m, nil
}

// Has reports if a model with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.models)
}

// DetectCycles traverses the belongsTo/hasMany relation graph and returns
// a diagnostic warning per multi-model cycle. Self-referencing models
// (e.g. a task with a parent task) are legal and never reported.
//
// The warnings are informational only; cyclic references are valid
// schemas and generation proceeds regardless.
func (r *Registry) DetectCycles() []string {
	// Dependency edges point child -> parent: a belongsTo declares the
	// dependency directly, a hasMany declares it from the target side.
	adj := make(map[string][]string)
	for _, m := range r.models {
		for _, rel := range m.Relations {
			switch rel.Kind {
			case relation.KindBelongsTo:
				if rel.Target != m.Name && r.Has(rel.Target) {
					adj[m.Name] = append(adj[m.Name], rel.Target)
				}
			case relation.KindHasMany:
				if rel.Target != m.Name && r.Has(rel.Target) {
					adj[rel.Target] = append(adj[rel.Target], m.Name)
				}
			}
		}
	}
	var (
		warnings []string
		seen     = make(map[string]struct{})
		state    = make(map[string]int) // 0 unvisited, 1 on stack, 2 done
		stack    []string
		visit    func(string)
	)
	visit = func(name string) {
		state[name] = 1
		stack = append(stack, name)
		for _, next := range adj[name] {
			switch state[next] {
			case 0:
				visit(next)
			case 1:
				// Found a cycle: slice the stack from the first
				// occurrence of next.
				i := len(stack) - 1
				for i >= 0 && stack[i] != next {
					i--
				}
				cycle := append(append([]string{}, stack[i:]...), next)
				key := canonicalCycle(cycle[:len(cycle)-1])
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					warnings = append(warnings, "relation cycle: "+strings.Join(cycle, " -> "))
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = 2
	}
	// Deterministic traversal order.
	names := make([]string, 0, len(r.models))
	for _, m := range r.models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		if state[name] == 0 {
			visit(name)
		}
	}
	return warnings
}

// canonicalCycle rotates a cycle so it starts at its smallest member,
// making the same cycle discovered from different entry points compare equal.
func canonicalCycle(cycle []string) string {
	min := 0
	for i := range cycle {
		if cycle[i] < cycle[min] {
			min = i
		}
	}
	rotated := append(append([]string{}, cycle[min:]...), cycle[:min]...)
	return strings.Join(rotated, "->")
}

// fingerprint projection types. Only schema-affecting descriptor data is
// encoded, in declaration order, so the fingerprint is deterministic and
// insensitive to UI metadata.
type (
	fpField struct {
		Name          string            `msgpack:"n"`
		Type          field.Type        `msgpack:"t"`
		Required      bool              `msgpack:"r"`
		Unique        bool              `msgpack:"u"`
		PrimaryKey    bool              `msgpack:"pk"`
		AutoIncrement bool              `msgpack:"ai"`
		DefaultKind   field.DefaultKind `msgpack:"dk"`
		DefaultValue  any               `msgpack:"dv,omitempty"`
		UpdateNow     bool              `msgpack:"un,omitempty"`
		MaxLen        *int              `msgpack:"ml,omitempty"`
		MinLen        *int              `msgpack:"mn,omitempty"`
		Pattern       string            `msgpack:"p,omitempty"`
		Enum          []string          `msgpack:"e,omitempty"`
		Min           *float64          `msgpack:"lo,omitempty"`
		Max           *float64          `msgpack:"hi,omitempty"`
	}
	fpRelation struct {
		Name       string        `msgpack:"n"`
		Kind       relation.Kind `msgpack:"k"`
		Target     string        `msgpack:"t"`
		ForeignKey string        `msgpack:"fk,omitempty"`
		Inverse    string        `msgpack:"iv,omitempty"`
		Through    string        `msgpack:"th,omitempty"`
	}
	fpModel struct {
		Name      string       `msgpack:"n"`
		Module    string       `msgpack:"m"`
		Table     string       `msgpack:"tb,omitempty"`
		Fields    []fpField    `msgpack:"f"`
		Relations []fpRelation `msgpack:"r,omitempty"`
		Composite []string     `msgpack:"c,omitempty"`
	}
)

// Fingerprint returns a short stable digest of the registry snapshot.
// Two registries describing the same schema produce the same fingerprint,
// which the orchestrator embeds in the generated header and uses to skip
// rewriting an unchanged document.
func (r *Registry) Fingerprint() (string, error) {
	models := make([]fpModel, 0, len(r.models))
	for _, m := range r.models {
		fm := fpModel{
			Name:      m.Name,
			Module:    m.Module,
			Table:     m.Table,
			Composite: m.PrimaryKey,
		}
		for _, f := range m.Fields {
			fm.Fields = append(fm.Fields, fpField{
				Name:          f.Name,
				Type:          f.Type,
				Required:      f.Required,
				Unique:        f.Unique,
				PrimaryKey:    f.PrimaryKey,
				AutoIncrement: f.AutoIncrement,
				DefaultKind:   f.DefaultKind,
				DefaultValue:  f.DefaultValue,
				UpdateNow:     f.UpdateNow,
				MaxLen:        f.Constraints.MaxLen,
				MinLen:        f.Constraints.MinLen,
				Pattern:       f.Constraints.Pattern,
				Enum:          f.Constraints.Enum,
				Min:           f.Constraints.Min,
				Max:           f.Constraints.Max,
			})
		}
		for _, rel := range m.Relations {
			fr := fpRelation{
				Name:       rel.Name,
				Kind:       rel.Kind,
				Target:     rel.Target,
				ForeignKey: rel.ForeignKey,
				Inverse:    rel.Inverse,
			}
			if rel.Through != nil {
				fr.Through = rel.Through.Model
			}
			fm.Relations = append(fm.Relations, fr)
		}
		models = append(models, fm)
	}
	buf, err := msgpack.Marshal(models)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:8]), nil
}
