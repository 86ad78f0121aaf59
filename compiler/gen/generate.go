package gen

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/loomstack/loom"
	"github.com/loomstack/loom/compiler/load"
)

// defaultModule groups models that declare no owning module.
const defaultModule = "app"

// A Result is the outcome of one generation run: the complete document,
// the non-fatal warnings recorded along the way, and the names of models
// skipped after a recovered per-model failure.
type Result struct {
	// Document is the complete generated schema document.
	Document string
	// Fingerprint is the registry digest embedded in the header.
	Fingerprint string
	// Warnings are non-fatal diagnostics: relation cycles, skipped
	// models, unresolvable junction pairs.
	Warnings []string
	// Skipped lists models dropped after a recovered generation failure.
	Skipped []string
	// RunID identifies this run in log output.
	RunID uuid.UUID
	// Written reports whether GenerateFile wrote the output file. False
	// when the existing file already matches the produced document.
	Written bool
}

// Generate compiles the frozen registry into one schema document. The
// registry is validated first; any structural or relation-integrity
// error aborts the run and the joined error carries the full list, so
// the descriptors can be fixed in one pass. After validation, a failure
// generating a single model is recovered: the model is skipped with a
// warning and the remaining models still complete.
func Generate(reg *load.Registry, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return generate(reg, cfg)
}

// GenerateFile compiles the registry and writes the document to the
// configured output path in a single atomic step. When the existing file
// is byte-identical to the produced document, the write is skipped and
// Result.Written is false. The document embeds the registry fingerprint
// and no per-run data, so an unchanged registry under unchanged options
// reproduces it exactly; any descriptor or option change rewrites.
func GenerateFile(reg *load.Registry, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Output == "" {
		return nil, NewConfigError("Output", nil, "output path is required")
	}
	res, err := generate(reg, cfg)
	if err != nil {
		return nil, err
	}
	if prev, err := os.ReadFile(cfg.Output); err == nil && string(prev) == res.Document {
		cfg.Logger.Info().
			Stringer("run", res.RunID).
			Str("fingerprint", res.Fingerprint).
			Msg("schema unchanged, skipping write")
		return res, nil
	}
	if err := writeAtomic(cfg.Output, []byte(res.Document)); err != nil {
		return nil, err
	}
	res.Written = true
	cfg.Logger.Info().
		Stringer("run", res.RunID).
		Str("path", cfg.Output).
		Int("models", reg.Len()).
		Int("warnings", len(res.Warnings)).
		Msg("schema written")
	return res, nil
}

func generate(reg *load.Registry, cfg *Config) (*Result, error) {
	res := &Result{RunID: uuid.New()}

	if errs := Validate(reg); len(errs) > 0 {
		return nil, fmt.Errorf("gen: validation failed: %w", errors.Join(errs...))
	}

	fp, err := reg.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("gen: fingerprint: %w", err)
	}
	res.Fingerprint = fp

	for _, w := range reg.DetectCycles() {
		res.Warnings = append(res.Warnings, w)
		cfg.Logger.Warn().Stringer("run", res.RunID).Msg(w)
	}

	synthesized, junctions, jerrs := JunctionModels(reg)
	for _, err := range jerrs {
		w := "junction synthesis: " + err.Error()
		res.Warnings = append(res.Warnings, w)
		cfg.Logger.Warn().Stringer("run", res.RunID).Msg(w)
	}

	// Group by module: declared models in registration order, synthesized
	// junctions appended to the module of their canonical first side.
	byModule := make(map[string][]*loom.Model)
	for _, m := range reg.All() {
		mod := moduleOf(m)
		byModule[mod] = append(byModule[mod], m)
	}
	for _, jm := range synthesized {
		mod := moduleOf(jm)
		byModule[mod] = append(byModule[mod], jm)
	}
	modules := make([]string, 0, len(byModule))
	for mod := range byModule {
		modules = append(modules, mod)
	}
	sort.Strings(modules)

	produced := make(map[string]struct{})
	var sections []string
	for _, mod := range modules {
		var blocks []string
		for _, m := range byModule[mod] {
			block, err := buildModel(m, reg, junctions, cfg)
			if err != nil {
				w := fmt.Sprintf("skipping model %s: %v", m.Name, err)
				res.Warnings = append(res.Warnings, w)
				res.Skipped = append(res.Skipped, m.Name)
				cfg.Logger.Warn().
					Stringer("run", res.RunID).
					Str("model", m.Name).
					Err(err).
					Msg("model generation failed, skipping")
				continue
			}
			produced[m.Name] = struct{}{}
			blocks = append(blocks, block.render(cfg.Format))
		}
		if len(blocks) == 0 {
			continue
		}
		sections = append(sections, moduleHeader(mod)+"\n\n"+strings.Join(blocks, "\n"))
	}

	legacy, err := legacyFragment(cfg, produced, junctions)
	if err != nil {
		return nil, err
	}

	var doc strings.Builder
	doc.WriteString("// Code generated by loom. DO NOT EDIT.\n")
	doc.WriteString(fingerprintPrefix + fp + "\n\n")
	fmt.Fprintf(&doc, "datasource db {\n  provider = %q\n  url      = env(%q)\n}\n\n",
		cfg.Dialect.Provider(), cfg.EnvKey)
	doc.WriteString("generator client {\n  provider = \"prisma-client-js\"\n}\n")
	if legacy != "" {
		doc.WriteString("\n// --- legacy ---\n\n")
		doc.WriteString(legacy)
		doc.WriteString("\n")
	}
	for _, s := range sections {
		doc.WriteString("\n")
		doc.WriteString(s)
	}
	res.Document = doc.String()
	return res, nil
}

// buildModel assembles the full block for one model: declared fields,
// synthesized foreign keys, relation annotations, audit fields, and
// block-level directives. A panic while mapping is recovered into a
// GenerationError so one malformed model cannot take down the run.
func buildModel(m *loom.Model, reg *load.Registry, junctions map[string]string, cfg *Config) (b *modelBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewGenerationError(m.Name, fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	b = &modelBlock{Name: m.Name}
	for _, f := range m.Fields {
		col, err := mapField(f, cfg.Dialect)
		if err != nil {
			return nil, NewGenerationError(m.Name, err.Error(), err)
		}
		b.Columns = append(b.Columns, col)
	}

	// A single primary key named "id" qualifies without the explicit
	// flag; make sure its column carries the inline annotation.
	if len(m.PrimaryKey) == 0 {
		if pk, ok := primaryKey(m); ok && !pk.PrimaryKey {
			for i := range b.Columns {
				if b.Columns[i].Name == pk.Name {
					b.Columns[i].Optional = false
					b.Columns[i].Attrs = append([]string{"@id"}, b.Columns[i].Attrs...)
					break
				}
			}
		}
	}

	fks, err := ForeignKeyFields(m, reg)
	if err != nil {
		return nil, err
	}
	var fkCols []string
	for _, f := range fks {
		col, err := mapField(f, cfg.Dialect)
		if err != nil {
			return nil, NewGenerationError(m.Name, err.Error(), err)
		}
		b.Columns = append(b.Columns, col)
		fkCols = append(fkCols, f.Name)
	}

	relCols, err := relationColumns(m, reg, junctions)
	if err != nil {
		return nil, err
	}
	b.Columns = append(b.Columns, relCols...)

	if cfg.IncludeAuditFields || m.AutoTimestamps {
		for _, f := range auditFields() {
			if _, declared := m.FieldByName(f.Name); declared {
				continue
			}
			col, err := mapField(f, cfg.Dialect)
			if err != nil {
				return nil, NewGenerationError(m.Name, err.Error(), err)
			}
			b.Columns = append(b.Columns, col)
		}
	}

	if len(m.PrimaryKey) > 0 {
		b.Directives = append(b.Directives,
			fmt.Sprintf("@@id([%s])", strings.Join(m.PrimaryKey, ", ")))
	}
	if cfg.IncludeIndexes {
		for _, name := range fkCols {
			b.Directives = append(b.Directives, fmt.Sprintf("@@index([%s])", name))
		}
	}
	b.Directives = append(b.Directives, fmt.Sprintf("@@map(%q)", tableName(m)))
	return b, nil
}

// legacyFragment reads the baseline document, if configured, and carries
// over its hand-authored blocks minus anything the compiler produced.
// A missing baseline file is not an error.
func legacyFragment(cfg *Config, produced map[string]struct{}, junctions map[string]string) (string, error) {
	if cfg.Baseline == "" {
		return "", nil
	}
	raw, err := os.ReadFile(cfg.Baseline)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("gen: read baseline: %w", err)
	}
	// Junction names count as produced even when their pair failed to
	// render this run.
	all := make(map[string]struct{}, len(produced)+len(junctions))
	for name := range produced {
		all[name] = struct{}{}
	}
	for _, name := range junctions {
		all[name] = struct{}{}
	}
	return extractLegacy(string(raw), all), nil
}

func moduleOf(m *loom.Model) string {
	if m.Module == "" {
		return defaultModule
	}
	return m.Module
}
