package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fingerprintPrefix marks the header line carrying the registry digest.
const fingerprintPrefix = "// schema fingerprint: "

// extractLegacy returns the hand-authored model and enum blocks of a
// baseline document, filtering out any block whose name the compiler
// produces itself so the assembled document never defines a model twice.
func extractLegacy(doc string, produced map[string]struct{}) string {
	var (
		blocks  []string
		current []string
		keep    bool
		depth   int
	)
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if depth == 0 {
			name, ok := blockName(trimmed)
			if !ok {
				continue
			}
			_, dup := produced[name]
			keep = !dup
			depth = 1
			current = []string{trimmed}
			continue
		}
		current = append(current, line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			if keep {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			depth = 0
			current = nil
		}
	}
	return strings.Join(blocks, "\n\n")
}

// blockName extracts the name of a model or enum block header line.
// Datasource and generator blocks belong to the compiler and are never
// carried over.
func blockName(line string) (string, bool) {
	for _, kw := range []string{"model ", "enum "} {
		if strings.HasPrefix(line, kw) && strings.HasSuffix(line, "{") {
			name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, kw), "{"))
			if name != "" {
				return name, true
			}
		}
	}
	return "", false
}

// writeAtomic writes the complete document in a single atomic step: a
// temporary file in the target directory, synced, then renamed over the
// destination. A partial file is never observable at path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("gen: atomic rename failed: %w", err)
	}
	return nil
}
