package gen

import (
	"fmt"
	"strings"
)

// A Format selects the output rendering mode.
type Format uint8

// Output formats.
const (
	// FormatPretty aligns columns and separates directives with a
	// blank line.
	FormatPretty Format = iota
	// FormatCompact joins every token with a single space and drops
	// doc comments.
	FormatCompact
)

// ParseFormat normalizes an output format name.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "pretty":
		return FormatPretty, nil
	case "compact":
		return FormatCompact, nil
	default:
		return FormatPretty, NewConfigError("OutputFormat", name, "unsupported format; use pretty or compact")
	}
}

// String returns the format name.
func (f Format) String() string {
	if f == FormatCompact {
		return "compact"
	}
	return "pretty"
}

// A modelBlock is one fully resolved model ready for rendering: final
// field list (declared + synthesized foreign keys + audit fields),
// relation annotations, and block-level directives.
type modelBlock struct {
	Name       string
	Columns    []column
	Directives []string
}

// render returns the textual block for one model in the given format.
func (b *modelBlock) render(f Format) string {
	var w strings.Builder
	fmt.Fprintf(&w, "model %s {\n", b.Name)
	if f == FormatPretty {
		nameWidth, typeWidth := 0, 0
		for _, c := range b.Columns {
			if n := len(c.Name); n > nameWidth {
				nameWidth = n
			}
			if n := len(c.typeToken()); n > typeWidth {
				typeWidth = n
			}
		}
		for _, c := range b.Columns {
			if c.Doc != "" {
				fmt.Fprintf(&w, "  /// %s\n", c.Doc)
			}
			line := fmt.Sprintf("  %-*s %-*s", nameWidth, c.Name, typeWidth, c.typeToken())
			if len(c.Attrs) > 0 {
				line += " " + strings.Join(c.Attrs, " ")
			}
			// Attribute-less lines carry no alignment padding.
			w.WriteString(strings.TrimRight(line, " "))
			w.WriteString("\n")
		}
		if len(b.Directives) > 0 {
			w.WriteString("\n")
		}
	} else {
		for _, c := range b.Columns {
			fmt.Fprintf(&w, "  %s %s", c.Name, c.typeToken())
			for _, a := range c.Attrs {
				w.WriteString(" ")
				w.WriteString(a)
			}
			w.WriteString("\n")
		}
	}
	for _, d := range b.Directives {
		fmt.Fprintf(&w, "  %s\n", d)
	}
	w.WriteString("}\n")
	return w.String()
}

// typeToken returns the type with its modifier suffix.
func (c column) typeToken() string {
	switch {
	case c.List:
		return c.Type + "[]"
	case c.Optional:
		return c.Type + "?"
	default:
		return c.Type
	}
}

// moduleHeader returns the section banner for a module.
func moduleHeader(module string) string {
	return fmt.Sprintf("// --- module: %s ---", module)
}
