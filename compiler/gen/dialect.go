package gen

import (
	"fmt"

	"github.com/loomstack/loom/schema/field"
)

// A Dialect is a target database engine family. The set is closed;
// ParseDialect rejects anything else.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// ParseDialect normalizes a dialect name. Common aliases are accepted.
func ParseDialect(name string) (Dialect, error) {
	switch name {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", NewConfigError("Dialect", name, "unsupported dialect; use postgres, mysql, or sqlite")
	}
}

// Valid reports if d is a supported dialect.
func (d Dialect) Valid() bool {
	return d == Postgres || d == MySQL || d == SQLite
}

// Provider returns the datasource provider name for the dialect.
func (d Dialect) Provider() string {
	switch d {
	case Postgres:
		return "postgresql"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return string(d)
	}
}

// defaultEnvKey is the environment variable referenced by the datasource
// url directive when none is configured. The connection string itself is
// never embedded in the document.
const defaultEnvKey = "DATABASE_URL"

// mysqlUniqueKeyLen bounds unique string columns on MySQL, which limits
// index key length on utf8mb4 columns.
const mysqlUniqueKeyLen = 191

// scalar returns the schema scalar type for an abstract field type.
// Engines without a native JSON column type fall back to a string column.
func (d Dialect) scalar(t field.Type) (string, error) {
	switch t {
	case field.TypeString, field.TypeText:
		return "String", nil
	case field.TypeInt:
		return "Int", nil
	case field.TypeBool:
		return "Boolean", nil
	case field.TypeDateTime:
		return "DateTime", nil
	case field.TypeJSON:
		if d == SQLite {
			return "String", nil
		}
		return "Json", nil
	case field.TypeDecimal:
		return "Decimal", nil
	default:
		return "", fmt.Errorf("unrecognized field type %q", t)
	}
}

// nativeType returns the dialect-specific native column annotation for a
// field, or "" when the engine default applies. SQLite has a single
// storage class per type, so annotations are normalized away entirely.
func (d Dialect) nativeType(f *field.Descriptor) string {
	if d == SQLite {
		return ""
	}
	switch f.Type {
	case field.TypeString:
		if n := f.Constraints.MaxLen; n != nil {
			return fmt.Sprintf("@db.VarChar(%d)", *n)
		}
		if d == MySQL && f.Unique {
			return fmt.Sprintf("@db.VarChar(%d)", mysqlUniqueKeyLen)
		}
	case field.TypeText:
		return "@db.Text"
	case field.TypeDecimal:
		if d == MySQL {
			return "@db.Decimal(65, 30)"
		}
	}
	return ""
}
