// Package field provides builders for model field declarations.
//
// A field is one abstract column of a model: a name, a type from a closed
// set, and the flags and constraints the schema compiler maps to a
// dialect-specific column definition.
//
//	field.String("email").Required().Unique().MaxLen(255)
//	field.Int("id").Key().AutoIncrement()
//	field.String("id").Key().DefaultUUID()
//	field.DateTime("publishedAt").DefaultNow()
//	field.Decimal("price").Min(0)
//	field.String("status").In("draft", "published").Default("draft")
//
// Invalid combinations (a uuid default on an integer field, a length bound
// on a boolean) are construction-time errors carried on the descriptor and
// reported by the validator, never silent generation-time surprises.
package field
