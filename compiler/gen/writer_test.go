package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baselineDoc = `// hand-maintained schema
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

model Session {
  id        String @id
  expiresAt DateTime
}

enum LegacyStatus {
  ACTIVE
  RETIRED
}

model User {
  id Int @id
}
`

func TestExtractLegacy(t *testing.T) {
	out := extractLegacy(baselineDoc, map[string]struct{}{"User": {}})
	assert.Contains(t, out, "model Session {")
	assert.Contains(t, out, "enum LegacyStatus {")
	assert.NotContains(t, out, "model User", "compiler-produced models are filtered out")
	assert.NotContains(t, out, "datasource", "preamble blocks belong to the compiler")
}

func TestExtractLegacyEmpty(t *testing.T) {
	assert.Empty(t, extractLegacy("", nil))
	assert.Empty(t, extractLegacy("// only comments\n", nil))
}

func TestBlockName(t *testing.T) {
	name, ok := blockName("model User {")
	require.True(t, ok)
	assert.Equal(t, "User", name)

	name, ok = blockName("enum Status {")
	require.True(t, ok)
	assert.Equal(t, "Status", name)

	_, ok = blockName("generator client {")
	assert.False(t, ok)
	_, ok = blockName("model {")
	assert.False(t, ok)
	_, ok = blockName("id Int @id")
	assert.False(t, ok)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "schema.prisma")

	require.NoError(t, writeAtomic(path, []byte("model A {\n}\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model A {\n}\n", string(data))

	// Overwrite in place.
	require.NoError(t, writeAtomic(path, []byte("model B {\n}\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model B {\n}\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "schema.prisma", entries[0].Name())
}
