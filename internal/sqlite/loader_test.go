// Unit tests for JSONL loading with forward compatibility.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semval/pkg/types"
)

// attachWithFiles writes the given JSONL files into a fresh data directory
// and attaches a backend to it.
func attachWithFiles(t *testing.T, files map[string]string) *Backend {
	t.Helper()
	dataDir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestLoadJSONLUnknownFields(t *testing.T) {
	b := attachWithFiles(t, map[string]string{
		"properties.jsonl": `{"property_id":"p-1","name":"Has color","type_id":"_txt","description":null,"created_at":"2025-01-15T10:30:00Z","display_unit":"none"}` + "\n",
		"constraints.jsonl": `{"constraint_id":"c-1","property_id":"p-1","constraint_name":"_PVAL","value":"red","ordinal":0,"source":"import"}` + "\n",
	})

	got, err := b.PropertyByName("has color")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.PropertyID)
	assert.Equal(t, 2025, got.CreatedAt.Year())

	values, err := b.ConstraintValues("Has_color", types.ConstraintAllowedValues)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, values)
}

func TestLoadJSONLSkipsBadRecords(t *testing.T) {
	b := attachWithFiles(t, map[string]string{
		"properties.jsonl": `{"property_id":"p-1","name":"Color","type_id":"_txt","created_at":"2025-01-15T10:30:00Z"}
not json at all
{"property_id":"p-2","name":"color","type_id":"_txt","created_at":"2025-01-15T10:30:00Z"}
{"property_id":"p-3","type_id":"_txt","created_at":"2025-01-15T10:30:00Z"}
`,
		"constraints.jsonl": `{"constraint_id":"c-1","property_id":"p-1","constraint_name":"_PVAL","value":"red","ordinal":1}
{"constraint_id":"c-2","property_id":"p-9","constraint_name":"_PVAL","value":"orphan","ordinal":0}
{"constraint_id":"c-3","property_id":"p-1","constraint_name":"_PVAL","value":"red","ordinal":2}
{"constraint_id":"c-4","property_id":"p-1","constraint_name":"_PVAL","value":"blue","ordinal":0}
`,
	})

	props, err := b.GetTable(types.PropertiesTable)
	require.NoError(t, err)
	all, err := props.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, all, 1, "duplicate page keys and missing names are dropped")
	assert.Equal(t, "p-1", all[0].(*types.Property).PropertyID)

	values, err := b.ConstraintValues("Color", types.ConstraintAllowedValues)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "red"}, values, "orphans and duplicate values are dropped")
}

func TestLoadJSONLMissingFiles(t *testing.T) {
	b := attachWithFiles(t, nil)
	props, err := b.GetTable(types.PropertiesTable)
	require.NoError(t, err)
	all, err := props.Fetch(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMappingFor(t *testing.T) {
	m, ok := mappingFor(types.ConstraintsTable)
	require.True(t, ok)
	assert.Equal(t, "constraints.jsonl", m.file)

	_, ok = mappingFor("widgets")
	assert.False(t, ok)
}
