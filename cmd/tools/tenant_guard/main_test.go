package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSQL(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestScanFlagsUnscopedQueries(t *testing.T) {
	dir := t.TempDir()
	writeSQL(t, dir, "scoped.sql", "SELECT id\nFROM parameters\nWHERE lab_id = $1 AND id = ANY($2::bigint[]);\n")
	bad := writeSQL(t, dir, "unscoped.sql", "SELECT id FROM tests WHERE id = $1;\n")
	writeSQL(t, dir, "notes.txt", "SELECT * FROM anything;\n")
	writeSQL(t, dir, "ddl.sql", "CREATE INDEX idx ON tests (lab_id);\n")

	violations, err := scan(dir)
	require.NoError(t, err)
	require.Equal(t, []string{bad}, violations)
}

func TestScanRepoQueries(t *testing.T) {
	violations, err := scan(filepath.Join("..", "..", "..", "internal", "repo", "queries"))
	require.NoError(t, err)
	require.Empty(t, violations)
}
