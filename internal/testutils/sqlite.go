package testutils

import (
	"path/filepath"
	"testing"
)

// TempDBPath returns a SQLite file path inside a per-test temp directory
func TempDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".db")
}
