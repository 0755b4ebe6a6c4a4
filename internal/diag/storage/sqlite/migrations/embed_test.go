package migrations

import (
	"io/fs"
	"sort"
	"testing"
)

func TestDiagMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read diag migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected diag migrations to be embedded")
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if files[0] != "001_diag_runs.sql" {
		t.Fatalf("expected first diag migration 001_diag_runs.sql, got %s", files[0])
	}
}
