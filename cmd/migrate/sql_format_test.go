package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}

	tables := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", e.Name(), err)
		}
		s := string(b)
		for _, directive := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(s, directive) {
				t.Fatalf("%s missing %q", e.Name(), directive)
			}
		}
		for _, table := range []string{"books", "reading_lists"} {
			if strings.Contains(s, "CREATE TABLE IF NOT EXISTS "+table+" ") {
				tables[table] = true
			}
		}
	}
	if !tables["books"] || !tables["reading_lists"] {
		t.Fatalf("expected both tables to be created, got %v", tables)
	}
}
