package migration

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":  {Data: []byte("SELECT 10;")},
		"V2__second.sql":  {Data: []byte("SELECT 2;")},
		"README.md":       {Data: []byte("ignored")},
		"V1__first.sql":   {Data: []byte("  SELECT 1;  \n")},
		"nested/V3__x.sql": {Data: []byte("SELECT 3;")},
	}

	migs, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migs))
	}
	want := []int64{1, 2, 10}
	for i, m := range migs {
		if m.Version != want[i] {
			t.Fatalf("position %d: expected version %d, got %d", i, want[i], m.Version)
		}
	}
	if migs[0].SQL != "SELECT 1;" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestLoadMigrations_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}
	if _, err := loadMigrations(fsys); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestEmbeddedSchema(t *testing.T) {
	migs, err := loadMigrations(Embedded())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected embedded migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 {
		t.Fatalf("expected first version 1, got %d", migs[0].Version)
	}
}
