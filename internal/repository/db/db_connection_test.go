package db

import (
	"path/filepath"
	"testing"
)

func TestDSN(t *testing.T) {
	cases := map[string]string{
		"heating.db":                     "heating.db?_time_format=sqlite",
		"file:x.db?cache=shared":         "file:x.db?cache=shared&_time_format=sqlite",
		"x.db?_time_format=sqlite&mode=": "x.db?_time_format=sqlite&mode=",
	}
	for in, want := range cases {
		if got := dsn(in); got != want {
			t.Fatalf("dsn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitDB_CreatesSchema(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "heating.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{"climate_readings", "heating_events"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// idempotent
	db2, err := InitDB(filepath.Join(t.TempDir(), "again.db"))
	if err != nil {
		t.Fatalf("InitDB second: %v", err)
	}
	_ = db2.Close()
}
