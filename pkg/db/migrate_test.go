package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	_ "github.com/mattn/go-sqlite3" // SQLite driver, needed for tests
)

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?;", tableName).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
	if name != tableName {
		t.Errorf("Table check query returned '%s' but expected '%s'", name, tableName)
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed for in-memory DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	db := openMemoryDB(t)

	err := UpgradeDB(db, ":memory:", TargetSchemaVersion, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("UpgradeDB failed on a new in-memory database: %v", err)
	}

	expectedTables := []string{
		"kith_versions", "users", "people", "network", "custom_contact_types",
		"contact_entries", "relationship_labels", "relationships",
		"relationship_label_assignments", "interactions", "interaction_topics",
		"circles", "circle_members", "ai_corrections",
	}
	for _, tableName := range expectedTables {
		checkTableExists(t, db, tableName)
	}

	version, err := GetComponentSchemaVersion(db, NetworkDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed after UpgradeDB: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", NetworkDBComponent, TargetSchemaVersion, version)
	}
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	db := openMemoryDB(t)

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}

	if err := UpgradeDB(db, ":memory:", TargetSchemaVersion, nil); err != nil {
		t.Fatalf("UpgradeDB failed on an up-to-date database: %v", err)
	}

	version, err := GetComponentSchemaVersion(db, NetworkDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", NetworkDBComponent, TargetSchemaVersion, version)
	}
}

func TestUpgradeDB_VersionMismatch(t *testing.T) {
	tests := []struct {
		name      string
		dbVersion int64
		appTarget int64
		wantMsg   string
	}{
		{"older database", 1, 2, "which is older than application's target schema version 2"},
		{"newer database", 2, 1, "which is newer than application's target schema version 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openMemoryDB(t)

			if err := InitializeSchema(db, tt.dbVersion); err != nil {
				t.Fatalf("InitializeSchema to version %d failed: %v", tt.dbVersion, err)
			}

			err := UpgradeDB(db, ":memory:", tt.appTarget, zaptest.NewLogger(t))
			if err == nil {
				t.Fatalf("UpgradeDB should have failed, but it did not")
			}

			prefix := fmt.Sprintf("component %s in database ':memory:' has schema version %d", NetworkDBComponent, tt.dbVersion)
			if !strings.Contains(err.Error(), prefix) || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("UpgradeDB error message mismatch.\nGot: %s", err.Error())
			}

			currentVersion, getErr := GetComponentSchemaVersion(db, NetworkDBComponent)
			if getErr != nil {
				t.Fatalf("GetComponentSchemaVersion failed after attempted upgrade: %v", getErr)
			}
			if currentVersion != tt.dbVersion {
				t.Errorf("Database schema version changed from %d to %d after a failed upgrade attempt.", tt.dbVersion, currentVersion)
			}
		})
	}
}

func TestGetComponentSchemaVersion_NoTable(t *testing.T) {
	db := openMemoryDB(t)

	version, err := GetComponentSchemaVersion(db, NetworkDBComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion on an empty database: %v", err)
	}
	if version != 0 {
		t.Errorf("Expected version 0 for an empty database, got %d", version)
	}
}

func TestOpenDBConnection_InvalidSync(t *testing.T) {
	if _, err := OpenDBConnection(":memory:", false, "sometimes"); err == nil {
		t.Fatal("Expected an error for an invalid sync pragma")
	}
}

func TestOpenDBConnection_ForeignKeys(t *testing.T) {
	db := openMemoryDB(t)

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys;").Scan(&enabled); err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("Expected foreign keys to be enabled, got %d", enabled)
	}
}

func TestOpenDBConnection_BusyTimeout(t *testing.T) {
	db := openMemoryDB(t)

	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout;").Scan(&timeout); err != nil {
		t.Fatalf("Failed to read busy_timeout pragma: %v", err)
	}
	if timeout != busyTimeoutMillis {
		t.Errorf("Expected busy_timeout %d, got %d", busyTimeoutMillis, timeout)
	}
}
