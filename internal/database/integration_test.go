package database

import (
	"os"
	"path/filepath"
	"testing"
)

// testSchema mirrors migrations/sqlite/001_initial_schema.sql so the tests
// stay self-contained
const testSchema = `
CREATE TABLE IF NOT EXISTS lessons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	slug TEXT UNIQUE NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	hindi_title TEXT,
	description TEXT,
	order_index INTEGER DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS vocabulary (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	lesson_id INTEGER NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
	word TEXT NOT NULL,
	definition TEXT,
	example TEXT,
	hindi_translation TEXT,
	pronunciation TEXT
);

CREATE TABLE IF NOT EXISTS conversation_lines (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	lesson_id INTEGER NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
	speaker TEXT NOT NULL,
	english_text TEXT,
	hindi_text TEXT,
	order_index INTEGER DEFAULT 0
);
`

// newTestDB creates a migrated sqlite database in a temp dir
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "sqlite")
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		t.Fatalf("failed to create migrations dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(migrationsDir, "001_initial_schema.sql"), []byte(testSchema), 0644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}

	db, err := Initialize(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(dir); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestMigrationsCreateSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	for _, table := range []string{"lessons", "vocabulary", "conversation_lines", "migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("migrations recorded = %d, want 1", count)
	}
}

func TestTransactionRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	_, err = tx.ExecReturningID(
		"INSERT INTO lessons (title, slug, content, category, difficulty) VALUES (?, ?, ?, ?, ?)",
		"Rolled Back", "rolled-back", "body", "daily_life", "beginner")
	if err != nil {
		tx.Rollback()
		t.Fatalf("failed to insert in transaction: %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("failed to rollback: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM lessons WHERE slug = ?", "rolled-back").Scan(&count); err != nil {
		t.Fatalf("failed to count lessons: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 lessons after rollback, got %d", count)
	}
}

func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := newTestDB(t)

	id, err := db.ExecReturningID(
		"INSERT INTO lessons (title, slug, content, category, difficulty) VALUES (?, ?, ?, ?, ?)",
		"First", "first", "body", "daily_life", "beginner")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first insert id = %d, want 1", id)
	}

	id2, err := db.ExecReturningID(
		"INSERT INTO lessons (title, slug, content, category, difficulty) VALUES (?, ?, ?, ?, ?)",
		"Second", "second", "body", "daily_life", "beginner")
	if err != nil {
		t.Fatalf("second insert failed: %v", err)
	}
	if id2 != 2 {
		t.Errorf("second insert id = %d, want 2", id2)
	}
}
