// Package database provides sqlx-backed persistence for words, sources,
// users, profiles, and knowledge records.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// dbType returns the configured database backend, defaulting to sqlite.
func dbType() string {
	t := os.Getenv("DB_TYPE")
	if t == "" {
		return "sqlite"
	}
	return t
}

func isPostgres() bool {
	return dbType() == "postgres"
}

// Connect establishes a connection to the configured database and
// initializes the schema.
func Connect() error {
	var db *sqlx.DB
	var err error

	if isPostgres() {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join(dataDir, "wordflow.db")
		}
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers; this also serializes
		// concurrent mutations of the same knowledge record.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// pk returns the primary-key column definition for the active backend.
func pk() string {
	if isPostgres() {
		return "id BIGSERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			%s,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			api_token TEXT UNIQUE NOT NULL,
			telegram_chat_id BIGINT NOT NULL DEFAULT 0,
			notification_enabled BOOLEAN NOT NULL DEFAULT true,
			notification_hour INTEGER NOT NULL DEFAULT 9,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, pk()),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sources (
			%s,
			user_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			source_type TEXT NOT NULL,
			content TEXT NOT NULL,
			processed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`, pk()),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			%s,
			text TEXT NOT NULL UNIQUE,
			definition TEXT NOT NULL DEFAULT '',
			translation TEXT NOT NULL DEFAULT '',
			part_of_speech TEXT NOT NULL DEFAULT '',
			phonetic TEXT NOT NULL DEFAULT '',
			audio_url TEXT NOT NULL DEFAULT '',
			example_sentence TEXT NOT NULL DEFAULT '',
			synonyms TEXT NOT NULL DEFAULT '',
			antonyms TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, pk()),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS word_source_links (
			%s,
			word_id BIGINT NOT NULL,
			source_id BIGINT NOT NULL,
			frequency INTEGER NOT NULL,
			FOREIGN KEY (word_id) REFERENCES words(id),
			FOREIGN KEY (source_id) REFERENCES sources(id),
			UNIQUE(word_id, source_id)
		)`, pk()),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS knowledge_records (
			%s,
			user_id BIGINT NOT NULL,
			word_id BIGINT NOT NULL,
			state TEXT NOT NULL DEFAULT 'NEW',
			due TIMESTAMP NOT NULL,
			stability REAL NOT NULL DEFAULT 0,
			difficulty REAL NOT NULL DEFAULT 5.0,
			lapses INTEGER NOT NULL DEFAULT 0,
			last_review TIMESTAMP,
			priority INTEGER NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			successful_reviews INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (word_id) REFERENCES words(id),
			UNIQUE(user_id, word_id)
		)`, pk()),
		`
		CREATE TABLE IF NOT EXISTS learning_profiles (
			user_id BIGINT PRIMARY KEY,
			daily_learning_target INTEGER NOT NULL DEFAULT 20,
			daily_new_word_target INTEGER NOT NULL DEFAULT 20,
			words_learned_today INTEGER NOT NULL DEFAULT 0,
			last_learning_date TIMESTAMP NOT NULL,
			is_pro BOOLEAN NOT NULL DEFAULT false,
			pro_expiry TIMESTAMP,
			filter_stop_words BOOLEAN NOT NULL DEFAULT true,
			retention_rate REAL NOT NULL DEFAULT 0.9,
			known_threshold INTEGER NOT NULL DEFAULT 5,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_knowledge_due ON knowledge_records(user_id, state, due)`,
		`CREATE INDEX IF NOT EXISTS idx_knowledge_priority ON knowledge_records(priority)`,
		`CREATE INDEX IF NOT EXISTS idx_links_word ON word_source_links(word_id)`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON word_source_links(source_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
