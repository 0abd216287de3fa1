package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path string
}

// Open initializes the database connection and runs migrations
func Open(cfg Config) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Run migrations
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// OpenInMemory opens a private in-memory database, used by tests
func OpenInMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// A pooled second connection would see a different empty database
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	// Create migrations table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Run each migration
	for _, m := range migrations {
		if err := runMigration(db, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}

type migration struct {
	name string
	up   string
}

func runMigration(db *sql.DB, m migration) error {
	// Check if already applied
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Already applied
	}

	// Run migration
	if _, err := db.Exec(m.up); err != nil {
		return err
	}

	// Record migration
	_, err = db.Exec("INSERT INTO migrations (name) VALUES (?)", m.name)
	return err
}

var migrations = []migration{
	{
		name: "001_create_admin_users",
		up: `
			CREATE TABLE admin_users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'sub_admin',
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME
			);
			CREATE INDEX idx_admin_users_username ON admin_users(username);
		`,
	},
	{
		name: "002_create_user_sessions",
		up: `
			CREATE TABLE user_sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				account_id TEXT NOT NULL,
				token_hash TEXT NOT NULL UNIQUE,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				expires_at DATETIME NOT NULL,
				ip_address TEXT,
				user_agent TEXT,
				FOREIGN KEY (account_id) REFERENCES admin_users(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_user_sessions_token_hash ON user_sessions(token_hash);
			CREATE INDEX idx_user_sessions_account_id ON user_sessions(account_id);
			CREATE INDEX idx_user_sessions_expires_at ON user_sessions(expires_at);
		`,
	},
	{
		name: "003_create_site_content",
		up: `
			CREATE TABLE site_content (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL,
				gkk99_link TEXT NOT NULL,
				gkk777_link TEXT NOT NULL,
				viber_link TEXT NOT NULL,
				pricing_slots TEXT NOT NULL,
				pricing_free_spin TEXT NOT NULL,
				pricing_win_rate TEXT NOT NULL,
				pricing_gkk99_bonus TEXT NOT NULL,
				pricing_gkk777_bonus TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_by TEXT NOT NULL DEFAULT ''
			);
			-- Singleton row with the launch defaults
			INSERT INTO site_content (
				id, title, description,
				gkk99_link, gkk777_link, viber_link,
				pricing_slots, pricing_free_spin, pricing_win_rate,
				pricing_gkk99_bonus, pricing_gkk777_bonus,
				updated_by
			) VALUES (
				'1',
				'GKK99 - မြန်မာ AI ချတ်ဘော့ဝန်ဆောင်မှု',
				'၂၄ နာရီ အချိန်မရွေး သင့်အတွက် အဖြေများ ပေးနိုင်သော ဉာဏ်ရည်တုံ့ပြန်မှု စနစ်',
				'https://www.gkk99.com/',
				'https://7777gkkk.info/',
				'viber://pa?chatURI=chatbotnhantri',
				'20 Ks', '1000 Ks', '96.5%', '30,000 Ks', '30,000 Ks',
				'admin'
			);
		`,
	},
	{
		name: "004_create_audit_logs",
		up: `
			CREATE TABLE audit_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
				account_id TEXT,
				username TEXT,
				action TEXT NOT NULL,
				target TEXT,
				details TEXT,
				ip_address TEXT,
				FOREIGN KEY (account_id) REFERENCES admin_users(id) ON DELETE SET NULL
			);
			CREATE INDEX idx_audit_logs_timestamp ON audit_logs(timestamp);
			CREATE INDEX idx_audit_logs_account_id ON audit_logs(account_id);
			CREATE INDEX idx_audit_logs_action ON audit_logs(action);
		`,
	},
}
