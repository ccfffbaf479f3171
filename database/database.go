package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// DefaultQuotaBytes bounds a single stored value, like a browser storage quota.
const DefaultQuotaBytes = 5 << 20

// Database is a small persistent key-value store backed by SQLite.
type Database struct {
	db    *sql.DB
	quota int
}

// New opens the database at dbPath. quota limits the size of one value in
// bytes; zero or less disables the limit.
func New(dbPath string, quota int) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	database := &Database{db: db, quota: quota}
	if err := database.init(); err != nil {
		db.Close()
		return nil, err
	}

	return database, nil
}

func (d *Database) init() error {
	query := `CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := d.db.Exec(query); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Get returns the value stored under key. Read errors are logged and
// reported as a miss.
func (d *Database) Get(key string) (string, bool) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to read from storage")
		return "", false
	}
	return value, true
}

// TrySet stores value under key and reports whether it was saved.
func (d *Database) TrySet(key, value string) bool {
	if d.quota > 0 && len(value) > d.quota {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"size":  len(value),
			"quota": d.quota,
		}).Warn("Storage quota exceeded")
		return false
	}

	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := d.db.Exec(query, key, value); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to write to storage")
		return false
	}
	return true
}

func (d *Database) Close() error {
	return d.db.Close()
}
