package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Cache stores rendered documents with an expiry, one row per key
type Cache struct {
	db        *Database
	tableName string
	now       func() time.Time
}

// NewCache creates a cache backed by tableName. The table is created if missing.
func NewCache(db *Database, tableName string) (*Cache, error) {
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid cache table name %q", tableName)
	}

	c := &Cache{
		db:        db,
		tableName: tableName,
		now:       time.Now,
	}
	if err := c.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache table %s: %w", tableName, err)
	}
	return c, nil
}

// Database returns the database backing the cache
func (c *Cache) Database() *Database {
	return c.db
}

func (c *Cache) initialize() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_expires ON %s(expires_at);
	`, c.tableName, c.tableName, c.tableName)

	return c.db.ExecuteSchema(schema)
}

// Get returns the cached value for key if it has not expired
func (c *Cache) Get(key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ? AND expires_at > ?`, c.tableName)

	var value string
	err := c.db.DB().QueryRow(query, key, c.now().UnixNano()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cache value: %w", err)
	}

	return value, true, nil
}

// Set stores value under key for ttl
func (c *Cache) Set(key, value string, ttl time.Duration) error {
	now := c.now()
	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, c.tableName)

	if _, err := c.db.DB().Exec(query, key, value, now.Add(ttl).UnixNano(), now.UnixNano()); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Cache) Delete(key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, c.tableName)

	if _, err := c.db.DB().Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}
	return nil
}

// CleanupExpired removes expired entries from the cache
func (c *Cache) CleanupExpired() error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= ?`, c.tableName)

	result, err := c.db.DB().Exec(query, c.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to cleanup expired entries: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Debug("Cleaned up expired cache entries", "table", c.tableName, "count", rowsAffected)
	}
	return nil
}

// Clear removes all entries from the cache
func (c *Cache) Clear() error {
	if _, err := c.db.DB().Exec(fmt.Sprintf(`DELETE FROM %s`, c.tableName)); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Count returns the number of rows in the cache and how many of them have expired
func (c *Cache) Count() (total, expired int, err error) {
	query := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0) FROM %s`, c.tableName)

	if err := c.db.DB().QueryRow(query, c.now().UnixNano()).Scan(&total, &expired); err != nil {
		return 0, 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return total, expired, nil
}
