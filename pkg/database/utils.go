package database

import (
	"fmt"
	"os"
)

// Info describes a database file and the rows held in one cache table
type Info struct {
	Path          string
	SQLiteVersion string
	FileSizeBytes int64
	Entries       int
	Expired       int
}

// DatabaseExists checks if a database file exists
func DatabaseExists(dbPath string) bool {
	_, err := os.Stat(dbPath)
	return !os.IsNotExist(err)
}

// GetDatabaseSize returns the size of the database file in bytes
func GetDatabaseSize(dbPath string) (int64, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get database file info: %w", err)
	}

	return info.Size(), nil
}

// VacuumDatabase runs VACUUM on the database to reclaim space
func VacuumDatabase(db *Database) error {
	if _, err := db.DB().Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}

// GetCacheInfo returns information about the database and the cache's table
func GetCacheInfo(c *Cache) (*Info, error) {
	info := &Info{Path: c.db.Path()}

	if err := c.db.DB().QueryRow("SELECT sqlite_version()").Scan(&info.SQLiteVersion); err != nil {
		return nil, fmt.Errorf("failed to get SQLite version: %w", err)
	}

	if size, err := GetDatabaseSize(c.db.Path()); err == nil {
		info.FileSizeBytes = size
	}

	total, expired, err := c.Count()
	if err != nil {
		return nil, err
	}
	info.Entries = total
	info.Expired = expired

	return info, nil
}
