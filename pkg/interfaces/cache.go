// Package interfaces holds the contracts shared between the HTTP server and its storage.
package interfaces

import "time"

// RenderCache stores rendered feed documents by source
type RenderCache interface {
	Get(key string) (string, bool, error)
	Set(key, value string, ttl time.Duration) error
}

// CleanupProvider defines the interface for caches that support cleanup operations
type CleanupProvider interface {
	CleanupExpired() error
}
