package store

import "github.com/spotter-app/spotter/internal/models"

// DB is the local storage interface.
type DB interface {
	// SaveToken persists the access token
	SaveToken(token string) error
	// GetToken retrieves the stored access token ("" when absent)
	GetToken() (string, error)
	// DeleteToken purges the stored access token
	DeleteToken() error
	// CacheWeekSessions stores the last-fetched sessions for a week
	CacheWeekSessions(weekStart string, sessions []models.Session) error
	// GetCachedWeekSessions returns the cached sessions for a week
	GetCachedWeekSessions(weekStart string) ([]models.Session, error)
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
