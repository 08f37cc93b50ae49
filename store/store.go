// Package store connects to the local data store and manages the access
// token and cached week sessions.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/spotter-app/spotter/internal/models"
)

const (
	authBucket    = "auth"
	sessionBucket = "sessions"
)

const tokenKey = "access_token"

var pathToDB string

var errSpotterRunning = errors.New(
	"is Spotter already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveToken persists the access token.
func (c *Client) SaveToken(token string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Put([]byte(tokenKey), []byte(token))
	})
}

// GetToken retrieves the stored access token, or "" if none is stored.
func (c *Client) GetToken() (string, error) {
	var token string

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(authBucket)).Get([]byte(tokenKey))
		token = string(b)

		return nil
	})

	return token, err
}

// DeleteToken purges the stored access token.
func (c *Client) DeleteToken() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Delete([]byte(tokenKey))
	})
}

// CacheWeekSessions stores the sessions fetched for a week so they remain
// viewable while offline. The key is the week-start date (YYYY-MM-DD).
func (c *Client) CacheWeekSessions(
	weekStart string,
	sessions []models.Session,
) error {
	value, err := json.Marshal(sessions)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(weekStart), value)
	})
}

// GetCachedWeekSessions returns the last-fetched sessions for a week, or
// nil if the week has never been fetched.
func (c *Client) GetCachedWeekSessions(
	weekStart string,
) ([]models.Session, error) {
	var sessions []models.Session

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket)).Get([]byte(weekStart))
		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, &sessions)
	})

	return sessions, err
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errSpotterRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(authBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
