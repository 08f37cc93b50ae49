package auth

import (
	"time"

	"github.com/spotter-app/spotter/store"
)

// Manager reads and writes the access token through the local store and
// enforces expiry on every read. It satisfies the request client's token
// source contract.
type Manager struct {
	db  store.DB
	now func() time.Time
}

// NewManager returns a Manager backed by the given store.
func NewManager(db store.DB) *Manager {
	return &Manager{
		db:  db,
		now: time.Now,
	}
}

// Token returns the stored access token, or "" when no valid token is
// available. Expired tokens are purged on read.
func (m *Manager) Token() (string, error) {
	token, err := m.db.GetToken()
	if err != nil {
		return "", err
	}

	if token == "" {
		return "", nil
	}

	if Expired(token, m.now()) {
		if err := m.db.DeleteToken(); err != nil {
			return "", err
		}

		return "", nil
	}

	return token, nil
}

// Save persists a freshly issued access token.
func (m *Manager) Save(token string) error {
	return m.db.SaveToken(token)
}

// Clear discards the stored token, logging the user out locally.
func (m *Manager) Clear() error {
	return m.db.DeleteToken()
}

// LoggedIn reports whether a non-expired token is currently stored.
func (m *Manager) LoggedIn() bool {
	token, err := m.Token()

	return err == nil && token != ""
}
