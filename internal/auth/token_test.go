package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/spotter-app/spotter/internal/models"
	"github.com/spotter-app/spotter/store"
)

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"alg":"HS256","typ":"JWT"}`),
	)

	payload, err := json.Marshal(map[string]int64{"exp": exp.Unix()})
	if err != nil {
		t.Fatal(err)
	}

	return fmt.Sprintf(
		"%s.%s.sig",
		header,
		base64.RawURLEncoding.EncodeToString(payload),
	)
}

func TestExpired(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	table := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "valid for an hour",
			token: makeToken(t, now.Add(time.Hour)),
			want:  false,
		},
		{
			name:  "already expired",
			token: makeToken(t, now.Add(-time.Minute)),
			want:  true,
		},
		{
			name: "inside the 60s skew margin",
			// expires in 30s, which is within the defensive margin
			token: makeToken(t, now.Add(30*time.Second)),
			want:  true,
		},
		{
			name:  "just outside the skew margin",
			token: makeToken(t, now.Add(61*time.Second)),
			want:  false,
		},
		{
			name:  "malformed token",
			token: "not-a-jwt",
			want:  true,
		},
		{
			name:  "unparseable payload",
			token: "aGVhZGVy.!!!.sig",
			want:  true,
		},
		{
			name:  "missing exp claim",
			token: "aGVhZGVy." + base64.RawURLEncoding.EncodeToString([]byte(`{}`)) + ".sig",
			want:  true,
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := Expired(tc.token, now)
			if got != tc.want {
				t.Fatalf("Expired() = %v, want %v", got, tc.want)
			}
		})
	}
}

type fakeDB struct {
	token string
}

func (f *fakeDB) SaveToken(token string) error { f.token = token; return nil }
func (f *fakeDB) GetToken() (string, error)    { return f.token, nil }
func (f *fakeDB) DeleteToken() error           { f.token = ""; return nil }
func (f *fakeDB) CacheWeekSessions(string, []models.Session) error {
	return nil
}

func (f *fakeDB) GetCachedWeekSessions(string) ([]models.Session, error) {
	return nil, nil
}
func (f *fakeDB) Close() error { return nil }
func (f *fakeDB) Open() error  { return nil }

var _ store.DB = (*fakeDB)(nil)

func TestManagerPurgesExpiredToken(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	db := &fakeDB{token: makeToken(t, now.Add(-time.Hour))}

	m := NewManager(db)
	m.now = func() time.Time { return now }

	token, err := m.Token()
	if err != nil {
		t.Fatal(err)
	}

	if token != "" {
		t.Fatalf("expected empty token for expired credential, got %q", token)
	}

	if db.token != "" {
		t.Error("expired token was not purged from the store")
	}
}

func TestManagerReturnsValidToken(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	valid := makeToken(t, now.Add(time.Hour))
	db := &fakeDB{token: valid}

	m := NewManager(db)
	m.now = func() time.Time { return now }

	token, err := m.Token()
	if err != nil {
		t.Fatal(err)
	}

	if token != valid {
		t.Fatalf("Token() = %q, want stored token", token)
	}

	if !m.LoggedIn() {
		t.Error("LoggedIn() should report true with a valid token")
	}
}
