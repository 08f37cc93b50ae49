package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spotter-app/spotter/internal/models"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, error) {
	return s.token, nil
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, staticTokens{token: "tok123"}, 0)

	_, err := client.ListSessions(context.Background(), "2024-04-01")
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestNoHeaderWithoutToken(t *testing.T) {
	var gotAuth string

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, staticTokens{}, 0)

	_, err := client.ListSessions(context.Background(), "2024-04-01")
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedIsDistinct(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, staticTokens{token: "expired"}, 0)

	_, err := client.GetProfile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestErrorBodyMessageParsed(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"reps must be positive"}`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	_, err := client.LogSet(context.Background(), LogSetRequest{})

	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatalf("expected *Error, got %v", err)
	}

	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", apiErr.StatusCode)
	}

	if apiErr.Message != "reps must be positive" {
		t.Errorf("message = %q, want body message", apiErr.Message)
	}
}

func TestErrorBodyFallback(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not json"))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	_, err := client.GetProfile(context.Background())

	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatalf("expected *Error, got %v", err)
	}

	if !strings.Contains(apiErr.Message, "500") {
		t.Errorf("fallback message should carry the status, got %q", apiErr.Message)
	}
}

func TestNoContentResolvesEmpty(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	if err := client.DeleteLog(context.Background(), "log1"); err != nil {
		t.Fatalf("204 should resolve without error, got %v", err)
	}
}

func TestProfileNotFound(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	_, err := client.GetProfile(context.Background())
	if !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile for 404, got %v", err)
	}
}

func TestListSessionsNormalizesLegacySchema(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[
				{
					"id": "s1",
					"title": "Legs",
					"status": "scheduled",
					"exercises": [{"name": "Squat", "sets": 3, "reps": 5}]
				}
			]`))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	sessions, err := client.ListSessions(context.Background(), "2024-04-01")
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}

	groups := sessions[0].ExerciseGroups
	if len(groups) != 1 {
		t.Fatalf("legacy session was not normalized: %v", groups)
	}

	want := models.TimerConfig{
		Mode:        models.ModeStandard,
		RestSeconds: models.DefaultRestSeconds,
	}
	if diff := cmp.Diff(want, groups[0].TimerConfig); diff != "" {
		t.Errorf("timer config mismatch (-want +got):\n%s", diff)
	}
}

func TestVoiceParseMultipart(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parsing multipart form: %v", err)
			}

			if got := r.FormValue("exercise_name"); got != "Squat" {
				t.Errorf("exercise_name = %q", got)
			}

			if got := r.FormValue("session_id"); got != "s1" {
				t.Errorf("session_id = %q", got)
			}

			if _, _, err := r.FormFile("audio"); err != nil {
				t.Errorf("missing audio file: %v", err)
			}

			_, _ = w.Write([]byte(
				`{"transcript":"100 kilos for 5","parsed":{"weightKg":100,"reps":5}}`,
			))
		}),
	)
	defer server.Close()

	client := NewClient(server.URL, nil, 0)

	result, err := client.ParseVoice(
		context.Background(),
		strings.NewReader("fake-audio-bytes"),
		"Squat",
		"s1",
	)
	if err != nil {
		t.Fatal(err)
	}

	if result.Parsed == nil || result.Parsed.WeightKg != 100 || result.Parsed.Reps != 5 {
		t.Fatalf("unexpected parse result: %+v", result)
	}
}
