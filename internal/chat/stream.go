// Package chat streams coach replies from the backend and folds them
// into a display conversation.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// EventType identifies a streamed chat event.
type EventType string

const (
	EventThinking  EventType = "thinking"
	EventToolStart EventType = "tool_start"
	EventToolDone  EventType = "tool_done"
	EventText      EventType = "text"
	EventError     EventType = "error"
	EventDone      EventType = "done"
)

// Event is one frame of the chat stream. Text events carry the
// cumulative assistant text so far, not a delta. Err is set only on the
// terminal event of a failed stream.
type Event struct {
	Type   EventType `json:"type"`
	Text   string    `json:"text,omitempty"`
	Name   string    `json:"name,omitempty"`
	Status string    `json:"status,omitempty"`
	Err    error     `json:"-"`
}

const (
	defaultStreamTimeout = 60 * time.Second
	maxRetries           = 2
	dataPrefix           = "data:"
)

var retryDelays = []time.Duration{time.Second, 2 * time.Second}

var errStreamExhausted = errors.New("unable to reach the coach")

// AuthHeaderSource supplies the Authorization header value for stream
// requests ("" when unauthenticated).
type AuthHeaderSource interface {
	AuthHeader() (string, error)
}

// Streamer opens long-lived chat stream requests against the backend.
type Streamer struct {
	baseURL string
	auth    AuthHeaderSource
	timeout time.Duration
	http    *http.Client
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewStreamer returns a Streamer for the given backend base URL.
func NewStreamer(
	baseURL string,
	auth AuthHeaderSource,
	timeout time.Duration,
) *Streamer {
	if timeout <= 0 {
		timeout = defaultStreamTimeout
	}

	return &Streamer{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		timeout: timeout,
		// the per-attempt timeout is applied through the request
		// context, not the client, so slow streams are not cut off by
		// a transport-level deadline shorter than the read
		http:  &http.Client{},
		sleep: sleepCtx,
	}
}

// Stream sends one chat message and returns a finite, single-consumption
// sequence of events. Server errors and connection failures are retried
// twice with increasing backoff, announced by an interim error event.
// Exhausting all retries delivers a terminal event with Err set, then the
// channel closes.
func (s *Streamer) Stream(ctx context.Context, message string) <-chan Event {
	ch := make(chan Event)

	go func() {
		defer close(ch)

		var lastErr error

		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				if !emit(ctx, ch, Event{
					Type: EventError,
					Text: "Connection lost, retrying...",
				}) {
					return
				}

				if err := s.sleep(ctx, retryDelays[attempt-1]); err != nil {
					return
				}
			}

			retryable, err := s.attempt(ctx, message, ch)
			if err == nil {
				return
			}

			if !retryable {
				emit(ctx, ch, Event{Type: EventError, Err: err})
				return
			}

			lastErr = err
		}

		if lastErr == nil {
			lastErr = errStreamExhausted
		}

		emit(ctx, ch, Event{Type: EventError, Err: lastErr})
	}()

	return ch
}

// attempt performs a single stream request. It reports whether a failure
// is retryable.
func (s *Streamer) attempt(
	ctx context.Context,
	message string,
	ch chan<- Event,
) (retryable bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(
		reqCtx,
		http.MethodPost,
		s.baseURL+"/chat/stream",
		bytes.NewReader(body),
	)
	if err != nil {
		return false, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	if s.auth != nil {
		header, err := s.auth.AuthHeader()
		if err != nil {
			return false, err
		}

		if header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		// connection resets, DNS failures, and the request timeout
		// are all transient
		return true, err
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return true, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("chat request failed: %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimSpace(line[len(dataPrefix):])
		if payload == "" {
			continue
		}

		var event Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			// malformed frames are dropped, the stream continues
			continue
		}

		slog.Debug("stream event", slog.String("dump", spew.Sdump(event)))

		if !emit(ctx, ch, event) {
			return false, ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		// the connection dropped mid-stream without a done event;
		// the consumer's force-clear fallback handles the open
		// assistant message
		slog.Debug("stream read ended", slog.Any("error", err))
	}

	return false, nil
}

func emit(ctx context.Context, ch chan<- Event, event Event) bool {
	select {
	case ch <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
