package chat

import (
	"context"
	"sync"

	"github.com/spotter-app/spotter/internal/models"
)

// StreamFunc produces the event sequence for one outgoing message.
type StreamFunc func(ctx context.Context, message string) <-chan Event

// Conversation maintains the ordered display message list and applies
// streamed events to the most recent assistant message.
type Conversation struct {
	mu         sync.Mutex
	messages   []models.ChatDisplayMessage
	lastFailed string
	lastError  string
	stream     StreamFunc
}

// NewConversation returns an empty conversation fed by stream.
func NewConversation(stream StreamFunc) *Conversation {
	return &Conversation{stream: stream}
}

// Messages returns a snapshot of the display messages.
func (c *Conversation) Messages() []models.ChatDisplayMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ChatDisplayMessage, len(c.messages))
	copy(out, c.messages)

	return out
}

// Err returns the recorded error message from the last failed send, or "".
func (c *Conversation) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastError
}

// ClearError dismisses the recorded error.
func (c *Conversation) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastError = ""
}

// Clear discards all messages and any pending retry state.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
	c.lastFailed = ""
	c.lastError = ""
}

// Send appends the user message together with a streaming assistant
// placeholder, then consumes the event stream until it ends. A terminal
// stream failure records the error and remembers the original text so
// Retry can resend it unchanged.
func (c *Conversation) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	c.messages = append(c.messages,
		models.ChatDisplayMessage{
			Role:    models.RoleUser,
			Content: text,
		},
		models.ChatDisplayMessage{
			Role:        models.RoleAssistant,
			IsStreaming: true,
		},
	)
	c.lastError = ""
	c.lastFailed = ""
	c.mu.Unlock()

	var streamErr error

	for event := range c.stream(ctx, text) {
		if event.Err != nil {
			streamErr = event.Err
			break
		}

		c.apply(event)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if streamErr != nil {
		c.lastError = streamErr.Error()
		c.lastFailed = text
	}

	// the stream may end without a done event (e.g. a dropped
	// connection), so force-clear the streaming flag as a safety net
	if last := c.lastAssistant(); last != nil && last.IsStreaming {
		last.IsStreaming = false
	}

	return streamErr
}

// Retry discards the failed assistant message and resends the original
// user message verbatim. It is a no-op when no send has failed.
func (c *Conversation) Retry(ctx context.Context) error {
	c.mu.Lock()

	if c.lastFailed == "" {
		c.mu.Unlock()
		return nil
	}

	text := c.lastFailed

	if n := len(c.messages); n > 0 &&
		c.messages[n-1].Role == models.RoleAssistant {
		c.messages = c.messages[:n-1]
	}

	// drop the original user message as well so the resend does not
	// show the same text twice; Send re-appends it
	if n := len(c.messages); n > 0 &&
		c.messages[n-1].Role == models.RoleUser &&
		c.messages[n-1].Content == text {
		c.messages = c.messages[:n-1]
	}

	c.lastFailed = ""
	c.lastError = ""
	c.mu.Unlock()

	return c.Send(ctx, text)
}

// apply folds one event into the last message, which must be an
// in-progress assistant message; events racing a newer send are ignored.
func (c *Conversation) apply(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := c.lastAssistant()
	if last == nil {
		return
	}

	switch event.Type {
	case EventThinking:
		last.Thinking += event.Text

	case EventToolStart:
		if event.Name == "" {
			return
		}

		// duplicate start signals are ignored
		for _, tc := range last.ToolCalls {
			if tc.Name == event.Name {
				return
			}
		}

		last.ToolCalls = append(last.ToolCalls, models.ToolCall{
			Name:   event.Name,
			Status: models.ToolLoading,
		})

	case EventToolDone:
		for i := range last.ToolCalls {
			if last.ToolCalls[i].Name == event.Name {
				last.ToolCalls[i].Status = models.ToolComplete
			}
		}

	case EventText:
		// the backend sends cumulative text, so replace rather than
		// append
		last.Content = event.Text

	case EventError:
		text := event.Text
		if text == "" {
			text = "An error occurred"
		}

		last.Content += "\n\n⚠ " + text
		last.IsStreaming = false

	case EventDone:
		last.IsStreaming = false
	}
}

// lastAssistant returns the trailing assistant message, or nil when the
// newest message belongs to the user.
func (c *Conversation) lastAssistant() *models.ChatDisplayMessage {
	if len(c.messages) == 0 {
		return nil
	}

	last := &c.messages[len(c.messages)-1]
	if last.Role != models.RoleAssistant {
		return nil
	}

	return last
}
