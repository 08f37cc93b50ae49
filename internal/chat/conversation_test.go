package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spotter-app/spotter/internal/models"
)

// scriptedStream replays a fixed set of event sequences, one per send.
func scriptedStream(script ...[]Event) (StreamFunc, *[]string) {
	var sent []string

	call := 0

	fn := func(_ context.Context, message string) <-chan Event {
		sent = append(sent, message)

		var events []Event
		if call < len(script) {
			events = script[call]
		}

		call++

		ch := make(chan Event)

		go func() {
			defer close(ch)

			for _, ev := range events {
				ch <- ev
			}
		}()

		return ch
	}

	return fn, &sent
}

func TestCumulativeTextReplaces(t *testing.T) {
	stream, _ := scriptedStream([]Event{
		{Type: EventText, Text: "a"},
		{Type: EventText, Text: "ab"},
		{Type: EventText, Text: "abc"},
		{Type: EventDone},
	})

	c := NewConversation(stream)

	if err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	if msgs[1].Content != "abc" {
		t.Fatalf("content = %q, want abc", msgs[1].Content)
	}

	if msgs[1].IsStreaming {
		t.Error("done event should clear the streaming flag")
	}
}

func TestThinkingAccumulates(t *testing.T) {
	stream, _ := scriptedStream([]Event{
		{Type: EventThinking, Text: "let me "},
		{Type: EventThinking, Text: "think"},
		{Type: EventDone},
	})

	c := NewConversation(stream)

	if err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	msgs := c.Messages()
	if msgs[1].Thinking != "let me think" {
		t.Fatalf("thinking = %q", msgs[1].Thinking)
	}
}

func TestToolCallLifecycle(t *testing.T) {
	stream, _ := scriptedStream([]Event{
		{Type: EventToolStart, Name: "generate_plan"},
		{Type: EventToolStart, Name: "generate_plan"}, // duplicate start
		{Type: EventToolStart, Name: ""},              // empty name skipped
		{Type: EventToolStart, Name: "lookup_history"},
		{Type: EventToolDone, Name: "generate_plan"},
		{Type: EventDone},
	})

	c := NewConversation(stream)

	if err := c.Send(context.Background(), "plan my week"); err != nil {
		t.Fatal(err)
	}

	got := c.Messages()[1].ToolCalls
	want := []models.ToolCall{
		{Name: "generate_plan", Status: models.ToolComplete},
		{Name: "lookup_history", Status: models.ToolLoading},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tool calls mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamExhaustionForceClearsStreaming(t *testing.T) {
	// the stream ends without a done event, as on a dropped connection
	stream, _ := scriptedStream([]Event{
		{Type: EventText, Text: "partial"},
	})

	c := NewConversation(stream)

	if err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	last := c.Messages()[1]
	if last.IsStreaming {
		t.Error("streaming flag must be force-cleared when the stream ends without done")
	}

	if last.Content != "partial" {
		t.Errorf("content = %q, want partial", last.Content)
	}
}

func TestInterimErrorEventAppendsWarning(t *testing.T) {
	stream, _ := scriptedStream([]Event{
		{Type: EventText, Text: "so far"},
		{Type: EventError, Text: "Connection lost, retrying..."},
		{Type: EventText, Text: "so far, so good"},
		{Type: EventDone},
	})

	c := NewConversation(stream)

	if err := c.Send(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}

	content := c.Messages()[1].Content
	if content != "so far, so good" {
		t.Fatalf("cumulative text after a retry should win, got %q", content)
	}
}

func TestRetryResendsOriginalMessage(t *testing.T) {
	failure := []Event{
		{Type: EventThinking, Text: "hmm"},
		{Type: EventError, Err: errors.New("server error: 502")},
	}
	success := []Event{
		{Type: EventText, Text: "here is your plan"},
		{Type: EventDone},
	}

	stream, sent := scriptedStream(failure, success)

	c := NewConversation(stream)

	err := c.Send(context.Background(), "make me a plan")
	if err == nil {
		t.Fatal("expected the first send to fail")
	}

	if c.Err() == "" {
		t.Error("failed send should record an error message")
	}

	if err := c.Retry(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(*sent) != 2 || (*sent)[1] != "make me a plan" {
		t.Fatalf("retry must resend the original text, sent: %v", *sent)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("failed assistant message should be discarded, got %d messages", len(msgs))
	}

	if msgs[1].Thinking != "" {
		t.Error("partial thinking from the failed attempt should be gone")
	}

	if msgs[1].Content != "here is your plan" {
		t.Errorf("content = %q", msgs[1].Content)
	}

	if c.Err() != "" {
		t.Error("successful retry should clear the recorded error")
	}
}

func TestRetryWithoutFailureIsNoop(t *testing.T) {
	stream, sent := scriptedStream()

	c := NewConversation(stream)

	if err := c.Retry(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(*sent) != 0 {
		t.Fatalf("no message should be sent, got %v", *sent)
	}
}

func TestEventsIgnoredWhenLastMessageIsUser(t *testing.T) {
	c := NewConversation(nil)

	c.messages = []models.ChatDisplayMessage{
		{Role: models.RoleUser, Content: "racing send"},
	}

	c.apply(Event{Type: EventText, Text: "stale"})

	if c.messages[0].Content != "racing send" {
		t.Error("events must never mutate a user message")
	}
}
