package app

import (
	"bufio"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/chat"
	"github.com/spotter-app/spotter/internal/models"
)

func chatAction(ctx *cli.Context) error {
	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	if ctx.Bool("clear") {
		if err := c.api.ClearChatHistory(ctx.Context); err != nil {
			return err
		}

		pterm.Success.Println("Conversation history cleared")

		return nil
	}

	streamer := chat.NewStreamer(
		conf.Server.BaseURL,
		c.api,
		conf.Server.StreamTimeout,
	)

	conversation := chat.NewConversation(streamer.Stream)

	pterm.Info.Println(
		`Chat with your coach. "/clear" resets history, "/quit" exits.`,
	)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		pterm.Print(pterm.Cyan("you> "))

		if !scanner.Scan() {
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		switch text {
		case "/quit", "/exit":
			return nil
		case "/clear":
			if err := c.api.ClearChatHistory(ctx.Context); err != nil {
				pterm.Error.Println(err)
				continue
			}

			conversation.Clear()
			pterm.Success.Println("Conversation history cleared")

			continue
		}

		err := conversation.Send(ctx.Context, text)

		printLastReply(conversation)

		if err != nil {
			if retryPrompt(conversation.Err()) {
				if err := conversation.Retry(ctx.Context); err != nil {
					pterm.Error.Println(conversation.Err())
					continue
				}

				printLastReply(conversation)
			} else {
				conversation.ClearError()
			}
		}
	}
}

func retryPrompt(errText string) bool {
	pterm.Error.Println(errText)

	retry, _ := pterm.DefaultInteractiveConfirm.Show("Retry the message?")

	return retry
}

// printLastReply renders the newest assistant message: tool activity
// first, then the content.
func printLastReply(conversation *chat.Conversation) {
	messages := conversation.Messages()
	if len(messages) == 0 {
		return
	}

	last := messages[len(messages)-1]
	if last.Role != models.RoleAssistant {
		return
	}

	for _, tc := range last.ToolCalls {
		marker := "…"
		if tc.Status == models.ToolComplete {
			marker = "✓"
		}

		pterm.Debug.Printfln("%s %s", marker, tc.Name)
	}

	if last.Thinking != "" {
		pterm.Debug.Println(pterm.Gray(last.Thinking))
	}

	if last.Content != "" {
		pterm.Printfln("%s %s", pterm.Green("coach>"), last.Content)
	}
}
