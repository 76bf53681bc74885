// Package console implements a chat gateway that prints replies, used to try
// utterances from the command line.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/xaenox/weather-bot/internal/models"
)

const (
	BotUserName    = "wetter"
	BotDisplayName = "Wetterfrosch"
)

// ConversationToken is the token of the single console conversation.
const ConversationToken = "console"

type Gateway struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Gateway {
	return &Gateway{out: out}
}

func (g *Gateway) Self() models.UserInfo {
	return models.UserInfo{UserName: BotUserName, DisplayName: BotDisplayName}
}

func (g *Gateway) SendText(_ context.Context, text, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := fmt.Fprintln(g.out, text); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

// Message wraps text as an inbound message of the console conversation.
func Message(text string) models.Message {
	return models.Message{Text: text, ConversationToken: ConversationToken, SenderName: "console"}
}
