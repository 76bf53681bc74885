// Package telegram adapts the Telegram Bot API to the chat gateway used by
// the bot.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/models"
)

// Handler receives the events delivered by the update loop.
type Handler interface {
	HandleMessage(ctx context.Context, message models.Message)
	Joined(ctx context.Context, conv models.Conversation)
	Left(ctx context.Context, conversationToken string)
}

type Gateway struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	logger      *zap.Logger
}

func New(token string, pollTimeout int, logger *zap.Logger) (*Gateway, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return NewWithAPI(api, pollTimeout, logger), nil
}

func NewWithAPI(api *tgbotapi.BotAPI, pollTimeout int, logger *zap.Logger) *Gateway {
	if pollTimeout <= 0 {
		pollTimeout = 60
	}
	return &Gateway{api: api, pollTimeout: pollTimeout, logger: logger}
}

func (g *Gateway) Self() models.UserInfo {
	return userInfo(&g.api.Self)
}

// SendText sends plain text to the chat identified by conversationToken.
func (g *Gateway) SendText(_ context.Context, text, conversationToken string) error {
	chatID, err := strconv.ParseInt(conversationToken, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid conversation token %q: %w", conversationToken, err)
	}

	if _, err := g.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Run polls for updates until ctx is canceled. Each event is handled in its
// own goroutine; Run waits for in-flight handlers before returning.
func (g *Gateway) Run(ctx context.Context, handler Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = g.pollTimeout
	u.AllowedUpdates = []string{"message", "my_chat_member"}

	updates := g.api.GetUpdatesChan(u)
	g.logger.Info("Polling Telegram updates", zap.String("bot", g.api.Self.UserName))

	g.consume(ctx, updates, handler)
	g.api.StopReceivingUpdates()
	return nil
}

// consume dispatches updates until ctx is canceled or the channel closes,
// then waits for the handlers it started.
func (g *Gateway) consume(ctx context.Context, updates <-chan tgbotapi.Update, handler Handler) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			g.dispatch(ctx, &wg, handler, update)
		}
	}
}

func (g *Gateway) dispatch(ctx context.Context, wg *sync.WaitGroup, handler Handler, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		msg, ok := toMessage(update.Message)
		if !ok {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.HandleMessage(ctx, msg)
		}()

	case update.MyChatMember != nil:
		event := membershipChange(update.MyChatMember, &g.api.Self)
		switch event.kind {
		case memberJoined:
			wg.Add(1)
			go func() {
				defer wg.Done()
				handler.Joined(ctx, event.conversation)
			}()
		case memberLeft:
			wg.Add(1)
			go func() {
				defer wg.Done()
				handler.Left(ctx, event.conversation.Token)
			}()
		}
	}
}

// toMessage converts a text message. Captions count as text.
func toMessage(m *tgbotapi.Message) (models.Message, bool) {
	text := m.Text
	if text == "" {
		text = m.Caption
	}
	if text == "" || m.Chat == nil {
		return models.Message{}, false
	}

	var sender string
	if m.From != nil {
		sender = displayName(m.From)
	}

	return models.Message{
		Text:              text,
		ConversationToken: chatToken(m.Chat),
		SenderName:        sender,
	}, true
}

type membershipKind int

const (
	memberUnchanged membershipKind = iota
	memberJoined
	memberLeft
)

type membershipEvent struct {
	kind         membershipKind
	conversation models.Conversation
}

// membershipChange interprets a my_chat_member update for the bot account.
func membershipChange(u *tgbotapi.ChatMemberUpdated, self *tgbotapi.User) membershipEvent {
	conv := conversation(&u.Chat, &u.From, self)

	wasMember := isMemberStatus(u.OldChatMember.Status)
	isMember := isMemberStatus(u.NewChatMember.Status)

	switch {
	case isMember && !wasMember:
		return membershipEvent{kind: memberJoined, conversation: conv}
	case wasMember && !isMember:
		return membershipEvent{kind: memberLeft, conversation: conv}
	default:
		return membershipEvent{kind: memberUnchanged, conversation: conv}
	}
}

func isMemberStatus(status string) bool {
	switch status {
	case "creator", "administrator", "member", "restricted":
		return true
	default:
		return false
	}
}

// conversation builds the participant map Telegram exposes: the bot and the
// user who triggered the event.
func conversation(chat *tgbotapi.Chat, from, self *tgbotapi.User) models.Conversation {
	conv := models.Conversation{
		Token:        chatToken(chat),
		Type:         models.ConversationGroup,
		Name:         chat.Title,
		Participants: map[string]string{userKey(self): displayName(self)},
	}

	if chat.IsPrivate() {
		conv.Type = models.ConversationOneToOne
		conv.Name = strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	}
	if from != nil && from.ID != 0 && from.ID != self.ID {
		conv.Participants[userKey(from)] = displayName(from)
	}

	return conv
}

func chatToken(chat *tgbotapi.Chat) string {
	return strconv.FormatInt(chat.ID, 10)
}

func userInfo(u *tgbotapi.User) models.UserInfo {
	return models.UserInfo{UserName: u.UserName, DisplayName: displayName(u)}
}

func userKey(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strconv.FormatInt(u.ID, 10)
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.UserName
	}
	return name
}
