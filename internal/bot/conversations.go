package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/generator"
	"github.com/xaenox/weather-bot/internal/models"
)

// HandleNewConversation greets a conversation the bot has just joined. A
// one-to-one conversation gets a personal welcome naming the other
// participant, everything else a group welcome.
func (b *Bot) HandleNewConversation(ctx context.Context, conv models.Conversation) {
	self := b.gateway.Self()
	props := generator.WelcomeProperties{
		BotUserName:    self.UserName,
		BotDisplayName: self.DisplayName,
	}

	logger := b.logger.With(zap.String("conversation", conv.Token))

	var text string
	if other, ok := otherParticipant(conv, self.UserName); ok && conv.Type == models.ConversationOneToOne {
		props.UserDisplayName = other
		text = b.generator.GeneratePersonalWelcome(props)
	} else {
		text = b.generator.GenerateGroupWelcome(props)
	}

	b.sendMessage(ctx, logger, conv.Token, text)
}

// Joined records a membership event and welcomes the conversation the first
// time it is seen.
func (b *Bot) Joined(ctx context.Context, conv models.Conversation) {
	isNew, err := b.store.MarkJoined(ctx, conv.Token)
	if err != nil {
		b.logger.Error("Failed to record conversation",
			zap.Error(err),
			zap.String("conversation", conv.Token))
		return
	}
	if !isNew {
		b.logger.Debug("Conversation already known", zap.String("conversation", conv.Token))
		return
	}

	b.metrics.ConversationsJoined.Inc()
	b.logger.Info("Joined conversation",
		zap.String("conversation", conv.Token),
		zap.String("name", conv.Name))

	b.HandleNewConversation(ctx, conv)
}

// Left forgets the conversation so a later invitation is welcomed again.
func (b *Bot) Left(ctx context.Context, conversationToken string) {
	if err := b.store.Forget(ctx, conversationToken); err != nil {
		b.logger.Error("Failed to forget conversation",
			zap.Error(err),
			zap.String("conversation", conversationToken))
		return
	}
	b.logger.Info("Left conversation", zap.String("conversation", conversationToken))
}

func otherParticipant(conv models.Conversation, botUserName string) (string, bool) {
	for userName, displayName := range conv.Participants {
		if userName != botUserName {
			return displayName, true
		}
	}
	return "", false
}
