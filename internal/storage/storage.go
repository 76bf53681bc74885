package storage

import (
	"context"

	"github.com/xaenox/weather-bot/internal/models"
)

// ConversationStore remembers the conversations the bot has joined, so a
// welcome is sent once per conversation even when the platform repeats the
// membership event.
type ConversationStore interface {
	// MarkJoined records the conversation and reports whether it was new.
	MarkJoined(ctx context.Context, token string) (bool, error)
	Forget(ctx context.Context, token string) error
	List(ctx context.Context) ([]models.ConversationRecord, error)
	CheckReadiness(ctx context.Context) error
	Close() error
}
