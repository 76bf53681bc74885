package models

import "time"

// UserInfo identifies a chat participant by handle and display name.
type UserInfo struct {
	UserName    string `json:"user_name"`
	DisplayName string `json:"display_name"`
}

type ConversationType int

const (
	ConversationOneToOne ConversationType = 1
	ConversationGroup    ConversationType = 2
)

// Conversation is a chat the bot is a member of
type Conversation struct {
	Token        string            `json:"token"`
	Type         ConversationType  `json:"type"`
	Name         string            `json:"name,omitempty"`
	Participants map[string]string `json:"participants"` // user name -> display name
}

// ConversationRecord is the registry entry for a joined conversation.
type ConversationRecord struct {
	Token    string    `json:"token"`
	JoinedAt time.Time `json:"joined_at"`
}
