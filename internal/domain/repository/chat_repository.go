package repository

import (
	"context"

	"rentio/internal/domain/entity"
)

// Unsubscribe detaches a standing query. It is idempotent; once it
// returns, the subscriber receives no further deliveries, including
// ones that were in flight.
type Unsubscribe func()

type ChatRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByItemAndParticipant(ctx context.Context, itemID, userID string) ([]*entity.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)
	UpdateLastMessage(ctx context.Context, chatID, text, receiverID string) error
	SetUnread(ctx context.Context, chatID, userID string, unread bool) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	UpdateMessageStatus(ctx context.Context, messageID, status string) error
	ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error)
	ListUnreadMessages(ctx context.Context, chatID, receiverID string) ([]*entity.Message, error)
	// MarkMessagesRead transitions all given messages to "read" as one
	// atomic batch.
	MarkMessagesRead(ctx context.Context, messageIDs []string) error

	// Standing queries. The callback receives the full current result
	// set on the initial snapshot and again on every matching change.
	SubscribeChats(ctx context.Context, userID string, fn func([]*entity.Conversation)) (Unsubscribe, error)
	SubscribeMessages(ctx context.Context, chatID string, fn func([]*entity.Message)) (Unsubscribe, error)
}
