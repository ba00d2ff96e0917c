package repository

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentio/internal/domain/entity"
	"rentio/internal/domain/repository"
	"rentio/pkg/errors"
	"rentio/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	// CreatedAt and LastMessageTime are zero here; the serverTimestamp
	// tag makes the store assign them.
	_, err := r.client.Collection("chats").Doc(conv.ID).Set(ctx, conv)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	conv.ID = doc.Ref.ID

	return &conv, nil
}

func (r *firestoreChatRepository) ListByItemAndParticipant(ctx context.Context, itemID, userID string) ([]*entity.Conversation, error) {
	query := r.client.Collection("chats").
		Where("itemId", "==", itemID).
		Where("participants", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while querying chats for item %s: %v", itemID, err)
		return nil, errors.Internal("Failed to query conversations", err)
	}

	return decodeConversations(docs), nil
}

func (r *firestoreChatRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	return decodeConversations(docs), nil
}

// UpdateLastMessage writes the denormalized summary after a send: last
// message text, server-assigned last message time, and the receiver's
// unread flag. The sender's flag is deliberately untouched.
func (r *firestoreChatRepository) UpdateLastMessage(ctx context.Context, chatID, text, receiverID string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: text},
		{Path: "lastMessageTime", Value: firestore.ServerTimestamp},
		{FieldPath: firestore.FieldPath{"unread", receiverID}, Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", nil)
		}
		return errors.Internal("Failed to update conversation summary", err)
	}

	return nil
}

func (r *firestoreChatRepository) SetUnread(ctx context.Context, chatID, userID string, unread bool) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"unread", userID}, Value: unread},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Conversation", nil)
		}
		return errors.Internal("Failed to update unread flag", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) UpdateMessageStatus(ctx context.Context, messageID, newStatus string) error {
	_, err := r.client.Collection("messages").Doc(messageID).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Message", nil)
		}
		return errors.Internal("Failed to update message status", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("chatId", "==", chatID).
		OrderBy("timestamp", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for chat %s: %v", chatID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing message data for chat %s: %v", chatID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID

		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) ListUnreadMessages(ctx context.Context, chatID, receiverID string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("chatId", "==", chatID).
		Where("receiverId", "==", receiverID).
		Where("status", "in", []string{entity.MessageStatusSent, entity.MessageStatusDelivered})

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query unread messages", err)
	}

	var messages []*entity.Message
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue // Skip malformed documents
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, nil
}

// MarkMessagesRead commits all status transitions as a single write
// batch, so the step is all-or-nothing across the messages involved.
func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, id := range messageIDs {
		ref := r.client.Collection("messages").Doc(id)
		batch.Update(ref, []firestore.Update{
			{Path: "status", Value: entity.MessageStatusRead},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark messages as read", err)
	}

	return nil
}

func (r *firestoreChatRepository) SubscribeChats(ctx context.Context, userID string, fn func([]*entity.Conversation)) (repository.Unsubscribe, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)

	return watchQuery(ctx, query, func(docs []*firestore.DocumentSnapshot) {
		fn(decodeConversations(docs))
	}), nil
}

func (r *firestoreChatRepository) SubscribeMessages(ctx context.Context, chatID string, fn func([]*entity.Message)) (repository.Unsubscribe, error) {
	query := r.client.Collection("messages").
		Where("chatId", "==", chatID).
		OrderBy("timestamp", firestore.Asc)

	return watchQuery(ctx, query, func(docs []*firestore.DocumentSnapshot) {
		var messages []*entity.Message
		for _, doc := range docs {
			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				continue
			}
			message.ID = doc.Ref.ID
			messages = append(messages, &message)
		}
		fn(messages)
	}), nil
}

// watchQuery runs a snapshot listener for the query and hands the full
// document set to deliver on every change. The delivery callback and
// the returned detach func share a mutex, which is what guarantees that
// no delivery runs after detach returns, even one already in flight.
func watchQuery(ctx context.Context, query firestore.Query, deliver func([]*firestore.DocumentSnapshot)) repository.Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	sub := &snapshotSubscription{cancel: cancel}

	snapshots := query.Snapshots(ctx)
	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Warn("watchQuery: snapshot stream ended: %v", err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("watchQuery: failed to read snapshot documents: %v", err)
				continue
			}

			sub.deliver(func() { deliver(docs) })
		}
	}()

	return sub.stop
}

type snapshotSubscription struct {
	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
}

func (s *snapshotSubscription) stop() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *snapshotSubscription) deliver(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn()
}

func decodeConversations(docs []*firestore.DocumentSnapshot) []*entity.Conversation {
	var convs []*entity.Conversation
	for _, doc := range docs {
		var conv entity.Conversation
		if err := doc.DataTo(&conv); err != nil {
			logger.Error("Error parsing conversation data: %v", err)
			continue // Skip bad data instead of failing
		}
		conv.ID = doc.Ref.ID
		convs = append(convs, &conv)
	}
	return convs
}
