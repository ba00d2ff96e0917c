package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentio/internal/domain/entity"
	"rentio/internal/domain/repository"
	"rentio/pkg/errors"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
}

func NewChatUseCase(chatRepo repository.ChatRepository) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
	}
}

type SendMessageInput struct {
	Text       string
	SenderID   string
	ReceiverID string
	ItemID     string
	ItemTitle  string
}

// ChatPreview is the per-viewer projection of a conversation for list
// display. It is derived on every delivery, never stored.
type ChatPreview struct {
	ID              string                            `json:"id"`
	ItemID          string                            `json:"item_id"`
	ItemTitle       string                            `json:"item_title"`
	LastMessage     string                            `json:"last_message"`
	Timestamp       time.Time                         `json:"timestamp"`
	Participants    []string                          `json:"participants"`
	Unread          bool                              `json:"unread"`
	ParticipantInfo map[string]entity.ParticipantInfo `json:"participant_info"`
}

// GetOrCreateChat finds the conversation for (item, sender, receiver)
// or creates it. Repeated calls with the same triple converge on the
// same conversation id. The lookup-before-create is not atomic against
// the store, so two concurrent first contacts can still race into
// duplicate conversations; that race is documented, not prevented.
func (uc *ChatUseCase) GetOrCreateChat(ctx context.Context, senderID, receiverID, itemID, itemTitle string) (string, error) {
	if senderID == receiverID {
		log.Printf("GetOrCreateChat Error: User %s attempted to open a chat with themselves", senderID)
		return "", errors.BadRequest("You cannot open a chat with yourself", nil)
	}
	if itemID == "" {
		return "", errors.BadRequest("Item id is required", nil)
	}

	convs, err := uc.chatRepo.ListByItemAndParticipant(ctx, itemID, senderID)
	if err != nil {
		log.Printf("GetOrCreateChat Error: Failed to search for existing conversation: %v", err)
		return "", err
	}

	for _, conv := range convs {
		if len(conv.Participants) == 2 &&
			conv.HasParticipant(senderID) &&
			conv.HasParticipant(receiverID) &&
			conv.ItemID == itemID {
			return conv.ID, nil
		}
	}

	conv := &entity.Conversation{
		Participants: []string{senderID, receiverID},
		ItemID:       itemID,
		ItemTitle:    itemTitle,
		LastMessage:  "",
		Unread: map[string]bool{
			senderID:   false,
			receiverID: false,
		},
		ParticipantInfo: map[string]entity.ParticipantInfo{
			senderID:   {Name: "You", Avatar: placeholderAvatar(senderID)},
			receiverID: {Name: "Other User", Avatar: placeholderAvatar(receiverID)},
		},
	}

	if err := uc.chatRepo.Create(ctx, conv); err != nil {
		log.Printf("GetOrCreateChat Error: Failed to create conversation for item %s: %v", itemID, err)
		return "", err
	}

	return conv.ID, nil
}

// SendMessage appends a message to the conversation for the given
// (item, pair), resolving it first. Three store writes happen in
// sequence: message create in "sending", conversation summary update
// with the receiver's unread flag, message status advance to "sent".
// They are not transactional as a unit; a failure in a later step is
// logged and returned without rolling back the earlier ones.
func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	if input.Text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}
	if input.ReceiverID == "" {
		return nil, errors.BadRequest("Receiver is required", nil)
	}

	chatID, err := uc.GetOrCreateChat(ctx, input.SenderID, input.ReceiverID, input.ItemID, input.ItemTitle)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ChatID:     chatID,
		Text:       input.Text,
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		ItemID:     input.ItemID,
		Status:     entity.MessageStatusSending,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		log.Printf("SendMessage Error: Failed to create message for chat %s: %v", chatID, err)
		return nil, err
	}

	if err := uc.chatRepo.UpdateLastMessage(ctx, chatID, input.Text, input.ReceiverID); err != nil {
		// The message exists but the summary lags it. Left for the next
		// successful send to correct.
		log.Printf("SendMessage Error: Failed to update summary for chat %s: %v", chatID, err)
		return nil, err
	}

	if err := uc.chatRepo.UpdateMessageStatus(ctx, message.ID, entity.MessageStatusSent); err != nil {
		// The message stays visible in "sending"; no retry here.
		log.Printf("SendMessage Error: Failed to advance message %s to sent: %v", message.ID, err)
		return nil, err
	}
	message.Status = entity.MessageStatusSent

	return message, nil
}

// MarkChatAsRead clears the viewer's unread flag and transitions every
// message addressed to the viewer still in sent/delivered to read. The
// flag write and the message batch are two separate operations; if one
// fails they stay out of sync until the next call.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, chatID, viewerID string) error {
	if err := uc.chatRepo.SetUnread(ctx, chatID, viewerID, false); err != nil {
		log.Printf("MarkChatAsRead Error: Failed to clear unread flag for chat %s: %v", chatID, err)
		return err
	}

	messages, err := uc.chatRepo.ListUnreadMessages(ctx, chatID, viewerID)
	if err != nil {
		log.Printf("MarkChatAsRead Error: Failed to query unread messages for chat %s: %v", chatID, err)
		return err
	}

	ids := make([]string, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, ids); err != nil {
		log.Printf("MarkChatAsRead Error: Failed to mark %d messages read in chat %s: %v", len(ids), chatID, err)
		return err
	}

	return nil
}

// GetChatList returns the one-shot equivalent of the chat list
// projection: previews for every conversation the user is part of,
// ordered by last message time descending.
func (uc *ChatUseCase) GetChatList(ctx context.Context, userID string) ([]ChatPreview, error) {
	convs, err := uc.chatRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("GetChatList Error: Failed to list chats for user %s: %v", userID, err)
		return nil, err
	}

	return buildPreviews(convs, userID), nil
}

func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string) ([]*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		log.Printf("GetChatMessages Error: Chat %s not found: %v", chatID, err)
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		log.Printf("GetChatMessages Error: User %s is not a participant in chat %s", userID, chatID)
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID)
}

// SubscribeChatList opens a standing query over the user's
// conversations and re-derives the full ordered preview list on every
// change. The per-viewer unread boolean comes from the conversation's
// unread map, defaulting to false for missing entries.
func (uc *ChatUseCase) SubscribeChatList(ctx context.Context, userID string, onUpdate func([]ChatPreview)) (repository.Unsubscribe, error) {
	return uc.chatRepo.SubscribeChats(ctx, userID, func(convs []*entity.Conversation) {
		onUpdate(buildPreviews(convs, userID))
	})
}

// SubscribeChatMessages opens a standing query over one conversation's
// messages in chronological order and delivers the full list on every
// change.
func (uc *ChatUseCase) SubscribeChatMessages(ctx context.Context, chatID string, onUpdate func([]*entity.Message)) (repository.Unsubscribe, error) {
	return uc.chatRepo.SubscribeMessages(ctx, chatID, onUpdate)
}

func buildPreviews(convs []*entity.Conversation, viewerID string) []ChatPreview {
	previews := make([]ChatPreview, 0, len(convs))
	for _, conv := range convs {
		previews = append(previews, ChatPreview{
			ID:              conv.ID,
			ItemID:          conv.ItemID,
			ItemTitle:       conv.ItemTitle,
			LastMessage:     conv.LastMessage,
			Timestamp:       conv.LastMessageTime,
			Participants:    conv.Participants,
			Unread:          conv.Unread[viewerID],
			ParticipantInfo: conv.ParticipantInfo,
		})
	}
	return previews
}

func placeholderAvatar(userID string) string {
	return fmt.Sprintf("https://picsum.photos/100?random=%s", userID)
}
