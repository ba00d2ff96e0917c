package entity

import "time"

// Message delivery status. Status only moves forward along
// sending -> sent -> delivered -> read; nothing ever demotes it.
// "delivered" is part of the taxonomy but no operation currently
// assigns it; the read-state sync still accepts it as unread input.
const (
	MessageStatusSending   = "sending"
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// Message is a single utterance inside a conversation. The document
// lives in the top-level "messages" collection and references its
// conversation through ChatID. CreatedAt is server-assigned.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	Text       string    `json:"text" firestore:"text"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	ItemID     string    `json:"item_id" firestore:"itemId"`
	Status     string    `json:"status" firestore:"status"`
	CreatedAt  time.Time `json:"created_at" firestore:"timestamp,serverTimestamp"`
}
