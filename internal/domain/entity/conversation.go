package entity

import "time"

// ParticipantInfo is the display snapshot taken when a conversation is
// created. It is never refreshed from the identity provider afterwards.
type ParticipantInfo struct {
	Name   string `json:"name" firestore:"name"`
	Avatar string `json:"avatar" firestore:"avatar"`
}

// Conversation is a two-party chat thread scoped to exactly one item.
// At most one conversation exists per (itemId, participant pair); the
// chat usecase enforces this with a lookup before create.
type Conversation struct {
	ID              string                     `json:"id" firestore:"id"`
	Participants    []string                   `json:"participants" firestore:"participants"`
	ItemID          string                     `json:"item_id" firestore:"itemId"`
	ItemTitle       string                     `json:"item_title" firestore:"itemTitle"`
	LastMessage     string                     `json:"last_message" firestore:"lastMessage"`
	LastMessageTime time.Time                  `json:"last_message_time" firestore:"lastMessageTime,serverTimestamp"`
	Unread          map[string]bool            `json:"unread" firestore:"unread"`
	ParticipantInfo map[string]ParticipantInfo `json:"participant_info" firestore:"participantInfo"`
	CreatedAt       time.Time                  `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
