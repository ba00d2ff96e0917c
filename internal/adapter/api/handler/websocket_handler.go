package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"rentio/internal/adapter/api/middleware"
	"rentio/internal/domain/entity"
	"rentio/internal/domain/repository"
	ws "rentio/internal/infrastructure/websocket"
	"rentio/internal/usecase"
	"rentio/pkg/errors"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	chatUseCase    *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		chatUseCase:    chatUseCase,
	}
}

// HandleWebSocket upgrades the connection and attaches a chat list
// projection for the authenticated user. The client can then join one
// conversation at a time to receive its message stream.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	// The request context dies when this handler returns; subscriptions
	// live as long as the connection does.
	ctx, cancel := context.WithCancel(context.Background())

	session := &chatSession{
		ctx:         ctx,
		userID:      userID,
		wsManager:   h.wsManager,
		chatUseCase: h.chatUseCase,
	}

	unsubList, err := h.chatUseCase.SubscribeChatList(ctx, userID, func(chats []usecase.ChatPreview) {
		session.push("chat_list", map[string]interface{}{"chats": chats})
	})
	if err != nil {
		cancel()
		conn.Close()
		return errors.Internal("Failed to open chat list subscription", err)
	}

	go client.WritePump()
	go func() {
		client.ReadPump(h.wsManager, session.handle)
		session.leaveChat()
		unsubList()
		cancel()
	}()

	return nil
}

// chatSession is the per-connection state: at most one joined
// conversation with a live message stream.
type chatSession struct {
	ctx         context.Context
	userID      string
	wsManager   *ws.Manager
	chatUseCase *usecase.ChatUseCase

	mu          sync.Mutex
	unsubStream repository.Unsubscribe
}

type wsClientMessage struct {
	Type       string `json:"type"`
	ChatID     string `json:"chat_id,omitempty"`
	Text       string `json:"text,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	ItemTitle  string `json:"item_title,omitempty"`
}

func (s *chatSession) handle(data []byte) {
	var msg wsClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("websocket: malformed client message from %s: %v", s.userID, err)
		return
	}

	switch msg.Type {
	case "join":
		s.joinChat(msg.ChatID)
	case "leave":
		s.leaveChat()
	case "send":
		_, err := s.chatUseCase.SendMessage(s.ctx, usecase.SendMessageInput{
			Text:       msg.Text,
			SenderID:   s.userID,
			ReceiverID: msg.ReceiverID,
			ItemID:     msg.ItemID,
			ItemTitle:  msg.ItemTitle,
		})
		if err != nil {
			log.Printf("websocket: send failed for %s: %v", s.userID, err)
			s.push("error", map[string]interface{}{"message": "Failed to send message"})
		}
	default:
		log.Printf("websocket: unknown message type %q from %s", msg.Type, s.userID)
	}
}

// joinChat opens the message stream for one conversation, detaching any
// previous one, and clears the viewer's read state the way opening a
// chat room does.
func (s *chatSession) joinChat(chatID string) {
	if chatID == "" {
		return
	}

	s.leaveChat()

	if err := s.chatUseCase.MarkChatAsRead(s.ctx, chatID, s.userID); err != nil {
		log.Printf("websocket: mark read failed for chat %s: %v", chatID, err)
	}

	unsub, err := s.chatUseCase.SubscribeChatMessages(s.ctx, chatID, func(messages []*entity.Message) {
		s.push("messages", map[string]interface{}{"chat_id": chatID, "messages": messages})
	})
	if err != nil {
		log.Printf("websocket: failed to open message stream for chat %s: %v", chatID, err)
		return
	}

	s.mu.Lock()
	s.unsubStream = unsub
	s.mu.Unlock()
}

func (s *chatSession) leaveChat() {
	s.mu.Lock()
	unsub := s.unsubStream
	s.unsubStream = nil
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *chatSession) push(msgType string, fields map[string]interface{}) {
	payload := map[string]interface{}{"type": msgType}
	for k, v := range fields {
		payload[k] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("websocket: failed to marshal %s payload: %v", msgType, err)
		return
	}

	s.wsManager.SendToUser(s.userID, data)
}
