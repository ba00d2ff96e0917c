package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rentio/internal/usecase"
	"rentio/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type resolveChatRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	ItemID     string `json:"item_id" validate:"required"`
	ItemTitle  string `json:"item_title"`
}

// Message text is bounded here, at the input boundary, not in the core.
type sendMessageRequest struct {
	Text       string `json:"text" validate:"required,max=1000"`
	ReceiverID string `json:"receiver_id" validate:"required"`
	ItemID     string `json:"item_id" validate:"required"`
	ItemTitle  string `json:"item_title"`
}

// ResolveChat finds or creates the conversation for (item, caller,
// receiver) and returns its id.
func (h *ChatHandler) ResolveChat(c echo.Context) error {
	var req resolveChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	chatID, err := h.chatUseCase.GetOrCreateChat(c.Request().Context(), userID, req.ReceiverID, req.ItemID, req.ItemTitle)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"chat_id": chatID})
}

// SendMessage dispatches a message from the authenticated user.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), usecase.SendMessageInput{
		Text:       req.Text,
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		ItemID:     req.ItemID,
		ItemTitle:  req.ItemTitle,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// GetChatList returns the caller's conversation previews, most recent
// first.
func (h *ChatHandler) GetChatList(c echo.Context) error {
	userID := c.Get("uid").(string)

	chats, err := h.chatUseCase.GetChatList(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

// GetChatMessages returns all messages of one conversation in
// chronological order.
func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID := c.Param("id")
	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.GetChatMessages(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// MarkChatAsRead clears the caller's unread state for a conversation.
func (h *ChatHandler) MarkChatAsRead(c echo.Context) error {
	chatID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.MarkChatAsRead(c.Request().Context(), chatID, userID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}
