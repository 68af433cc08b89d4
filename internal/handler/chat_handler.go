package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yapyap/backend/internal/auth"
	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
)

// ChatHandler serves direct chat channel endpoints.
type ChatHandler struct {
	chats   repositories.ChatRepository
	friends repositories.FriendRepository
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats repositories.ChatRepository, friends repositories.FriendRepository) *ChatHandler {
	return &ChatHandler{chats: chats, friends: friends}
}

// StartChatInput names the friend to open a chat with.
type StartChatInput struct {
	UserID uint `json:"user_id" binding:"required" example:"2"`
}

// ChatResponse is a chat seen from the caller's side.
type ChatResponse struct {
	ID                uint      `json:"id" example:"1"`
	CounterpartUserID uint      `json:"counterpart_user_id" example:"2"`
	CreatedAt         time.Time `json:"created_at"`
}

func buildChatResponse(chat models.Chat, viewerID uint) ChatResponse {
	counterpartID := chat.UserOneID
	if counterpartID == viewerID {
		counterpartID = chat.UserTwoID
	}
	return ChatResponse{ID: chat.ID, CounterpartUserID: counterpartID, CreatedAt: chat.CreatedAt}
}

// ListChats godoc
// @Summary      List my chats
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ChatResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /chats [get]
func (h *ChatHandler) ListChats(c *gin.Context) {
	identity := auth.MustIdentity(c)

	chats, err := h.chats.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve chats"})
		return
	}

	responses := make([]ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, buildChatResponse(chat, identity.UserID))
	}
	c.JSON(http.StatusOK, responses)
}

// StartChat godoc
// @Summary      Start a chat with a friend
// @Description  Opens (or returns the existing) direct chat with a friend. A friendship must exist first.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StartChatInput true "Chat partner"
// @Success      200  {object}  ChatResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Router       /chats [post]
func (h *ChatHandler) StartChat(c *gin.Context) {
	identity := auth.MustIdentity(c)

	var input StartChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.UserID == identity.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a chat with yourself"})
		return
	}

	if _, err := h.friends.FindBetween(c.Request.Context(), identity.UserID, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrFriendshipNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only chat with friends"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to resolve friendship"})
		return
	}

	chat, err := h.chats.CreateOrGet(c.Request.Context(), identity.UserID, input.UserID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to start chat"})
		return
	}

	c.JSON(http.StatusOK, buildChatResponse(chat, identity.UserID))
}
