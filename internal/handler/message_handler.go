package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"yapyap/backend/internal/auth"
	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
)

// MessageHandler serves message reads and writes for chats and groups.
type MessageHandler struct {
	messages repositories.MessageRepository
	chats    repositories.ChatRepository
	groups   repositories.GroupRepository
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messages repositories.MessageRepository, chats repositories.ChatRepository, groups repositories.GroupRepository) *MessageHandler {
	return &MessageHandler{messages: messages, chats: chats, groups: groups}
}

// MessageInput defines the structure for sending a message. Exactly one of
// chat_id and group_id must be set.
type MessageInput struct {
	Body    string `json:"body" binding:"required" example:"hi"`
	ChatID  *uint  `json:"chat_id" example:"1"`
	GroupID *uint  `json:"group_id"`
}

// UpdateMessageInput defines the structure for editing a message body.
type UpdateMessageInput struct {
	Body string `json:"body" binding:"required" example:"hi (edited)"`
}

// MessageResponse is the outbound view of a message.
type MessageResponse struct {
	ID         uint      `json:"id" example:"1"`
	Body       string    `json:"body" example:"hi"`
	SenderID   uint      `json:"sender_id" example:"1"`
	SenderName string    `json:"sender_name" example:"alice"`
	ChatID     *uint     `json:"chat_id,omitempty" example:"1"`
	GroupID    *uint     `json:"group_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func buildMessageResponse(message models.ChatMessage, senderName string) MessageResponse {
	return MessageResponse{
		ID:         message.ID,
		Body:       message.Body,
		SenderID:   message.SenderID,
		SenderName: senderName,
		ChatID:     message.ChatID,
		GroupID:    message.GroupID,
		CreatedAt:  message.CreatedAt,
	}
}

var (
	errAmbiguousTarget = errors.New("a message can target either a chat or a group, not both")
	errMissingTarget   = errors.New("either chat_id or group_id must be provided")
)

// validateTarget enforces the envelope invariant: exactly one target. It runs
// before any authorization or persistence step.
func validateTarget(chatID, groupID *uint) error {
	if chatID != nil && groupID != nil {
		return errAmbiguousTarget
	}
	if chatID == nil && groupID == nil {
		return errMissingTarget
	}
	return nil
}

// GetChatMessages godoc
// @Summary      Read messages in a chat
// @Description  Lists a chat's messages, oldest first. Only the two participants may read them.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        chatId  path  int  true  "Chat ID"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a participant"
// @Failure      404  {object}  ErrorResponse "Chat not found"
// @Router       /messages/chat/{chatId} [get]
func (h *MessageHandler) GetChatMessages(c *gin.Context) {
	identity := auth.MustIdentity(c)

	chatID, err := strconv.ParseUint(c.Param("chatId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	// Existence before authorization: a missing chat is 404 for everyone.
	chat, err := h.chats.Get(c.Request.Context(), uint(chatID))
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve chat"})
		return
	}
	if chat.UserOneID != identity.UserID && chat.UserTwoID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this chat"})
		return
	}

	messages, err := h.messages.ListForChat(c.Request.Context(), chat.ID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve messages"})
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, buildMessageResponse(m, m.Sender.Name))
	}
	c.JSON(http.StatusOK, responses)
}

// GetGroupMessages godoc
// @Summary      Read messages in a group
// @Description  Lists a group's messages, oldest first. Non-members get 403 whether or not the group exists.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        groupId  path  int  true  "Group ID"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Router       /messages/group/{groupId} [get]
func (h *MessageHandler) GetGroupMessages(c *gin.Context) {
	identity := auth.MustIdentity(c)

	groupID, err := strconv.ParseUint(c.Param("groupId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	member, err := h.groups.IsMember(c.Request.Context(), uint(groupID), identity.UserID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to check membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	messages, err := h.messages.ListForGroup(c.Request.Context(), uint(groupID))
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve messages"})
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, buildMessageResponse(m, m.Sender.Name))
	}
	c.JSON(http.StatusOK, responses)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Persists a message into a chat or a group. The envelope and the sender's membership are checked before anything is written.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Ambiguous or missing target"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a participant or member"
// @Failure      404  {object}  ErrorResponse "Chat not found"
// @Router       /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	identity := auth.MustIdentity(c)

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateTarget(input.ChatID, input.GroupID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.ChatID != nil {
		chat, err := h.chats.Get(c.Request.Context(), *input.ChatID)
		if err != nil {
			if errors.Is(err, repositories.ErrChatNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
				return
			}
			c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve chat"})
			return
		}
		if chat.UserOneID != identity.UserID && chat.UserTwoID != identity.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this chat"})
			return
		}
	}

	if input.GroupID != nil {
		member, err := h.groups.IsMember(c.Request.Context(), *input.GroupID, identity.UserID)
		if err != nil {
			c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to check membership"})
			return
		}
		if !member {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
			return
		}
	}

	message := models.ChatMessage{
		Body:     input.Body,
		SenderID: identity.UserID,
		ChatID:   input.ChatID,
		GroupID:  input.GroupID,
	}
	if err := h.messages.Create(c.Request.Context(), &message); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, buildMessageResponse(message, identity.Name))
}

// UpdateMessage godoc
// @Summary      Edit a message
// @Description  Replaces the message body. Only the original sender may edit it.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Message ID"
// @Param        input body  UpdateMessageInput  true  "New body"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse "Message not found"
// @Router       /messages/{id} [put]
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	identity := auth.MustIdentity(c)

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var input UpdateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Get(c.Request.Context(), uint(messageID))
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve message"})
		return
	}

	// Only the sender may edit, not the chat counterpart or group co-members.
	if message.SenderID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own messages"})
		return
	}

	if err := h.messages.UpdateBody(c.Request.Context(), message.ID, input.Body); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message updated successfully"})
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Removes the message. Only the original sender may delete it.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Message ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the sender"
// @Failure      404  {object}  ErrorResponse "Message not found"
// @Router       /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	identity := auth.MustIdentity(c)

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	message, err := h.messages.Get(c.Request.Context(), uint(messageID))
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve message"})
		return
	}

	if message.SenderID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own messages"})
		return
	}

	if err := h.messages.Delete(c.Request.Context(), message.ID); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to delete message"})
		return
	}

	c.Status(http.StatusNoContent)
}
