package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yapyap/backend/internal/mocks"
	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
)

func setupMessageRouter(handler *MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asIdentity(alice))
	r.GET("/messages/chat/:chatId", handler.GetChatMessages)
	r.GET("/messages/group/:groupId", handler.GetGroupMessages)
	r.POST("/messages", handler.SendMessage)
	r.PUT("/messages/:id", handler.UpdateMessage)
	r.DELETE("/messages/:id", handler.DeleteMessage)
	return r
}

func newMessageMocks() (*mocks.MessageRepositoryMock, *mocks.ChatRepositoryMock, *mocks.GroupRepositoryMock) {
	return new(mocks.MessageRepositoryMock), new(mocks.ChatRepositoryMock), new(mocks.GroupRepositoryMock)
}

func TestValidateTarget(t *testing.T) {
	chatID := uint(1)
	groupID := uint(2)

	require.NoError(t, validateTarget(&chatID, nil))
	require.NoError(t, validateTarget(nil, &groupID))
	require.ErrorIs(t, validateTarget(&chatID, &groupID), errAmbiguousTarget)
	require.ErrorIs(t, validateTarget(nil, nil), errMissingTarget)
}

func TestSendMessageAmbiguousTarget(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	body := bytes.NewBufferString(`{"body":"hi","chat_id":1,"group_id":2}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageMissingTarget(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	body := bytes.NewBufferString(`{"body":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageChatNotFound(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{}, repositories.ErrChatNotFound).Once()

	body := bytes.NewBufferString(`{"body":"hi","chat_id":5}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageToForeignChat(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	// Alice (id 1) is not one of the chat's two participants.
	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{ID: 5, UserOneID: 2, UserTwoID: 3}, nil).Once()

	body := bytes.NewBufferString(`{"body":"hi","chat_id":5}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageToChatAsParticipant(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{ID: 5, UserOneID: 1, UserTwoID: 2}, nil).Once()
	messages.On("Create", mock.Anything, mock.AnythingOfType("*models.ChatMessage")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.ChatMessage).ID = 100
	}).Return(nil).Once()

	body := bytes.NewBufferString(`{"body":"hi","chat_id":5}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, uint(100), resp.ID)
	require.Equal(t, uint(1), resp.SenderID)
	require.Equal(t, "alice", resp.SenderName)
	messages.AssertExpectations(t)
}

func TestSendMessageToGroupAsNonMember(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	groups.On("IsMember", mock.Anything, uint(7), uint(1)).Return(false, nil).Once()

	body := bytes.NewBufferString(`{"body":"hi","group_id":7}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageToGroupAsMember(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	groups.On("IsMember", mock.Anything, uint(7), uint(1)).Return(true, nil).Once()
	messages.On("Create", mock.Anything, mock.AnythingOfType("*models.ChatMessage")).Return(nil).Once()

	body := bytes.NewBufferString(`{"body":"hi","group_id":7}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	messages.AssertExpectations(t)
}

func TestGetChatMessagesNotFoundBeforeForbidden(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{}, repositories.ErrChatNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/chat/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChatMessagesForbiddenForOutsiders(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{ID: 5, UserOneID: 2, UserTwoID: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/chat/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "ListForChat", mock.Anything, mock.Anything)
}

func TestGetChatMessagesAsParticipant(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	chatID := uint(5)
	chats.On("Get", mock.Anything, uint(5)).Return(models.Chat{ID: 5, UserOneID: 2, UserTwoID: 1}, nil).Once()
	messages.On("ListForChat", mock.Anything, uint(5)).Return([]models.ChatMessage{
		{ID: 100, Body: "hi", SenderID: 2, ChatID: &chatID, Sender: models.User{ID: 2, Name: "bob"}},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/chat/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	require.Equal(t, "bob", resp[0].SenderName)
}

func TestGetGroupMessagesHidesExistence(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	// Whether group 7 exists or not, a non-member sees the same 403.
	groups.On("IsMember", mock.Anything, uint(7), uint(1)).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/group/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "ListForGroup", mock.Anything, mock.Anything)
}

func TestUpdateMessageOnlyBySender(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	// Alice is a chat participant but not the sender; membership does not help.
	messages.On("Get", mock.Anything, uint(100)).Return(models.ChatMessage{ID: 100, SenderID: 2, Body: "hi"}, nil).Once()

	body := bytes.NewBufferString(`{"body":"edited"}`)
	req := httptest.NewRequest(http.MethodPut, "/messages/100", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "UpdateBody", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMessageBySender(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	messages.On("Get", mock.Anything, uint(100)).Return(models.ChatMessage{ID: 100, SenderID: 1, Body: "hi"}, nil).Once()
	messages.On("UpdateBody", mock.Anything, uint(100), "edited").Return(nil).Once()

	body := bytes.NewBufferString(`{"body":"edited"}`)
	req := httptest.NewRequest(http.MethodPut, "/messages/100", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messages.AssertExpectations(t)
}

func TestUpdateMessageNotFoundBeforeForbidden(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	messages.On("Get", mock.Anything, uint(404)).Return(models.ChatMessage{}, repositories.ErrMessageNotFound).Once()

	body := bytes.NewBufferString(`{"body":"edited"}`)
	req := httptest.NewRequest(http.MethodPut, "/messages/404", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMessageOnlyBySender(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	messages.On("Get", mock.Anything, uint(100)).Return(models.ChatMessage{ID: 100, SenderID: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/100", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messages.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteMessageBySender(t *testing.T) {
	messages, chats, groups := newMessageMocks()
	router := setupMessageRouter(NewMessageHandler(messages, chats, groups))

	messages.On("Get", mock.Anything, uint(100)).Return(models.ChatMessage{ID: 100, SenderID: 1}, nil).Once()
	messages.On("Delete", mock.Anything, uint(100)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/messages/100", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	messages.AssertExpectations(t)
}
