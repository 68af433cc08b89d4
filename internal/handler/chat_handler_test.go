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

func setupChatRouter(handler *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asIdentity(alice))
	r.GET("/chats", handler.ListChats)
	r.POST("/chats", handler.StartChat)
	return r
}

func TestListChats(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	router := setupChatRouter(NewChatHandler(chats, new(mocks.FriendRepositoryMock)))

	chats.On("ListForUser", mock.Anything, uint(1)).Return([]models.Chat{
		{ID: 5, UserOneID: 1, UserTwoID: 2},
		{ID: 6, UserOneID: 3, UserTwoID: 1},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	require.Equal(t, uint(2), resp[0].CounterpartUserID)
	require.Equal(t, uint(3), resp[1].CounterpartUserID)
}

func TestStartChatRequiresFriendship(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	friends := new(mocks.FriendRepositoryMock)
	router := setupChatRouter(NewChatHandler(chats, friends))

	friends.On("FindBetween", mock.Anything, uint(1), uint(5)).Return(models.Friendship{}, repositories.ErrFriendshipNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"user_id":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	chats.AssertNotCalled(t, "CreateOrGet", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartChatWithFriend(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	friends := new(mocks.FriendRepositoryMock)
	router := setupChatRouter(NewChatHandler(chats, friends))

	friends.On("FindBetween", mock.Anything, uint(1), uint(2)).Return(models.Friendship{ID: 10, UserOneID: 1, UserTwoID: 2}, nil).Once()
	chats.On("CreateOrGet", mock.Anything, uint(1), uint(2)).Return(models.Chat{ID: 5, UserOneID: 1, UserTwoID: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"user_id":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, uint(5), resp.ID)
	require.Equal(t, uint(2), resp.CounterpartUserID)
	chats.AssertExpectations(t)
}

func TestStartChatWithSelf(t *testing.T) {
	chats := new(mocks.ChatRepositoryMock)
	router := setupChatRouter(NewChatHandler(chats, new(mocks.FriendRepositoryMock)))

	req := httptest.NewRequest(http.MethodPost, "/chats", bytes.NewBufferString(`{"user_id":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	chats.AssertNotCalled(t, "CreateOrGet", mock.Anything, mock.Anything, mock.Anything)
}
