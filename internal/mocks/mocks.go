package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yapyap/backend/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id uint) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByName(ctx context.Context, name string) (models.User, error) {
	args := m.Called(ctx, name)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) Get(ctx context.Context, chatID uint) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) ListForUser(ctx context.Context, userID uint) ([]models.Chat, error) {
	args := m.Called(ctx, userID)
	var chats []models.Chat
	if val := args.Get(0); val != nil {
		chats = val.([]models.Chat)
	}
	return chats, args.Error(1)
}

func (m *ChatRepositoryMock) CreateOrGet(ctx context.Context, userID, otherID uint) (models.Chat, error) {
	args := m.Called(ctx, userID, otherID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) Create(ctx context.Context, group *models.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *GroupRepositoryMock) Get(ctx context.Context, groupID uint) (models.Group, error) {
	args := m.Called(ctx, groupID)
	var group models.Group
	if val := args.Get(0); val != nil {
		group = val.(models.Group)
	}
	return group, args.Error(1)
}

func (m *GroupRepositoryMock) AddMember(ctx context.Context, groupID, userID uint) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *GroupRepositoryMock) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

type FriendRepositoryMock struct {
	mock.Mock
}

func (m *FriendRepositoryMock) Create(ctx context.Context, friendship *models.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *FriendRepositoryMock) Get(ctx context.Context, id uint) (models.Friendship, error) {
	args := m.Called(ctx, id)
	var friendship models.Friendship
	if val := args.Get(0); val != nil {
		friendship = val.(models.Friendship)
	}
	return friendship, args.Error(1)
}

func (m *FriendRepositoryMock) FindBetween(ctx context.Context, userA, userB uint) (models.Friendship, error) {
	args := m.Called(ctx, userA, userB)
	var friendship models.Friendship
	if val := args.Get(0); val != nil {
		friendship = val.(models.Friendship)
	}
	return friendship, args.Error(1)
}

func (m *FriendRepositoryMock) ListForUser(ctx context.Context, userID uint) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	var friendships []models.Friendship
	if val := args.Get(0); val != nil {
		friendships = val.([]models.Friendship)
	}
	return friendships, args.Error(1)
}

func (m *FriendRepositoryMock) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, message *models.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, id uint) (models.ChatMessage, error) {
	args := m.Called(ctx, id)
	var message models.ChatMessage
	if val := args.Get(0); val != nil {
		message = val.(models.ChatMessage)
	}
	return message, args.Error(1)
}

func (m *MessageRepositoryMock) ListForChat(ctx context.Context, chatID uint) ([]models.ChatMessage, error) {
	args := m.Called(ctx, chatID)
	var messages []models.ChatMessage
	if val := args.Get(0); val != nil {
		messages = val.([]models.ChatMessage)
	}
	return messages, args.Error(1)
}

func (m *MessageRepositoryMock) ListForGroup(ctx context.Context, groupID uint) ([]models.ChatMessage, error) {
	args := m.Called(ctx, groupID)
	var messages []models.ChatMessage
	if val := args.Get(0); val != nil {
		messages = val.([]models.ChatMessage)
	}
	return messages, args.Error(1)
}

func (m *MessageRepositoryMock) UpdateBody(ctx context.Context, id uint, body string) error {
	args := m.Called(ctx, id, body)
	return args.Error(0)
}

func (m *MessageRepositoryMock) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
