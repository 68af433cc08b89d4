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
	"gorm.io/gorm"

	"yapyap/backend/internal/mocks"
	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
	"yapyap/backend/pkg/jwt"
	"yapyap/backend/pkg/password"
)

func testIssuer() *jwt.Issuer {
	return jwt.NewIssuer(jwt.Config{
		Secret:              "test-secret",
		Issuer:              "yapyap",
		Audience:            "yapyap-clients",
		ExpirationInMinutes: 15,
	})
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	return r
}

func TestRegisterSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testIssuer()))

	users.On("GetByName", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		user.ID = 1
	}).Return(nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","password":"secret1","bio":"hi","status_id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, uint(1), resp.User.ID)
	require.Equal(t, "alice", resp.User.Name)
	require.NotContains(t, rec.Body.String(), "password")
	users.AssertExpectations(t)
}

func TestRegisterDuplicateName(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testIssuer()))

	users.On("GetByName", mock.Anything, "alice").Return(models.User{ID: 1, Name: "alice"}, nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","password":"secret1","status_id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateNameRace(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testIssuer()))

	// The name check passes, but a concurrent registration wins the insert
	// and the unique index rejects ours.
	users.On("GetByName", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey).Once()

	body := bytes.NewBufferString(`{"name":"alice","password":"secret1","status_id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	users.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testIssuer()))

	for _, body := range []string{
		`{"name":"alice","password":"short","status_id":1}`, // password < 6 chars
		`{"name":"alice","password":"secret1"}`,             // status_id missing
		`{"password":"secret1","status_id":1}`,              // name missing
	} {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuccessAfterRegister(t *testing.T) {
	issuer := testIssuer()
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, issuer))

	var created models.User
	users.On("GetByName", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		user.ID = 9
		created = *user
	}).Return(nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","password":"secret1","status_id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Logging in right after registering yields a token whose subject is the
	// new user id.
	users.On("GetByName", mock.Anything, "alice").Return(created, nil).Once()

	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"name":"alice","password":"secret1"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	claims, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, uint(9), userID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	hash, err := password.Hash("rightpass")
	require.NoError(t, err)

	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testIssuer()))

	users.On("GetByName", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("GetByName", mock.Anything, "alice").Return(models.User{ID: 1, Name: "alice", PasswordHash: hash}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"name":"ghost","password":"whatever"}`))
	recUnknown := httptest.NewRecorder()
	router.ServeHTTP(recUnknown, req)

	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"name":"alice","password":"wrongpass"}`))
	recWrong := httptest.NewRecorder()
	router.ServeHTTP(recWrong, req)

	// Unknown user and wrong password are externally identical.
	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	require.Equal(t, http.StatusUnauthorized, recWrong.Code)
	require.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}
