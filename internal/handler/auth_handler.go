package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
	"yapyap/backend/pkg/jwt"
	"yapyap/backend/pkg/password"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users  repositories.UserRepository
	issuer *jwt.Issuer
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, issuer *jwt.Issuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100" example:"alice"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
	Bio      string `json:"bio" binding:"omitempty,max=500" example:"hi there"`
	StatusID *int   `json:"status_id" binding:"required" example:"1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Name     string `json:"name" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// AuthResponse carries a fresh session token and the public user view.
type AuthResponse struct {
	Token      string       `json:"token"`
	Expiration time.Time    `json:"expiration"`
	User       UserResponse `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new account and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.users.GetByName(c.Request.Context(), input.Name)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Name already taken"})
		return
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to check name"})
		return
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		PasswordHash: hash,
		Bio:          input.Bio,
		StatusID:     *input.StatusID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		// Two registrations can race past the name check; the unique index
		// catches the loser here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Name already taken"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to create user"})
		return
	}

	token, expiresAt, err := h.issuer.Issue(user.ID, user.Name, user.StatusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:      token,
		Expiration: expiresAt,
		User:       buildUserResponse(user),
	})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates by name and password and returns a new session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Invalid name or password"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByName(c.Request.Context(), input.Name)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to look up user"})
		return
	}
	// Unknown name and wrong password are indistinguishable on purpose.
	if err != nil || !password.Verify(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or password"})
		return
	}

	token, expiresAt, err := h.issuer.Issue(user.ID, user.Name, user.StatusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:      token,
		Expiration: expiresAt,
		User:       buildUserResponse(user),
	})
}
