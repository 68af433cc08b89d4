package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yapyap/backend/internal/auth"
	"yapyap/backend/internal/repositories"
	"yapyap/backend/pkg/password"
)

// UserHandler serves profile reads and self-service profile mutation.
type UserHandler struct {
	users repositories.UserRepository
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateUserInput defines the structure for profile updates. Password is
// optional: when absent or empty the stored hash is left untouched.
type UpdateUserInput struct {
	Name     string `json:"name" binding:"required,max=100" example:"alice"`
	Password string `json:"password" binding:"omitempty,min=6" example:"secret1"`
	Bio      string `json:"bio" binding:"omitempty,max=500" example:"hi there"`
	StatusID *int   `json:"status_id" binding:"required" example:"1"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns the public view of every user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, buildUserResponse(user))
	}
	c.JSON(http.StatusOK, responses)
}

// GetMe godoc
// @Summary      Get current user
// @Description  Returns the profile of the authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	identity := auth.MustIdentity(c)

	user, err := h.users.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), uint(targetID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user profile
// @Description  Updates name, bio and status. The password is re-hashed only when a new one is supplied.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "User ID"
// @Param        input body  UpdateUserInput true  "Updated profile"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not your profile"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	identity := auth.MustIdentity(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), uint(targetID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve user"})
		return
	}

	if identity.UserID != uint(targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	user.Name = input.Name
	user.Bio = input.Bio
	user.StatusID = *input.StatusID
	if input.Password != "" {
		hash, err := password.Hash(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.Update(c.Request.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Name already taken"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "User ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not your account"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	identity := auth.MustIdentity(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), uint(targetID)); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve user"})
		return
	}

	if identity.UserID != uint(targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own account"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), uint(targetID)); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}
