package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yapyap/backend/internal/auth"
	"yapyap/backend/internal/models"
	"yapyap/backend/internal/repositories"
)

// FriendHandler serves the friendship endpoints.
type FriendHandler struct {
	friends repositories.FriendRepository
	users   repositories.UserRepository
}

// NewFriendHandler builds a FriendHandler.
func NewFriendHandler(friends repositories.FriendRepository, users repositories.UserRepository) *FriendHandler {
	return &FriendHandler{friends: friends, users: users}
}

// FriendResponse projects a friendship onto the counterpart user, whichever
// side of the pair that is.
type FriendResponse struct {
	ID                  uint   `json:"id" example:"1"`
	CounterpartUserID   uint   `json:"counterpart_user_id" example:"2"`
	CounterpartName     string `json:"counterpart_name" example:"bob"`
	CounterpartBio      string `json:"counterpart_bio" example:"hello"`
	CounterpartStatusID int    `json:"counterpart_status_id" example:"1"`
}

func buildFriendResponse(friendship models.Friendship, viewerID uint) FriendResponse {
	counterpart := friendship.UserTwo
	if friendship.UserTwoID == viewerID {
		counterpart = friendship.UserOne
	}
	return FriendResponse{
		ID:                  friendship.ID,
		CounterpartUserID:   counterpart.ID,
		CounterpartName:     counterpart.Name,
		CounterpartBio:      counterpart.Bio,
		CounterpartStatusID: counterpart.StatusID,
	}
}

// ListFriends godoc
// @Summary      List my friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FriendResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	identity := auth.MustIdentity(c)

	friendships, err := h.friends.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve friends"})
		return
	}

	responses := make([]FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, buildFriendResponse(f, identity.UserID))
	}
	c.JSON(http.StatusOK, responses)
}

// CheckFriendship godoc
// @Summary      Check friendship with a user
// @Description  Resolves the friendship between the caller and the given user, in either direction.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Other User ID"
// @Success      200  {object}  FriendResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not friends"
// @Router       /friends/{userId} [get]
func (h *FriendHandler) CheckFriendship(c *gin.Context) {
	identity := auth.MustIdentity(c)

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	friendship, err := h.friends.FindBetween(c.Request.Context(), identity.UserID, uint(otherID))
	if err != nil {
		if errors.Is(err, repositories.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not friends"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to resolve friendship"})
		return
	}

	c.JSON(http.StatusOK, buildFriendResponse(friendship, identity.UserID))
}

// AddFriend godoc
// @Summary      Add a friend
// @Description  Creates a friendship edge between the caller and the given user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Other User ID"
// @Success      201  {object}  FriendResponse
// @Failure      400  {object}  ErrorResponse "Cannot befriend yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /friends/{userId} [post]
func (h *FriendHandler) AddFriend(c *gin.Context) {
	identity := auth.MustIdentity(c)

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if uint(otherID) == identity.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot befriend yourself"})
		return
	}

	other, err := h.users.GetByID(c.Request.Context(), uint(otherID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve user"})
		return
	}

	friendship := models.Friendship{UserOneID: identity.UserID, UserTwoID: other.ID}
	if err := h.friends.Create(c.Request.Context(), &friendship); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to create friendship"})
		return
	}
	friendship.UserTwo = other

	c.JSON(http.StatusCreated, buildFriendResponse(friendship, identity.UserID))
}

// RemoveFriend godoc
// @Summary      Remove a friendship
// @Description  Deletes the friendship. Either participant may do this; nobody else.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Friendship ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not part of this friendship"
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Router       /friends/{id} [delete]
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	identity := auth.MustIdentity(c)

	friendshipID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friendship ID"})
		return
	}

	friendship, err := h.friends.Get(c.Request.Context(), uint(friendshipID))
	if err != nil {
		if errors.Is(err, repositories.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve friendship"})
		return
	}

	if friendship.UserOneID != identity.UserID && friendship.UserTwoID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this friendship"})
		return
	}

	if err := h.friends.Delete(c.Request.Context(), friendship.ID); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to remove friendship"})
		return
	}

	c.Status(http.StatusNoContent)
}
