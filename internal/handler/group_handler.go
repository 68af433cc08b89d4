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

// GroupHandler serves the minimal group lifecycle: create and join.
type GroupHandler struct {
	groups repositories.GroupRepository
}

// NewGroupHandler builds a GroupHandler.
func NewGroupHandler(groups repositories.GroupRepository) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// CreateGroupInput defines the structure for group creation.
type CreateGroupInput struct {
	Name string `json:"name" binding:"required,max=100" example:"weekend plans"`
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"weekend plans"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Creates a group; the creator becomes its first member.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateGroupInput true "Group Info"
// @Success      201  {object}  GroupResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	identity := auth.MustIdentity(c)

	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{Name: input.Name}
	if err := h.groups.Create(c.Request.Context(), &group); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to create group"})
		return
	}
	if err := h.groups.AddMember(c.Request.Context(), group.ID, identity.UserID); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusCreated, GroupResponse{ID: group.ID, Name: group.Name, CreatedAt: group.CreatedAt})
}

// JoinGroup godoc
// @Summary      Join a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Group ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Router       /groups/{id}/members [post]
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	identity := auth.MustIdentity(c)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if _, err := h.groups.Get(c.Request.Context(), uint(groupID)); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to retrieve group"})
		return
	}

	member, err := h.groups.IsMember(c.Request.Context(), uint(groupID), identity.UserID)
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to check membership"})
		return
	}
	if member {
		c.JSON(http.StatusOK, gin.H{"message": "Already a member"})
		return
	}

	if err := h.groups.AddMember(c.Request.Context(), uint(groupID), identity.UserID); err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group"})
}
