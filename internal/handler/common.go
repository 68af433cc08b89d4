package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"yapyap/backend/internal/models"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// UserResponse is the public view of a user. The password hash is never part
// of any outbound shape.
type UserResponse struct {
	ID        uint      `json:"id" example:"1"`
	Name      string    `json:"name" example:"alice"`
	Bio       string    `json:"bio" example:"hi there"`
	StatusID  int       `json:"status_id" example:"1"`
	CreatedAt time.Time `json:"created_at"`
}

func buildUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Bio:       user.Bio,
		StatusID:  user.StatusID,
		CreatedAt: user.CreatedAt,
	}
}

// storeErrorStatus maps a store failure to an HTTP status. Cancellation and
// timeouts inherited from the request context surface as 503 so the caller
// can decide whether to retry.
func storeErrorStatus(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
