package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the caller as resolved from the token.
func (h *MeHandler) GetMe(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "actor_not_in_context", "Not authenticated.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          actor.ID,
		"role":        actor.Role,
		"business_id": actor.BusinessID,
	})
}
