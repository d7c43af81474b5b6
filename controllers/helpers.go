package controllers

import (
	"errors"
	"log"
	"net/http"

	"rastha-be/models"
	"rastha-be/store"
	"rastha-be/workflow"

	"github.com/gin-gonic/gin"
)

// actorFrom rebuilds the workflow actor from the claims placed on the
// context by the auth middleware.
func actorFrom(c *gin.Context) workflow.Actor {
	userID, _ := c.Get("user_id")
	name, _ := c.Get("name")
	role, _ := c.Get("role")
	contractorID, _ := c.Get("contractor_id")

	actor := workflow.Actor{}
	if s, ok := userID.(string); ok {
		actor.UserID = s
	}
	if s, ok := name.(string); ok {
		actor.Name = s
	}
	if s, ok := role.(string); ok {
		actor.Role = models.UserRole(s)
	}
	if s, ok := contractorID.(string); ok {
		actor.ContractorID = s
	}
	return actor
}

// respondError maps the workflow error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrLocked):
		status = http.StatusLocked
	case errors.Is(err, workflow.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, workflow.ErrMissingEvidence), errors.Is(err, workflow.ErrValidation):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("workflow error: %v", err)
		c.JSON(status, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondMutation finishes a state-changing request. A persistence
// failure keeps the applied mutation, so the payload still goes out,
// flagged with a durability warning.
func respondMutation(c *gin.Context, err error, payload gin.H) {
	if err != nil {
		if !errors.Is(err, store.ErrPersistence) {
			respondError(c, err)
			return
		}
		log.Printf("durability at risk: %v", err)
		payload["warning"] = "changes applied but not yet persisted; durability is at risk"
	}
	c.JSON(http.StatusOK, payload)
}
