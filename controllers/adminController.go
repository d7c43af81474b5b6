package controllers

import (
	"net/http"

	"rastha-be/models"
	"rastha-be/workflow"

	"github.com/gin-gonic/gin"
)

// AdminController serves the registry and oversight surface: contractors,
// traffic personnel, audit log and announcements.
type AdminController struct {
	Engine *workflow.Engine
}

// Contractors lists the vendor registry.
func (ctl *AdminController) Contractors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contractors": ctl.Engine.Contractors()})
}

// MyTasks lists the work orders of the authenticated contractor.
func (ctl *AdminController) MyTasks(c *gin.Context) {
	actor := actorFrom(c)
	if actor.ContractorID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no contractor record linked to this account"})
		return
	}
	tasks := ctl.Engine.ContractorTasks(actor.ContractorID)
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// Personnel lists the traffic responder roster.
func (ctl *AdminController) Personnel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personnel": ctl.Engine.Personnel()})
}

// AuditLog lists ledger entries, optionally filtered by ?q= free text.
func (ctl *AdminController) AuditLog(c *gin.Context) {
	logs, err := ctl.Engine.AuditLog(actorFrom(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}

// CreateAnnouncement broadcasts a new targeted message.
func (ctl *AdminController) CreateAnnouncement(c *gin.Context) {
	var input struct {
		Message string `json:"message" binding:"required"`
		Type    string `json:"type" binding:"required"`
		Target  string `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := ctl.Engine.CreateAnnouncement(c.Request.Context(), actorFrom(c),
		input.Message, models.AnnouncementType(input.Type), models.Audience(input.Target))
	respondMutation(c, err, gin.H{"announcement": a})
}

// DeactivateAnnouncement soft-deletes a broadcast.
func (ctl *AdminController) DeactivateAnnouncement(c *gin.Context) {
	err := ctl.Engine.DeactivateAnnouncement(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"message": "Announcement deactivated"})
}

// Announcements lists the broadcasts visible to the caller.
func (ctl *AdminController) Announcements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"announcements": ctl.Engine.Announcements(actorFrom(c))})
}
