package controllers

import (
	"io"
	"net/http"
	"strconv"

	"rastha-be/models"
	"rastha-be/workflow"

	"github.com/gin-gonic/gin"
)

// ComplaintController exposes the complaint lifecycle over HTTP. All
// authorization decisions live in the workflow engine; handlers only
// translate between transport and engine types.
type ComplaintController struct {
	Engine *workflow.Engine
}

// Report handles a new damage report: multipart image upload plus
// optional coordinates, address and description.
func (ctl *ComplaintController) Report(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image upload"})
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image upload"})
		return
	}

	in := workflow.ReportInput{
		Image:       image,
		Filename:    fileHeader.Filename,
		Address:     c.PostForm("address"),
		Description: c.PostForm("description"),
	}
	if lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.PostForm("longitude"), 64); err == nil {
			in.Latitude = &lat
			in.Longitude = &lng
		}
	}

	complaint, err := ctl.Engine.Report(c.Request.Context(), actorFrom(c), in)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// List returns complaints, optionally filtered by status and department.
func (ctl *ComplaintController) List(c *gin.Context) {
	filter := workflow.ComplaintFilter{
		Status:     models.ComplaintStatus(c.Query("status")),
		Department: models.DepartmentType(c.Query("department")),
	}
	complaints := ctl.Engine.Complaints(filter)
	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "total": len(complaints)})
}

// Mine returns the caller's own reports.
func (ctl *ComplaintController) Mine(c *gin.Context) {
	actor := actorFrom(c)
	complaints := ctl.Engine.Complaints(workflow.ComplaintFilter{UserID: actor.UserID})
	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "total": len(complaints)})
}

// Recent returns the latest geotagged complaints for the map widgets.
func (ctl *ComplaintController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "19"))
	c.JSON(http.StatusOK, ctl.Engine.RecentComplaints(limit))
}

// Get returns one complaint plus the caller's concern state on it.
func (ctl *ComplaintController) Get(c *gin.Context) {
	actor := actorFrom(c)
	complaint, raised, err := ctl.Engine.Complaint(c.Param("id"), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": complaint, "userHasConcern": raised})
}

// Stats returns the dashboard counters.
func (ctl *ComplaintController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.Engine.Stats())
}

// Approve moves a waiting-list ticket to Verified.
func (ctl *ComplaintController) Approve(c *gin.Context) {
	complaint, err := ctl.Engine.Approve(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// Ignore rejects a ticket.
func (ctl *ComplaintController) Ignore(c *gin.Context) {
	complaint, err := ctl.Engine.Ignore(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// AssignDepartment routes a verified ticket to a department.
func (ctl *ComplaintController) AssignDepartment(c *gin.Context) {
	var input struct {
		Department    string `json:"department" binding:"required"`
		NotifyTraffic bool   `json:"notifyTraffic"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := ctl.Engine.AssignDepartment(c.Request.Context(), actorFrom(c),
		c.Param("id"), models.DepartmentType(input.Department), input.NotifyTraffic)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// AssignContractor dispatches a repair vendor.
func (ctl *ComplaintController) AssignContractor(c *gin.Context) {
	var input struct {
		ContractorID string `json:"contractorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := ctl.Engine.AssignContractor(c.Request.Context(), actorFrom(c),
		c.Param("id"), input.ContractorID)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// Dispatch annotates a ticket with a traffic responder snapshot.
func (ctl *ComplaintController) Dispatch(c *gin.Context) {
	var input struct {
		PersonnelID string `json:"personnelId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := ctl.Engine.DispatchResponder(c.Request.Context(), actorFrom(c),
		c.Param("id"), input.PersonnelID)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// Complete closes a work order with proof of repair (contractor flow).
func (ctl *ComplaintController) Complete(c *gin.Context) {
	fileHeader, err := c.FormFile("evidence")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "evidence image is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read evidence upload"})
		return
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read evidence upload"})
		return
	}

	evidenceURL, err := ctl.Engine.StoreEvidenceImage(fileHeader.Filename, image)
	if err != nil {
		respondError(c, err)
		return
	}
	complaint, err := ctl.Engine.CompleteWork(c.Request.Context(), actorFrom(c),
		c.Param("id"), evidenceURL)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// MarkRepaired closes a ticket without evidence (official override).
func (ctl *ComplaintController) MarkRepaired(c *gin.Context) {
	complaint, err := ctl.Engine.MarkRepaired(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// TrafficAlert flips the hazard flag.
func (ctl *ComplaintController) TrafficAlert(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	complaint, err := ctl.Engine.SetTrafficAlert(c.Request.Context(), actorFrom(c),
		c.Param("id"), *input.Active)
	respondMutation(c, err, gin.H{"complaint": complaint})
}

// Delete removes an unlocked ticket.
func (ctl *ComplaintController) Delete(c *gin.Context) {
	err := ctl.Engine.DeleteComplaint(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"message": "Complaint deleted successfully"})
}

// Concern toggles the caller's concern vote.
func (ctl *ComplaintController) Concern(c *gin.Context) {
	count, raised, err := ctl.Engine.ToggleConcern(c.Request.Context(), actorFrom(c), c.Param("id"))
	respondMutation(c, err, gin.H{"concernCount": count, "userHasConcern": raised})
}

// Flag records a negative community report.
func (ctl *ComplaintController) Flag(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats, err := ctl.Engine.Flag(c.Request.Context(), actorFrom(c),
		c.Param("id"), models.FlagReason(input.Reason))
	respondMutation(c, err, gin.H{"reportStats": stats})
}

// Comment appends to a ticket's discussion thread.
func (ctl *ComplaintController) Comment(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := ctl.Engine.AddComment(c.Request.Context(), actorFrom(c),
		c.Param("id"), input.Text)
	respondMutation(c, err, gin.H{"comment": comment})
}
