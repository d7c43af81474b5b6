package routes

import (
	"rastha-be/controllers"
	"rastha-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the registry, audit and announcement routes.
func AdminRoutes(r *gin.Engine, ctl *controllers.AdminController) {
	admin := r.Group("/api", middlewares.AuthMiddleware())
	{
		admin.GET("/contractors", ctl.Contractors)
		admin.GET("/contractors/tasks", ctl.MyTasks)
		admin.GET("/personnel", ctl.Personnel)
		admin.GET("/audit-log", ctl.AuditLog)

		admin.GET("/announcements", ctl.Announcements)
		admin.POST("/announcements", ctl.CreateAnnouncement)
		admin.DELETE("/announcements/:id", ctl.DeactivateAnnouncement)
	}
}
