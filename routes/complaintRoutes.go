package routes

import (
	"rastha-be/controllers"
	"rastha-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint lifecycle routes. Everything is
// behind auth; role checks happen inside the workflow engine.
func ComplaintRoutes(r *gin.Engine, ctl *controllers.ComplaintController) {
	complaint := r.Group("/api/complaints", middlewares.AuthMiddleware())
	{
		complaint.POST("/report", middlewares.ReportRateLimiter(5), ctl.Report)
		complaint.GET("", ctl.List)
		complaint.GET("/mine", ctl.Mine)
		complaint.GET("/recent", ctl.Recent)
		complaint.GET("/stats", ctl.Stats)
		complaint.GET("/:id", ctl.Get)

		complaint.POST("/:id/approve", ctl.Approve)
		complaint.POST("/:id/ignore", ctl.Ignore)
		complaint.POST("/:id/department", ctl.AssignDepartment)
		complaint.POST("/:id/contractor", ctl.AssignContractor)
		complaint.POST("/:id/dispatch", ctl.Dispatch)
		complaint.POST("/:id/complete", ctl.Complete)
		complaint.POST("/:id/repaired", ctl.MarkRepaired)
		complaint.POST("/:id/traffic-alert", ctl.TrafficAlert)
		complaint.DELETE("/:id", ctl.Delete)

		complaint.POST("/:id/concern", ctl.Concern)
		complaint.POST("/:id/flag", ctl.Flag)
		complaint.POST("/:id/comments", ctl.Comment)
	}
}
