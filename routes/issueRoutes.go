package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes. The create handler is rate limited
// when Redis is configured.
func IssueRoutes(r *gin.Engine, ctrl *controllers.IssueController, rateLimited bool) {
	issue := r.Group("/api/issue")
	{
		create := []gin.HandlerFunc{middlewares.AuthMiddleware()}
		if rateLimited {
			create = append(create, middlewares.IssueRateLimiter(5))
		}
		create = append(create, ctrl.CreateIssue)

		issue.POST("/create", create...)
		issue.GET("/", ctrl.GetAllIssues)
		issue.GET("/map", ctrl.MapFeed)
		issue.GET("/analytics", ctrl.GetIssueAnalytics)
		issue.GET("/:id", ctrl.GetIssue)
		issue.PUT("/:id", middlewares.AuthMiddleware(), middlewares.AdminOnly(), ctrl.UpdateIssue)
		issue.POST("/:id/vote", middlewares.AuthMiddleware(), ctrl.HandleVoteOnIssue)
		issue.POST("/:id/comments", middlewares.AuthMiddleware(), ctrl.AddComment)
	}
}
