package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"

	"github.com/gin-gonic/gin"
)

// CommunityRoutes sets up the community, discussion, and reply routes
func CommunityRoutes(r *gin.Engine, ctrl *controllers.CommunityController) {
	auth := middlewares.AuthMiddleware()
	admin := middlewares.AdminOnly()

	community := r.Group("/api/community")
	{
		community.POST("/create", auth, ctrl.CreateCommunity)
		community.GET("/", ctrl.GetAllCommunities)
		community.GET("/trending", ctrl.GetTrendingCommunities)
		community.GET("/search", ctrl.SearchCommunities)
		community.GET("/memberships", auth, ctrl.GetUserMemberships)
		community.GET("/:id", ctrl.GetCommunity)
		community.PUT("/:id", auth, admin, ctrl.UpdateCommunity)
		community.DELETE("/:id", auth, admin, ctrl.DeleteCommunity)

		community.POST("/:id/join", auth, ctrl.JoinCommunity)
		community.POST("/:id/leave", auth, ctrl.LeaveCommunity)
		community.POST("/:id/requests", auth, ctrl.RequestToJoin)
		community.POST("/:id/requests/approve", auth, admin, ctrl.ApproveJoinRequest)
		community.POST("/:id/requests/reject", auth, admin, ctrl.RejectJoinRequest)

		community.GET("/:id/discussions", ctrl.GetDiscussions)
		community.POST("/:id/discussions", auth, ctrl.CreateDiscussion)
	}

	discussion := r.Group("/api/discussion")
	{
		discussion.GET("/:discussionId", ctrl.GetDiscussion)
		discussion.PUT("/:discussionId", auth, ctrl.UpdateDiscussion)
		discussion.DELETE("/:discussionId", auth, ctrl.DeleteDiscussion)

		discussion.POST("/:discussionId/like", auth, ctrl.LikeDiscussion)
		discussion.POST("/:discussionId/unlike", auth, ctrl.UnlikeDiscussion)
		discussion.POST("/:discussionId/view", auth, ctrl.ViewDiscussion)
		discussion.POST("/:discussionId/replies", auth, ctrl.CreateReply)
	}

	reply := r.Group("/api/reply")
	{
		reply.PUT("/:replyId", auth, ctrl.UpdateReply)
		reply.DELETE("/:replyId", auth, ctrl.DeleteReply)
		reply.POST("/:replyId/like", auth, ctrl.LikeReply)
		reply.POST("/:replyId/unlike", auth, ctrl.UnlikeReply)
	}
}
