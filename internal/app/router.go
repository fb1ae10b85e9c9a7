package app

import (
	"acadlinker_backend/docs"
	"acadlinker_backend/internal/middleware"
	"acadlinker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	router.GET("/", c.health.HealthCheck)
	router.GET("/api/health", c.health.HealthCheck)

	// 其余全部需要有效令牌
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(s.auth))
	{
		api.GET("/auth/status", c.auth.Status)

		friends := api.Group("/friends")
		{
			friends.POST("/send/:userId", c.friend.SendRequest)
			friends.GET("/requests", c.friend.PendingRequests)
			friends.POST("/accept/:reqId", c.friend.AcceptRequest)
			friends.POST("/reject/:reqId", c.friend.RejectRequest)
			friends.POST("/remove/:userId", c.friend.RemoveFriend)
			friends.GET("/list", c.friend.List)
			friends.GET("/search", c.friend.Search)
		}

		posts := api.Group("/posts")
		{
			posts.POST("/create", c.post.Create)
			posts.GET("/my", c.post.MyPosts)
			posts.GET("/home", c.post.HomeFeed)
		}

		profile := api.Group("/profile")
		{
			profile.PUT("/edit", c.profile.Edit)
			profile.PATCH("/edit", c.profile.Edit)
			profile.GET("/:userId", c.profile.Profile)
			profile.GET("/:userId/posts", c.profile.UserPosts)
		}

		messages := api.Group("/messages")
		{
			messages.GET("/friends", c.message.ChatFriends)
			messages.GET("/chat/:userId", c.message.Conversation)
			messages.POST("/send/:userId", c.message.Send)
		}

		api.GET("/search", c.search.Search)
		api.GET("/suggestions", c.search.Suggestions)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", c.notification.List)
			notifications.GET("/unread_count", c.notification.UnreadCount)
			notifications.PATCH("/mark_read/:id", c.notification.MarkRead)
			notifications.DELETE("/delete/:id", c.notification.Delete)
		}

		help := api.Group("/help")
		{
			help.POST("/request", c.help.Create)
			help.GET("/feed", c.help.Feed)
			help.POST("/solution/:id/accept", c.help.AcceptSolution)
			help.GET("/:id", c.help.Detail)
			help.POST("/:id/solve", c.help.Solve)
		}

		teams := api.Group("/teams")
		{
			teams.POST("/create", c.team.Create)
			teams.GET("", c.team.ListPublic)
			teams.GET("/my", c.team.MyTeams)
			teams.POST("/join-request", c.team.RequestJoin)
			teams.POST("/respond-request", c.team.RespondJoinRequest)
			teams.POST("/invite", c.team.Invite)
			teams.GET("/my-invites", c.team.MyInvites)
			teams.POST("/respond-invite", c.team.RespondInvite)
			teams.GET("/:id", c.team.Detail)
			teams.PUT("/:id/edit", c.team.Edit)
			teams.DELETE("/:id/members/:userId", c.team.RemoveMember)
			teams.GET("/:id/chat", c.team.ChatHistory)
			teams.POST("/:id/chat", c.team.SendChat)
			teams.POST("/:id/ai-chat", c.ai.Ask)
			teams.GET("/:id/ai-history", c.ai.History)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/team/:teamId", c.task.ListByTeam)
			tasks.POST("/create", c.task.Create)
			tasks.PATCH("/:id", c.task.Update)
			tasks.PUT("/:id", c.task.Update)
			tasks.DELETE("/:id", c.task.Delete)
		}
	}
}
