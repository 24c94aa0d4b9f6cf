package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cybersleuth25/unisphere/internal/app/controllers"
	"github.com/cybersleuth25/unisphere/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	friendshipController *controllers.FriendshipController,
	chatController *controllers.ChatController,
	searchController *controllers.SearchController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		authenticated.GET("/profile", userController.GetProfile)
		authenticated.PUT("/profile", userController.UpdateProfile)
		authenticated.PUT("/profile/avatar", userController.UpdateAvatar)
		authenticated.DELETE("/profile/avatar", userController.RemoveAvatar)

		// User lookup
		authenticated.GET("/users", userController.GetUserByEmail)

		// Typed post feeds
		posts := authenticated.Group("/posts")
		{
			posts.GET("", postController.ListPosts)
			posts.GET("/:id", postController.GetPost)
			posts.POST("", postController.CreatePost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", postController.ToggleLike)
		}

		// Global search
		authenticated.GET("/search", searchController.Search)

		// Friendships
		friends := authenticated.Group("/friends")
		{
			friends.GET("", friendshipController.ListFriends)
			friends.POST("", friendshipController.PerformAction)
			friends.GET("/status", friendshipController.GetStatus)
			friends.GET("/requests", friendshipController.ListRequests)
		}

		// Direct messaging (clients poll the message list)
		conversations := authenticated.Group("/conversations")
		{
			conversations.GET("", chatController.ListConversations)
			conversations.POST("", chatController.StartConversation)
			conversations.GET("/:id/messages", chatController.ListMessages)
			conversations.POST("/:id/messages", chatController.SendMessage)
		}
	}
}
