package routes

import (
	"time"

	"vidtube/handlers"
	"vidtube/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	loginLimiter := middleware.NewIPRateLimiter(10, time.Minute)

	api := router.Group("/user")

	// Public routes
	api.POST("/signup", middleware.RateLimitMiddleware(loginLimiter), handlers.Signup)
	api.POST("/signin", middleware.RateLimitMiddleware(loginLimiter), handlers.Signin)
	api.GET("/feed", handlers.GetFeed)
	api.GET("/post/:id", handlers.GetPost)
	api.GET("/search", handlers.SearchPosts)
	api.GET("/comments/:id", handlers.GetComments)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/profile", handlers.GetProfile)
	protected.POST("/uploadvideo", handlers.UploadVideo)
	protected.POST("/uploadimage", handlers.UploadImage)

	protected.POST("/addpost", handlers.AddPost)
	protected.GET("/getpost", handlers.GetMyPosts)
	protected.GET("/channel/:id", handlers.GetChannelPosts)
	protected.POST("/updatepost/:id", handlers.UpdatePost)
	protected.POST("/deletepost/:id", handlers.DeletePost)

	protected.POST("/like/:id", handlers.ToggleLike)
	protected.POST("/dislike/:id", handlers.ToggleDislike)
	protected.POST("/comment/:id", handlers.AddComment)

	return router
}
