package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "social-publisher/interfaces/http"
	"social-publisher/interfaces/middleware"
)

func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	userHandler httpHandler.IUserHandler,
	credentialsHandler httpHandler.ICredentialsHandler,
	postHandler httpHandler.IPostHandler,
	publishHandler httpHandler.IPublishHandler,
	linkedinAuthHandler httpHandler.ILinkedInAuthHandler,
	frontendURL string,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	origins := []string{"http://localhost:4200", "http://localhost:3000", "http://localhost:5173"}
	if frontendURL != "" {
		origins = append([]string{frontendURL}, origins...)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthHandler.Health)

	// Account endpoints that must work without a bearer token.
	router.POST("/api/user/register", userHandler.Register)
	router.POST("/api/user/login", userHandler.Login)
	router.POST("/api/user/authenticate", userHandler.Authenticate)

	// LinkedIn OAuth round trip. The callback is hit by LinkedIn's redirect,
	// so it cannot require our bearer token.
	router.GET("/auth/linkedin/login", linkedinAuthHandler.Login)
	router.GET("/auth/linkedin/callback", linkedinAuthHandler.Callback)
	router.GET("/auth/linkedin/tokens", linkedinAuthHandler.Tokens)

	authed := router.Group("/", middleware.Auth(secretKey))
	authed.GET("/auth/linkedin/token-status", linkedinAuthHandler.TokenStatus)

	api := authed.Group("/api")
	{
		api.GET("/user/profile", userHandler.GetProfile)
		api.PUT("/user/tokens", userHandler.UpdateTokens)

		api.GET("/credentials", credentialsHandler.Get)
		api.POST("/credentials/linkedin", credentialsHandler.SaveLinkedIn)
		api.POST("/credentials/twitter", credentialsHandler.SaveTwitter)
		api.DELETE("/credentials/:platform", credentialsHandler.Disable)
		api.GET("/credentials/linkedin/auth-url", credentialsHandler.LinkedInAuthURL)

		api.POST("/post/twitter", publishHandler.PostToTwitter)
		api.POST("/post/linkedin", publishHandler.PostToLinkedIn)

		api.POST("/posts", postHandler.Create)
		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Get)
		api.PUT("/posts/:id", postHandler.Update)
		api.DELETE("/posts/:id", postHandler.Delete)
	}

	return router
}
