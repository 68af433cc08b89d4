package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yapyap/backend/internal/auth"
	"yapyap/backend/internal/config"
	"yapyap/backend/internal/database"
	"yapyap/backend/internal/handler"
	"yapyap/backend/internal/observability"
	"yapyap/backend/internal/repositories"
	"yapyap/backend/pkg/jwt"

	// Swagger imports
	_ "yapyap/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           YapYap API
// @version         1.0
// @description     This is the API for the YapYap chat service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	issuer := jwt.NewIssuer(jwt.Config{
		Secret:              cfg.JWTSecret,
		Issuer:              cfg.JWTIssuer,
		Audience:            cfg.JWTAudience,
		ExpirationInMinutes: cfg.JWTExpirationMinutes,
	})

	userRepo := repositories.NewUserRepo(db)
	friendRepo := repositories.NewFriendRepo(db)
	chatRepo := repositories.NewChatRepo(db)
	groupRepo := repositories.NewGroupRepo(db)
	messageRepo := repositories.NewMessageRepo(db)

	authHandler := handler.NewAuthHandler(userRepo, issuer)
	userHandler := handler.NewUserHandler(userRepo)
	friendHandler := handler.NewFriendHandler(friendRepo, userRepo)
	chatHandler := handler.NewChatHandler(chatRepo, friendRepo)
	groupHandler := handler.NewGroupHandler(groupRepo)
	messageHandler := handler.NewMessageHandler(messageRepo, chatRepo, groupRepo)

	router := gin.Default()
	router.Use(observability.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.Middleware(issuer))
		{
			userRoutes.GET("", userHandler.ListUsers)
			userRoutes.GET("/me", userHandler.GetMe) // Must be before /:id
			userRoutes.GET("/:id", userHandler.GetUser)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Friendship routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.Middleware(issuer))
		{
			friendRoutes.GET("", friendHandler.ListFriends)
			friendRoutes.GET("/:userId", friendHandler.CheckFriendship)
			friendRoutes.POST("/:userId", friendHandler.AddFriend)
			friendRoutes.DELETE("/:id", friendHandler.RemoveFriend)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chats")
		chatRoutes.Use(auth.Middleware(issuer))
		{
			chatRoutes.GET("", chatHandler.ListChats)
			chatRoutes.POST("", chatHandler.StartChat)
		}

		// Group routes (protected)
		groupRoutes := apiV1.Group("/groups")
		groupRoutes.Use(auth.Middleware(issuer))
		{
			groupRoutes.POST("", groupHandler.CreateGroup)
			groupRoutes.POST("/:id/members", groupHandler.JoinGroup)
		}

		// Message routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.Middleware(issuer))
		{
			messageRoutes.GET("/chat/:chatId", messageHandler.GetChatMessages)
			messageRoutes.GET("/group/:groupId", messageHandler.GetGroupMessages)
			messageRoutes.POST("", messageHandler.SendMessage)
			messageRoutes.PUT("/:id", messageHandler.UpdateMessage)
			messageRoutes.DELETE("/:id", messageHandler.DeleteMessage)
		}
	}

	log.Printf("Server is running on %s", cfg.ServerAddress)
	log.Printf("Swagger UI is available at http://localhost%s/swagger/index.html", cfg.ServerAddress)
	log.Fatal(router.Run(cfg.ServerAddress))
}
