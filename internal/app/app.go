package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	campusnetHTTP "campusnet/internal/controller/http"
	"campusnet/internal/repo/persistent"
	"campusnet/internal/usecase"
	"campusnet/pkg/cache"
	"campusnet/pkg/config"
	"campusnet/pkg/database"
	"campusnet/pkg/jwt"
	"campusnet/pkg/logger"
	"campusnet/pkg/middleware"
	"campusnet/pkg/queue"
	"campusnet/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "campusnet/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTExpiration)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)

	userUseCase := usecase.NewUserUseCase(userRepo, a.jwtService, a.s3Client, a.queueClient, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, a.redisClient, a.queueClient, a.log)

	userHandler := campusnetHTTP.NewUserHandler(userUseCase, a.log)
	postHandler := campusnetHTTP.NewPostHandler(postUseCase, a.log)

	authRequired := campusnetHTTP.AuthMiddleware(a.jwtService, userRepo, a.log)
	adminRequired := campusnetHTTP.AdminMiddleware()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	users := api.Group("/users")
	{
		auth := users.Group("/auth")
		if a.redisClient != nil {
			auth.Use(middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute))
		}
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)

		protected := users.Group("")
		protected.Use(authRequired)
		{
			protected.GET("/profile", userHandler.GetOwnProfile)
			protected.PUT("/profile", userHandler.UpdateProfile)
			protected.GET("/profile/:id", userHandler.GetUserProfile)
			protected.POST("/follow/:userId", userHandler.Follow)
			protected.DELETE("/unfollow/:userId", userHandler.Unfollow)
			protected.GET("/all", userHandler.ListUsers)
			protected.POST("/avatar", userHandler.UploadAvatar)
			protected.POST("/cover", userHandler.UploadCover)
		}
	}

	posts := api.Group("/posts")
	{
		posts.GET("/all", postHandler.ListPosts)

		protected := posts.Group("")
		protected.Use(authRequired)
		{
			protected.POST("/create", postHandler.CreatePost)
			protected.GET("/own", postHandler.ListOwnPosts)
			protected.GET("/user/:id", postHandler.ListUserPosts)
			protected.GET("/post/:id", postHandler.GetPost)
			protected.POST("/like/:id", postHandler.LikePost)
			protected.POST("/comment/:id", postHandler.CommentPost)
			protected.DELETE("/delete/:id", adminRequired, postHandler.DeletePost)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("campusnet starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down campusnet...")
}

func (a *App) Shutdown() error {
	// The context gives in-flight requests 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("campusnet exited")
	return nil
}
