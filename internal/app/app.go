package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acadlinker_backend/internal/config"
	"acadlinker_backend/internal/controller"
	"acadlinker_backend/internal/repository"
	"acadlinker_backend/internal/service"
	"acadlinker_backend/pkg/database"
	"acadlinker_backend/pkg/logger"
	"acadlinker_backend/pkg/monitoring"
	"acadlinker_backend/pkg/security"
	"acadlinker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	friendship   *repository.FriendshipRepository
	post         *repository.PostRepository
	message      *repository.MessageRepository
	notification *repository.NotificationRepository
	team         *repository.TeamRepository
	task         *repository.TaskRepository
	help         *repository.HelpRepository
	aiChat       *repository.AIChatRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	notification *service.NotificationService
	friendship   *service.FriendshipService
	user         *service.UserService
	post         *service.PostService
	message      *service.MessageService
	suggestion   *service.SuggestionService
	team         *service.TeamService
	task         *service.TaskService
	help         *service.HelpService
	assistant    *service.AssistantService
}

type controllers struct {
	auth         *controller.AuthController
	friend       *controller.FriendController
	profile      *controller.ProfileController
	post         *controller.PostController
	message      *controller.MessageController
	search       *controller.SearchController
	notification *controller.NotificationController
	team         *controller.TeamController
	task         *controller.TaskController
	help         *controller.HelpController
	ai           *controller.AIController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		friendship:   repository.NewFriendshipRepository(db, rdb),
		post:         repository.NewPostRepository(db),
		message:      repository.NewMessageRepository(db),
		notification: repository.NewNotificationRepository(db),
		team:         repository.NewTeamRepository(db),
		task:         repository.NewTaskRepository(db),
		help:         repository.NewHelpRepository(db),
		aiChat:       repository.NewAIChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.notification = service.NewNotificationService(repos.notification)

	identity := service.NewIdentityClient(cfg.Identity)
	s.auth = service.NewAuthService(identity, repos.user, cfg.Cache)

	s.friendship = service.NewFriendshipService(repos.friendship, repos.user, s.notification)
	s.user = service.NewUserService(repos.user, repos.friendship, s.storage)
	s.post = service.NewPostService(repos.post, repos.friendship, s.storage)
	s.message = service.NewMessageService(repos.message, repos.friendship, repos.user, s.storage)
	s.suggestion = service.NewSuggestionService(repos.user, repos.friendship)
	s.team = service.NewTeamService(repos.team, repos.user, s.storage, s.notification)
	s.task = service.NewTaskService(repos.task, repos.team, s.notification)
	s.help = service.NewHelpService(repos.help, repos.user, s.storage, s.notification, db)

	ai := service.NewAIService(cfg.AI)
	github := service.NewGitHubClient(cfg.GitHub)
	s.assistant = service.NewAssistantService(repos.team, repos.task, repos.aiChat, ai, github)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(),
		friend:       controller.NewFriendController(s.friendship),
		profile:      controller.NewProfileController(s.user, s.post),
		post:         controller.NewPostController(s.post),
		message:      controller.NewMessageController(s.message),
		search:       controller.NewSearchController(s.user, s.suggestion),
		notification: controller.NewNotificationController(s.notification),
		team:         controller.NewTeamController(s.team),
		task:         controller.NewTaskController(s.task),
		help:         controller.NewHelpController(s.help),
		ai:           controller.NewAIController(s.assistant),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis 关闭或不可用时退化为直查数据库，好友缓存失效
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, friend cache disabled", zap.Error(err))
			rdb = nil
		}
	} else {
		logger.Log.Info("Redis disabled by config, friend cache disabled")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, db)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("acadlinker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
