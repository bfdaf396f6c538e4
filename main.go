package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"e-guarding-cctv/console/config"
	"e-guarding-cctv/console/database"
	"e-guarding-cctv/console/gateway"
	"e-guarding-cctv/console/handlers"
	"e-guarding-cctv/console/middleware"
	"e-guarding-cctv/console/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Local state store for UI preferences
	db, err := database.Initialize(cfg.State)
	if err != nil {
		log.Fatalf("Failed to initialize state store: %v", err)
	}

	// Gateway client: rows, storage, auth and the realtime feed
	gw := gateway.NewClient(cfg.Gateway)

	// Services
	cameraService := services.NewCameraService(gw)
	serverService := services.NewServerService(gw)
	modelService := services.NewModelService(gw, gw)
	assignmentService := services.NewAssignmentService(gw)
	eventService := services.NewEventService(gw)
	trainingService := services.NewTrainingService(gw, gw)
	dashboardService := services.NewDashboardService(gw)
	settingsService := services.NewSettingsService(gw, gw)
	monitorService := services.NewMonitorService(services.NewFFmpegPlayer(cfg.Monitor.FFmpegPath))
	notifierService := services.NewNotifierService(gw, gw)

	// Background loops: pollers and the notification feed
	eventService.Start()
	trainingService.Start()
	dashboardService.Start()
	notifierService.Start(context.Background())

	// Handlers
	authHandler := handlers.NewAuthHandler(gw)
	cameraHandler := handlers.NewCameraHandler(cameraService)
	serverHandler := handlers.NewServerHandler(serverService)
	modelHandler := handlers.NewModelHandler(modelService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	eventHandler := handlers.NewEventHandler(eventService)
	trainingHandler := handlers.NewTrainingHandler(trainingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	monitorHandler := handlers.NewMonitorHandler(monitorService, cameraService)
	notificationHandler := handlers.NewNotificationHandler(notifierService)
	stateHandler := handlers.NewStateHandler(db)

	router := setupRouter(routerDeps{
		cfg:           cfg,
		auth:          authHandler,
		cameras:       cameraHandler,
		servers:       serverHandler,
		models:        modelHandler,
		assignments:   assignmentHandler,
		events:        eventHandler,
		training:      trainingHandler,
		dashboard:     dashboardHandler,
		settings:      settingsHandler,
		monitor:       monitorHandler,
		notifications: notificationHandler,
		state:         stateHandler,
	})

	// Stop background loops and playback on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down...")
		eventService.Close()
		trainingService.Close()
		dashboardService.Close()
		notifierService.Stop()
		monitorService.Teardown()
		os.Exit(0)
	}()

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Console starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

type routerDeps struct {
	cfg           *config.Config
	auth          *handlers.AuthHandler
	cameras       *handlers.CameraHandler
	servers       *handlers.ServerHandler
	models        *handlers.ModelHandler
	assignments   *handlers.AssignmentHandler
	events        *handlers.EventHandler
	training      *handlers.TrainingHandler
	dashboard     *handlers.DashboardHandler
	settings      *handlers.SettingsHandler
	monitor       *handlers.MonitorHandler
	notifications *handlers.NotificationHandler
	state         *handlers.StateHandler
}

func setupRouter(deps routerDeps) *gin.Engine {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS configuration
	// Allow all localhost origins for development
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if origin == "" {
				return true
			}
			return origin == "http://localhost:8080" ||
				origin == "http://localhost:5173" ||
				origin == "http://localhost:3000" ||
				origin == "http://127.0.0.1:8080" ||
				origin == "http://127.0.0.1:5173" ||
				origin == "http://127.0.0.1:3000"
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * 3600, // 12 hours
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", deps.auth.Login)
			auth.POST("/signup", deps.auth.Signup)
			auth.POST("/recover", deps.auth.Recover)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.cfg.JWT.Secret))
	{
		protected.GET("/auth/me", deps.auth.GetMe)
		protected.POST("/auth/logout", deps.auth.Logout)

		protected.GET("/dashboard/stats", deps.dashboard.GetStats)

		cameras := protected.Group("/cameras")
		{
			cameras.GET("", deps.cameras.GetCameras)
			cameras.POST("", deps.cameras.CreateCamera)
			cameras.PUT("/:id", deps.cameras.UpdateCamera)
			cameras.DELETE("/:id", deps.cameras.DeleteCamera)
			cameras.GET("/:id/models", deps.assignments.GetAssignments)
			cameras.POST("/:id/models", deps.assignments.ToggleAssignment)
		}

		servers := protected.Group("/servers")
		{
			servers.GET("", deps.servers.GetServers)
			servers.POST("", deps.servers.CreateServer)
			servers.PUT("/:id", deps.servers.UpdateServer)
			servers.DELETE("/:id", deps.servers.DeleteServer)
		}

		aiModels := protected.Group("/models")
		{
			aiModels.GET("", deps.models.GetModels)
			aiModels.POST("", deps.models.CreateModel)
			aiModels.PUT("/:id", deps.models.UpdateModel)
			aiModels.DELETE("/:id", deps.models.DeleteModel)
			aiModels.POST("/:id/toggle", deps.models.ToggleModel)
		}

		events := protected.Group("/events")
		{
			events.GET("", deps.events.GetEvents)
			events.PUT("/filter", deps.events.SetFilter)
			events.POST("/:id/acknowledge", deps.events.AcknowledgeEvent)
		}

		training := protected.Group("/training")
		{
			training.GET("", deps.training.GetTraining)
			training.POST("/datasets", deps.training.UploadDataset)
			training.DELETE("/datasets/:id", deps.training.DeleteDataset)
			training.POST("/jobs", deps.training.StartTraining)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", deps.settings.GetSettings)
			settings.PUT("/:id", deps.settings.SaveSettings)
			settings.POST("/test-email", deps.settings.TestEmail)
			settings.POST("/password", deps.settings.ChangePassword)
		}

		monitor := protected.Group("/monitor")
		{
			monitor.GET("", deps.monitor.GetMonitor)
			monitor.POST("/start", deps.monitor.StartMonitor)
			monitor.POST("/stop", deps.monitor.StopMonitor)
			monitor.POST("/tiles/:id/restart", deps.monitor.RestartTile)
			monitor.POST("/focus/:id", deps.monitor.OpenFocus)
			monitor.DELETE("/focus", deps.monitor.CloseFocus)
			monitor.PUT("/columns", deps.monitor.SetColumns)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("/stream", deps.notifications.Stream)
			notifications.GET("/current", deps.notifications.GetCurrent)
			notifications.POST("/dismiss", deps.notifications.Dismiss)
		}

		state := protected.Group("/state")
		{
			state.GET("", deps.state.GetState)
			state.PUT("", deps.state.SetState)
		}
	}

	return router
}
