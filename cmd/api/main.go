package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/internal/api/handlers"
	"github.com/eagle-health/analytics-backend/internal/cache/redis"
	"github.com/eagle-health/analytics-backend/internal/chat"
	"github.com/eagle-health/analytics-backend/internal/metrics"
	"github.com/eagle-health/analytics-backend/internal/middleware/ratelimit"
	"github.com/eagle-health/analytics-backend/internal/middleware/security"
	"github.com/eagle-health/analytics-backend/internal/storage/sqlite"
	"github.com/eagle-health/analytics-backend/internal/trends"
	"github.com/eagle-health/analytics-backend/pkg/config"
	appLogger "github.com/eagle-health/analytics-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Eagle Health Analytics API Server")

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	if err := sqliteClient.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache, err = redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	trendsStore := trends.NewStore(sqliteClient.DB())

	fetcher := chat.NewFetcher(trendsStore, time.Duration(cfg.Chat.FetchTimeoutSec)*time.Second)
	renderer := chat.NewRenderer()
	sessions := chat.NewSessionLog(cfg.Chat.MaxTurnsPerSession, cfg.Chat.MaxSessions)
	engine := chat.NewEngine(fetcher, renderer, sessions, sqliteClient)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(cfg.RateLimit.MaxRequestsPerMinute)
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(limiter.Middleware())
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		return err
	})

	chatHandler := handlers.NewChatHandler(engine, trendsStore)
	contactHandler := handlers.NewContactHandler(sqliteClient)
	wsHandler := handlers.NewWebSocketHandler(engine)

	var aggCache handlers.AggregateCache
	if cache != nil {
		aggCache = cache
	}
	trendsHandler := handlers.NewTrendsHandler(trendsStore, aggCache)

	api := app.Group("/api")

	api.Post("/chat", chatHandler.HandleChat)
	api.Get("/chat/history/:session_id", chatHandler.GetHistory)
	api.Get("/chat/conditions", chatHandler.GetConditions)
	api.Get("/chat/team", chatHandler.GetTeam)
	api.Get("/chat/stats", chatHandler.GetStats)
	api.Get("/chat/data/:condition", chatHandler.GetConditionData)

	api.Get("/trends/searchbyyear", trendsHandler.SearchByYear)
	api.Get("/trends/searchyearandcondition", trendsHandler.SearchByYearAndCondition)
	api.Get("/trends/searchbystate", trendsHandler.SearchByState)
	api.Get("/trends/statetimeline", trendsHandler.StateTimeline)
	api.Get("/trends/searchbycity", trendsHandler.SearchByCity)
	api.Get("/trends/citytimeline", trendsHandler.CityTimeline)
	api.Get("/trends/bystateandyear", trendsHandler.ByStateAndYear)
	api.Get("/trends/casesleadingdeath", trendsHandler.LeadingCauses)
	api.Get("/trends/location", trendsHandler.Locations)
	api.Get("/trends/mostsearched", trendsHandler.MostSearched)
	api.Get("/trends/totalcondition", trendsHandler.TotalByCondition)
	api.Get("/trends/topstates", trendsHandler.TopStates)
	api.Get("/trends/correlation", trendsHandler.Correlation)

	api.Post("/contact", contactHandler.SubmitContact)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(wsHandler.HandleConnection))

	app.Get("/metrics", metrics.Handler())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		if err := sqliteClient.DB().Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")

	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
