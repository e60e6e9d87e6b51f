package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/danmwangi/schoolhub/internal/auth"
	"github.com/danmwangi/schoolhub/internal/cache"
	"github.com/danmwangi/schoolhub/internal/config"
	"github.com/danmwangi/schoolhub/internal/http/handlers"
	"github.com/danmwangi/schoolhub/internal/http/middlewares"
	"github.com/danmwangi/schoolhub/internal/observability"
	"github.com/danmwangi/schoolhub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// metrics registry lives with the router; one per process
	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("schoolhub-api"))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// listing cache: redis when configured, in-process TTL map otherwise
	var pages cache.PageCache

	if cfg.RedisAddr != "" {
		pages = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.ListCacheTTL,
		})
	} else {
		pages = cache.NewMemory(cfg.ListCacheTTL)
	}

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	studentsRepo := postgres.NewStudentsRepo(pool)
	classroomsRepo := postgres.NewClassroomsRepo(pool)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	studentsHandler := handlers.NewStudentsHandler(studentsRepo, pages, prom)
	classroomsHandler := handlers.NewClassroomsHandler(classroomsRepo, prom)

	api := r.Group("/api")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/signup", authHandler.SignUp)

	protected := api.Group("", authMW.RequireAuth())

	protected.GET("/student/all", studentsHandler.ListAll)
	protected.POST("/student", studentsHandler.Create)
	protected.GET("/student/:id", studentsHandler.GetByID)
	protected.PUT("/student/:id", studentsHandler.Update)
	protected.DELETE("/student/:id", studentsHandler.Delete)

	protected.GET("/classroom/all", classroomsHandler.ListAll)

	return r
}
