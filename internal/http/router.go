package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/predixarena/authsvc/internal/auth"
	"github.com/predixarena/authsvc/internal/config"
	"github.com/predixarena/authsvc/internal/http/handlers"
	"github.com/predixarena/authsvc/internal/http/middlewares"
	"github.com/predixarena/authsvc/internal/observability"
	"github.com/predixarena/authsvc/internal/redisclient"
	"github.com/predixarena/authsvc/internal/repo/postgres"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries everything the router needs. Redis, Prom and Metrics are
// optional; tests leave them nil.
type Deps struct {
	Pool    *pgxpool.Pool
	Redis   *redisclient.Client
	Prom    *observability.Prom
	Metrics http.Handler
	Cfg     config.Config
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(otelgin.Middleware("authsvc"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if len(d.Cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	}

	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20)) // 1 MiB

	// health + metrics

	pings := map[string]func() error{}

	if d.Pool != nil {
		pings["db"] = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()
			return d.Pool.Ping(ctx)
		}
	}

	if d.Redis != nil {
		pings["redis"] = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()
			return d.Redis.Ping(ctx)
		}
	}

	h := handlers.NewHealthHandler(pings)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	// wire up repositories and services

	usersRepo := postgres.NewUsersRepo(d.Pool, d.Prom)
	jwtManager := auth.NewManager(d.Cfg.JWTSecret, d.Cfg.AccessTTL())
	guard := middlewares.NewAuthMiddleware(jwtManager, usersRepo)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, d.Prom)
	usersHandler := handlers.NewUsersHandler(usersRepo)
	adminHandler := handlers.NewAdminUsersHandler(usersRepo)

	// credential endpoints get a brute-force window keyed by IP; the admin
	// surface gets a per-caller window. Both are shared across instances
	// when redis is configured.
	var authLimit, adminLimit gin.HandlerFunc

	if d.Redis != nil {
		authLimit = middlewares.RedisRateLimit(d.Redis.Raw(), middlewares.KeyByIP, d.Cfg.AuthRateLimit, d.Cfg.AuthRateWindow)
		adminLimit = middlewares.RedisRateLimit(d.Redis.Raw(), middlewares.KeyByUserOrIP, d.Cfg.AdminRateLimit, d.Cfg.AdminRateWindow)
	} else {
		authLimiter := middlewares.NewRateLimiter(d.Cfg.AuthRateLimit, d.Cfg.AuthRateWindow)
		authLimit = authLimiter.Middleware(middlewares.KeyByIP)

		adminLimiter := middlewares.NewRateLimiter(d.Cfg.AdminRateLimit, d.Cfg.AdminRateWindow)
		adminLimit = adminLimiter.Middleware(middlewares.KeyByUserOrIP)
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authLimit, authHandler.Register)
	authGroup.POST("/login", authLimit, authHandler.Login)
	authGroup.GET("/me", guard.RequireAuth(), authHandler.Me)

	usersGroup := api.Group("/users", guard.RequireAuth())
	usersGroup.GET("/profile/:userId", usersHandler.Profile)

	adminGroup := api.Group("/admin", guard.RequireAuth(), guard.RequireSuperUser(), adminLimit)
	adminGroup.GET("/users", adminHandler.List)
	adminGroup.PUT("/users/:userId", adminHandler.Update)

	return r
}
