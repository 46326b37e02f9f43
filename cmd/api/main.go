package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/envoyhq/envoy-backend/config"
	"github.com/envoyhq/envoy-backend/internal/metrics"
	"github.com/envoyhq/envoy-backend/internal/modules/analytics"
	"github.com/envoyhq/envoy-backend/internal/modules/auth"
	"github.com/envoyhq/envoy-backend/internal/modules/catalog"
	"github.com/envoyhq/envoy-backend/internal/modules/insight"
	"github.com/envoyhq/envoy-backend/internal/modules/inventory"
	"github.com/envoyhq/envoy-backend/internal/modules/restock"
	"github.com/envoyhq/envoy-backend/internal/modules/user"
	"github.com/envoyhq/envoy-backend/internal/modules/vendor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	blobs, err := user.NewDiskStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("init upload dir", zap.Error(err))
	}

	m := metrics.New()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, blobs, logger)

	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth.NewHandler(authService).RegisterRoutes(router)

	actorOf := func(r *http.Request) (user.Actor, bool) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			return user.Actor{}, false
		}
		return claims.Actor(), true
	}
	requesterOf := func(r *http.Request) (int64, bool) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			return 0, false
		}
		return claims.UserID, true
	}
	requireManager := auth.RequireRole(user.RoleManager)
	requireAdmin := auth.RequireRole(user.RoleAdmin)

	// ── Public surface ──────────────────────────────────────
	router.Method(http.MethodGet, "/metrics", m.Handler())
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(blobs.Dir()))))

	// ── Protected surface ───────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.Require(authService))

		user.NewHandler(userService, actorOf).RegisterRoutes(r, requireManager, requireAdmin)

		catalogRepo := catalog.NewPostgresRepository(db)
		catalog.NewHandler(catalog.NewService(catalogRepo)).RegisterRoutes(r)

		vendorRepo := vendor.NewPostgresRepository(db)
		vendor.NewHandler(vendor.NewService(vendorRepo)).RegisterRoutes(r)

		inventoryRepo := inventory.NewPostgresRepository(db)
		inventory.NewHandler(inventory.NewService(inventoryRepo)).RegisterRoutes(r)

		restockRepo := restock.NewPostgresRepository(db)
		restockService := restock.NewService(restockRepo, logger)
		restock.NewHandler(restockService, requesterOf).RegisterRoutes(r, requireManager)

		analyticsRepo := analytics.NewPostgresRepository(db)
		analytics.NewHandler(analytics.NewService(analyticsRepo)).RegisterRoutes(r)

		insightClient := insight.NewOpenAIClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		insightService := insight.NewService(insightClient,
			insight.NewPostgresExecutor(db), cfg.OpenAI.Timeout, logger)
		insight.NewHandler(insightService).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	logger.Info("api server starting", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
