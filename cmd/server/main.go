package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/catalog"
	"github.com/tonmoyth/landing-page-two/internal/config"
	"github.com/tonmoyth/landing-page-two/internal/handlers"
	"github.com/tonmoyth/landing-page-two/internal/imghost"
	"github.com/tonmoyth/landing-page-two/internal/models"
	"github.com/tonmoyth/landing-page-two/internal/telemetry"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Telemetry + backend client
	metrics := telemetry.New()

	client := backend.NewClient(cfg.BackendURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
		backend.WithLogger(logger),
		backend.WithMetrics(metrics),
	)

	// Image host is optional: without a key the upload page reports it.
	var uploader *imghost.Uploader
	if cfg.ImgBBKey != "" {
		uploader, err = imghost.NewUploader(cfg.ImgBBEndpoint, cfg.ImgBBKey, imghost.WithLogger(logger))
		if err != nil {
			slog.Error("Failed to configure image host", "error", err)
			os.Exit(1)
		}
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	var legacy *catalog.FileSource
	if cfg.LegacyCatalog != "" {
		legacy = &catalog.FileSource{Path: cfg.LegacyCatalog}
	}

	homeHandler := &handlers.HomeHandler{
		Backend:      client,
		Legacy:       legacy,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	orderHandler := &handlers.OrderHandler{
		Backend:      client,
		Home:         homeHandler,
		Templates:    templates,
		SessionStore: sessionStore,
		Validate:     models.NewValidator(),
	}
	adminHandler := &handlers.AdminHandler{
		Backend:      client,
		Uploader:     uploader,
		SessionStore: sessionStore,
		Templates:    templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Metrics
	mux.Handle("/metrics", metrics.Handler())

	// Rate limiter for order submission
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("POST /order/review", orderHandler.Review)
	mux.HandleFunc("POST /order", rateLimiter.Middleware(orderHandler.Submit))
	mux.HandleFunc("/orders/lookup", orderHandler.Lookup)

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/register", adminHandler.RegisterGet)
	mux.HandleFunc("POST /register", adminHandler.RegisterPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("POST /admin/orders/update", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))
	mux.HandleFunc("GET /admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.UploadForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Metrics -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		metrics.Middleware(
			handlers.SecurityHeadersMiddleware(
				CSRF(mux),
			),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
