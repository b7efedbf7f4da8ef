package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/medics-admin/internal/client"
	"github.com/harentsoaR/medics-admin/internal/config"
	"github.com/harentsoaR/medics-admin/internal/handlers"
	"github.com/harentsoaR/medics-admin/internal/middleware"
	"github.com/harentsoaR/medics-admin/internal/services"
	"github.com/harentsoaR/medics-admin/internal/session"
	"github.com/harentsoaR/medics-admin/internal/store"
	"github.com/harentsoaR/medics-admin/internal/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "console",
		Short: "Medics admin console",
	}
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin console web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// newLogger writes JSON lines, or human-readable lines in development.
func newLogger(out io.Writer, dev bool) zerolog.Logger {
	if dev {
		out = zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stdout}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func runServer() error {
	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		bootLogger := newLogger(os.Stderr, false)
		bootLogger.Error().Err(err).Msg("failed to load config")
		return err
	}

	// --- Logger ---
	logger := newLogger(os.Stdout, cfg.IsDev())
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info().Str("api_url", cfg.APIURL).Str("env", cfg.Env).Msg("configuration loaded")

	// --- Draft storage ---
	var drafts store.DraftStore = store.NewMemoryStore()
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Error().Err(err).Msg("failed to connect to MongoDB")
			return err
		}
		if err := mc.Ping(ctx, nil); err != nil {
			logger.Error().Err(err).Msg("MongoDB is not reachable")
			return err
		}
		defer mc.Disconnect(context.Background())
		drafts = store.NewMongoStore(mc.Database(cfg.MongoDatabase))
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
	} else {
		logger.Warn().Msg("MONGO_URI not set, drafts are kept in memory")
	}

	// --- Services ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := client.New(cfg.APIURL, client.WithHTTPClient(httpClient), client.WithLogger(logger))
	notifier := services.NewNotifier(cfg.TextbeltAPIKey, logger)
	if !notifier.Enabled() {
		logger.Info().Msg("TEXTBELT_API_KEY not set, reschedule SMS disabled")
	}

	h := handlers.NewHandler(handlers.Deps{
		API:      api,
		Refs:     services.NewReferenceCatalog(api, logger),
		Sessions: session.NewManager(cfg.Secret(), cfg.CookieSecure, logger),
		Drafts:   drafts,
		Notifier: notifier,
		Log:      logger,
		ViewTTL:  cfg.ViewIdleTTL,
	})

	// --- Gin Router ---
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
		}))
	}
	r.Use(h.Sessions.Middleware())
	r.SetHTMLTemplate(ui.Templates())
	h.Register(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	notifier.Wait()
	logger.Info().Msg("server stopped")
	return nil
}
