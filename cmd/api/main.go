package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	pgRepo "blogsmith/internal/infra/adapter/persistence/postgres"
	"blogsmith/internal/infra/db"
	"blogsmith/internal/infra/generator"
	"blogsmith/internal/infra/storage"
	"blogsmith/internal/infra/transcriber"
	"blogsmith/internal/infra/video"
	"blogsmith/internal/observability/logging"
	"blogsmith/internal/observability/tracing"
	blogUC "blogsmith/internal/usecase/blog"
	userUC "blogsmith/internal/usecase/user"

	hhttp "blogsmith/internal/handler/http"
	hauth "blogsmith/internal/handler/http/auth"
	hblog "blogsmith/internal/handler/http/blog"
	"blogsmith/internal/handler/http/requestid"
	"blogsmith/internal/handler/http/web"
	"blogsmith/pkg/config"
)

// Login throttle: 5 attempts per minute per IP, small burst for typos.
const (
	loginRateLimit  = rate.Limit(5.0 / 60.0)
	loginRateBurst  = 5
	loginLimiterTTL = 10 * time.Minute
)

// requestTimeout bounds a single request. The generation pipeline
// downloads, transcribes and calls an LLM, so this is measured in
// minutes, not seconds.
const requestTimeout = 15 * time.Minute

// maxRequestBody caps request bodies. The generate endpoint takes a
// single link and the auth forms are tiny.
const maxRequestBody = 1 << 20 // 1 MiB

func main() {
	// .env は無ければ黙って環境変数のみ使う
	_ = godotenv.Load()

	logger := logging.New()
	slog.SetDefault(logger)

	sessionSecret := validateSessionSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, sessionSecret, version)

	runServer(logger, components, database, version)
}

// validateSessionSecret reads JWT_SECRET and refuses to start on a
// missing or weak value. Session tokens are signed with this key, so a
// guessable secret lets anyone forge a login.
func validateSessionSecret(logger *slog.Logger) string {
	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret == "":
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	case len(secret) < 32:
		// 256ビット未満の鍵は総当たりに耐えない
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}

	for _, weak := range []string{"secret", "password", "test", "admin", "default"} {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
	return secret
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler      http.Handler
	LoginLimiter *hauth.LoginLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, sessionSecret, version string) *ServerComponents {
	blogRepo := pgRepo.NewBlogRepo(database)
	userRepo := pgRepo.NewUserRepo(database)

	// yt-dlp client and title lookup with scrape fallback
	videoConfig, err := video.LoadConfig()
	if err != nil {
		logger.Error("failed to load video configuration", slog.Any("error", err))
		os.Exit(1)
	}
	videoClient := video.NewClient(videoConfig)
	titleScraper := video.NewTitleScraper(createHTTPClient())
	titles := video.NewTitleFetcher(videoClient, titleScraper)

	// Audio store backs the health check and the retention sweeper
	storageConfig, err := storage.LoadConfig()
	if err != nil {
		logger.Error("failed to load storage configuration", slog.Any("error", err))
		os.Exit(1)
	}
	audioStore, err := storage.NewAudioStore(storageConfig.Dir)
	if err != nil {
		logger.Error("failed to open audio store", slog.Any("error", err))
		os.Exit(1)
	}

	blogSvc := &blogUC.Service{
		Repo:        blogRepo,
		Titles:      titles,
		Transcriber: createTranscriber(logger, videoClient),
		Generator:   createGenerator(logger),
	}
	userSvc := &userUC.Service{Repo: userRepo}

	// Session manager for cookie auth
	sessionConfig, err := hauth.LoadConfig()
	if err != nil {
		logger.Error("failed to load session configuration", slog.Any("error", err))
		os.Exit(1)
	}
	sessions := hauth.NewSessionManager([]byte(sessionSecret), sessionConfig.TTL, sessionConfig.Secure)
	logger.Info("session manager initialized",
		slog.Duration("ttl", sessionConfig.TTL),
		slog.Bool("secure", sessionConfig.Secure))

	loginLimiter := hauth.NewLoginLimiter(loginRateLimit, loginRateBurst)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	authHandlers := &hauth.Handlers{
		Users:    userSvc,
		Sessions: sessions,
		Renderer: renderer,
		Limiter:  loginLimiter,
	}
	blogHandlers := &hblog.Handlers{
		Blogs:    blogSvc,
		Sessions: sessions,
		Renderer: renderer,
	}

	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, AudioDir: audioStore})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	authHandlers.Register(mux)
	blogHandlers.Register(mux)

	return &ServerComponents{
		Handler:      applyMiddleware(logger, mux),
		LoginLimiter: loginLimiter,
	}
}

// createTranscriber creates a transcriber based on the TRANSCRIBER_TYPE
// environment variable. The returned service owns the download step via
// the yt-dlp client.
func createTranscriber(logger *slog.Logger, videoClient *video.Client) blogUC.Transcriber {
	transcriberType := config.GetEnvString("TRANSCRIBER_TYPE", "assemblyai")

	switch transcriberType {
	case "assemblyai":
		apiKey := os.Getenv("ASSEMBLYAI_API_KEY")
		if apiKey == "" {
			logger.Error("ASSEMBLYAI_API_KEY is required when TRANSCRIBER_TYPE=assemblyai")
			os.Exit(1)
		}
		cfg, err := transcriber.LoadConfig()
		if err != nil {
			logger.Error("failed to load transcriber configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using AssemblyAI for transcription", slog.String("type", "assemblyai"))
		return transcriber.NewService(videoClient, transcriber.NewAssemblyAI(apiKey, cfg))
	case "noop":
		// 開発用: 音声処理を飛ばして固定トランスクリプトを返す
		logger.Warn("Using no-op transcriber, transcripts will be placeholders")
		return transcriber.NewService(videoClient, transcriber.NewNoOp())
	default:
		logger.Error("Invalid TRANSCRIBER_TYPE",
			slog.String("type", transcriberType),
			slog.String("expected", "assemblyai or noop"))
		os.Exit(1)
		return nil
	}
}

// createGenerator creates an article generator based on the GENERATOR_TYPE
// environment variable.
func createGenerator(logger *slog.Logger) blogUC.Generator {
	generatorType := config.GetEnvString("GENERATOR_TYPE", "openai")

	switch generatorType {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when GENERATOR_TYPE=openai")
			os.Exit(1)
		}
		cfg, err := generator.LoadConfig("gpt-3.5-turbo")
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using OpenAI for article generation",
			slog.String("type", "openai"),
			slog.String("model", cfg.Model))
		return generator.NewOpenAI(apiKey, cfg)
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when GENERATOR_TYPE=claude")
			os.Exit(1)
		}
		cfg, err := generator.LoadConfig("claude-3-haiku-20240307")
		if err != nil {
			logger.Error("failed to load generator configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using Claude for article generation",
			slog.String("type", "claude"),
			slog.String("model", cfg.Model))
		return generator.NewClaude(apiKey, cfg)
	case "noop":
		logger.Warn("Using no-op generator, articles will echo the transcript")
		return generator.NewNoOp()
	default:
		logger.Error("Invalid GENERATOR_TYPE",
			slog.String("type", generatorType),
			slog.String("expected", "openai, claude or noop"))
		os.Exit(1)
		return nil
	}
}

// createHTTPClient creates an HTTP client for title scraping with timeouts
// and connection pooling. TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Input Validation → Body Limit → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	middlewareChain := handler

	// Apply in reverse order (innermost to outermost)
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = hhttp.Timeout(requestTimeout)(middlewareChain)
	middlewareChain = hhttp.LimitRequestBody(maxRequestBody)(middlewareChain)
	middlewareChain = hhttp.InputValidation()(middlewareChain)
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)
	middlewareChain = tracing.Middleware(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)

	return middlewareChain
}

// totalsPollInterval controls how often the blog/user count gauges are
// refreshed from the database.
const totalsPollInterval = time.Minute

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, database *sql.DB, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Keep the blog_posts_total / users_total gauges current
	go hhttp.PollTotals(ctx, database, totalsPollInterval, logger)

	// Evict idle login throttle buckets so the map does not grow forever
	go func() {
		ticker := time.NewTicker(loginLimiterTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := components.LoginLimiter.Cleanup(loginLimiterTTL)
				if removed > 0 {
					logger.Debug("login limiter cleanup",
						slog.Int("removed", removed),
						slog.Int("remaining", components.LoginLimiter.Size()))
				}
			}
		}
	}()

	addr := ":" + strconv.Itoa(config.GetEnvInt("PORT", 8080))
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
