package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/parley/parley-go/internal/config"
	"github.com/parley/parley-go/internal/crypto"
	"github.com/parley/parley-go/internal/handler"
	"github.com/parley/parley-go/internal/metrics"
	"github.com/parley/parley-go/internal/middleware"
	"github.com/parley/parley-go/internal/service"
	"github.com/parley/parley-go/internal/session"
	"github.com/parley/parley-go/internal/wordlist"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	words, err := wordlist.Default()
	if err != nil {
		slog.Error("loading word list", "error", err)
		os.Exit(1)
	}

	src, err := crypto.NewSource(cfg.RandomSource, cfg.RandomSeed)
	if err != nil {
		slog.Error("creating random source", "error", err)
		os.Exit(1)
	}
	if cfg.RandomSource == crypto.SourceKeyed {
		slog.Warn("keyed random source in use, passphrases are reproducible")
	}

	m := metrics.New()

	gen := crypto.NewGenerator(words, src)
	passphraseHandler := handler.NewPassphraseHandler(
		service.NewPassphraseService(gen, cfg.DefaultWords, cfg.MaxWords, m),
	)
	roomHandler := handler.NewRoomHandler(
		service.NewRoomService(m),
		session.NewCookieStore(cfg.CookieSecret, cfg.IsProduction()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		handler.Routes(r, passphraseHandler, roomHandler)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"default_words", cfg.DefaultWords,
			"random_source", cfg.RandomSource,
			"entropy_bits", gen.Entropy(cfg.DefaultWords),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
