package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/nicorlas/twitter-api/internal/config"
	"github.com/nicorlas/twitter-api/internal/database"
	"github.com/nicorlas/twitter-api/internal/repository"
	jsonrepo "github.com/nicorlas/twitter-api/internal/repository/jsonfile"
	postgresrepo "github.com/nicorlas/twitter-api/internal/repository/postgres"
	sqliterepo "github.com/nicorlas/twitter-api/internal/repository/sqlite"
	"github.com/nicorlas/twitter-api/internal/service"
	"github.com/nicorlas/twitter-api/internal/storage/jsonfile"
	"github.com/nicorlas/twitter-api/internal/transport/http/handlers"
	"github.com/nicorlas/twitter-api/internal/transport/http/middleware"
	"github.com/nicorlas/twitter-api/internal/transport/ws"
	"golang.org/x/sync/errgroup"
)

type repositories struct {
	users  repository.UserRepository
	tweets repository.TweetRepository
	creds  repository.CredentialRepository
	close  func()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()
	log.Printf("Using %s storage", cfg.StorageDriver)

	// Services
	userService := service.NewUserService(repos.users, repos.creds)
	tweetService := service.NewTweetService(repos.tweets)
	authService := service.NewAuthService(repos.users, repos.creds, cfg.JWTSecret)

	// Real-time
	hub := ws.NewHub()
	tweetService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	h := handlers.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Users:  handlers.NewUserHandler(userService),
		Tweets: handlers.NewTweetHandler(tweetService),
	}

	var protect func(http.Handler) http.Handler
	if cfg.AuthRequired {
		protect = middleware.Auth(cfg.JWTSecret)
	}

	// Routes
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, h, protect)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      middleware.CORS(cfg.CORSOrigin)(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Graceful shutdown complete")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.DriverJSONFile:
		if err := jsonfile.Bootstrap(cfg.DataDir); err != nil {
			return nil, err
		}
		return &repositories{
			users:  jsonrepo.NewUserRepo(cfg.DataDir),
			tweets: jsonrepo.NewTweetRepo(cfg.DataDir),
			creds:  jsonrepo.NewCredentialRepo(cfg.DataDir),
			close:  func() {},
		}, nil

	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &repositories{
			users:  postgresrepo.NewUserRepo(pool),
			tweets: postgresrepo.NewTweetRepo(pool),
			creds:  postgresrepo.NewCredentialRepo(pool),
			close:  pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:  sqliterepo.NewUserRepo(db),
			tweets: sqliterepo.NewTweetRepo(db),
			creds:  sqliterepo.NewCredentialRepo(db),
			close:  func() { db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
