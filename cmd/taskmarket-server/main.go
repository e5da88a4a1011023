package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kazz187/taskmarket/internal/config"
	"github.com/kazz187/taskmarket/internal/seed"
	"github.com/kazz187/taskmarket/internal/session"
	"github.com/kazz187/taskmarket/internal/task"
	taskrepo "github.com/kazz187/taskmarket/internal/task/repositoryimpl"
	userrepo "github.com/kazz187/taskmarket/internal/user/repositoryimpl"
	"github.com/kazz187/taskmarket/pkg/clog"
	"github.com/kazz187/taskmarket/pkg/storage"

	server "github.com/kazz187/taskmarket/internal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.IsLocal() {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewContextHandler(handler)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Setup repositories
	userRepo := userrepo.NewMemoryRepository()
	taskRepo := taskrepo.NewMemoryRepository()

	if env.SeedEnabled {
		fixtures, err := newStorage(ctx, &env.StorageEnv)
		if err != nil {
			slog.Error("failed to create seed storage", "error", err)
			os.Exit(1)
		}
		if _, err := seed.NewLoader(fixtures, userRepo, taskRepo).Load(ctx); err != nil {
			slog.Error("failed to load seed fixtures", "error", err)
			os.Exit(1)
		}
	}

	// Setup services
	store := task.NewStore(taskRepo, task.WithLatency(env.SimulatedLatency))
	lifecycle := task.NewLifecycle(store)
	sessions := session.NewManager(env.Secret, env.TTL)

	taskServer := task.NewServer(store, lifecycle, userRepo)
	browseHandler := task.NewBrowseHandler(store)
	sessionServer := session.NewServer(sessions, userRepo, env.DemoPassword)

	srv := server.NewServer(env, taskServer, browseHandler, sessionServer, sessions, userRepo)

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	store.Close()
}

func newStorage(ctx context.Context, env *config.StorageEnv) (storage.Storage, error) {
	switch env.Type {
	case "s3":
		return storage.NewBucket(ctx, storage.BucketConfig{
			Bucket:   env.S3Bucket,
			Prefix:   env.S3Prefix,
			Region:   env.S3Region,
			Endpoint: env.S3Endpoint,
		})
	default:
		return storage.NewDir(env.BaseDir)
	}
}
