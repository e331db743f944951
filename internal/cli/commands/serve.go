package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apimeta-io/apimeta/internal/cache"
	"github.com/apimeta-io/apimeta/internal/cli/config"
	"github.com/apimeta-io/apimeta/internal/loader"
	"github.com/apimeta-io/apimeta/internal/resource"
	"github.com/apimeta-io/apimeta/internal/watch"
	"github.com/apimeta-io/apimeta/internal/web/server"
)

var (
	serveDir   string
	serveAddr  string
	serveWatch bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resource introspection API",
		Long: `Start the read-only HTTP API that exposes registered resources,
their configuration, and their expanded routes.

With --watch, descriptor files are reloaded on change and the running
server picks up the new registry without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().StringVarP(&serveDir, "dir", "d", "", "descriptor directory (default from apimeta.yml)")
	cmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from apimeta.yml)")
	cmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload descriptors on file changes")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dir := serveDir
	if dir == "" {
		dir = cfg.Resources.Dir
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	registry, err := loader.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to load descriptors: %w", err)
	}
	logger.Info("descriptors loaded",
		zap.String("dir", dir),
		zap.Int("resources", registry.Count()))

	store, closeCache, err := buildDescriptorStore(cfg)
	if err != nil {
		return err
	}
	if closeCache != nil {
		defer closeCache()
	}

	serverConfig := server.DefaultConfig()
	serverConfig.Address = cfg.Server.Address()
	if serveAddr != "" {
		serverConfig.Address = serveAddr
	}
	serverConfig.APIPrefix = cfg.Server.APIPrefix
	serverConfig.AuthSecret = cfg.Auth.Secret
	serverConfig.AuthTokenTTL = cfg.Auth.TokenTTL

	srv, err := server.New(serverConfig, registry, store, logger)
	if err != nil {
		return err
	}

	if serveWatch {
		watcher, err := watch.New(dir, logger, func(reloaded *resource.Registry) {
			srv.SetRegistry(reloaded)
			if store != nil {
				if err := store.Clear(context.Background()); err != nil {
					logger.Warn("failed to clear descriptor cache", zap.Error(err))
				}
			}
			logger.Info("registry reloaded", zap.Int("resources", reloaded.Count()))
		})
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer watcher.Stop()
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// buildDescriptorStore constructs the configured cache backend. The
// returned close function is nil when there is nothing to close.
func buildDescriptorStore(cfg *config.Config) (*cache.DescriptorStore, func(), error) {
	switch cfg.Cache.Backend {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:        cfg.Cache.RedisAddr,
			CacheConfig: cache.DefaultConfig(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return cache.NewDescriptorStore(redisCache, cache.DefaultConfig().DefaultTTL), func() { redisCache.Close() }, nil
	default:
		memory := cache.NewMemoryCache()
		return cache.NewDescriptorStore(memory, cache.DefaultConfig().DefaultTTL), func() { memory.Close() }, nil
	}
}
