package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/laneflow/internal/api"
	"github.com/matzehuels/laneflow/pkg/cache"
	"github.com/matzehuels/laneflow/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // optional Redis artifact cache
	mongoURI  string // optional MongoDB diagram store
	mongoDB   string // MongoDB database name
	config    string // optional TOML file overriding layout constants
	noCache   bool   // disable the artifact cache entirely
}

// serveCommand creates the serve command for running the HTTP layout service.
//
// Backends default to in-process implementations: the file cache for
// artifacts and an in-memory diagram store. Pointing --redis or --mongo at
// running instances switches to the shared backends.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the laneflow HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the diagram store (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "laneflow", "MongoDB database name")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML file overriding layout constants")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runServe builds the cache and store backends, then serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadLayoutConfig(opts.config)
	if err != nil {
		return fmt.Errorf("load config %s: %w", opts.config, err)
	}

	artifactCache, err := newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer artifactCache.Close()

	store, err := newServeStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}()

	runner := pipeline.NewRunner(artifactCache, logger)
	server := api.NewServer(runner, store, logger, pipeline.Options{
		Layout:  &cfg,
		NoCache: opts.noCache,
	})

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache picks the artifact cache backend for the service.
func newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(connectCtx, opts.redisAddr)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Info("using redis artifact cache", "addr", opts.redisAddr)
		return rc, nil
	}
	return newCache(false), nil
}

// newServeStore picks the diagram store backend for the service.
func newServeStore(ctx context.Context, opts *serveOpts) (api.Store, error) {
	if opts.mongoURI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		store, err := api.NewMongoStore(connectCtx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Info("using mongodb diagram store", "database", opts.mongoDB)
		return store, nil
	}
	return api.NewMemoryStore(), nil
}
