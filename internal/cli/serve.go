package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aigkit/internal/server"
	"github.com/matzehuels/aigkit/pkg/cache"
	"github.com/matzehuels/aigkit/pkg/engine"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
)

// envRedisAddr names the environment fallback for the shared cache.
const envRedisAddr = "AIGKIT_REDIS_ADDR"

// defaultAddr is where serve listens unless told otherwise.
const defaultAddr = ":8080"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the circuit engine over HTTP",
		Long: `Serve the circuit engine over HTTP.

Exposes /v1/info, /v1/eval, /v1/cnf, and /v1/solve plus a /healthz
probe. With --redis-addr (or AIGKIT_REDIS_ADDR) encodings and verdicts
go to a shared redis instead of the local file cache, so a fleet of
instances reuses each other's work. With --mongo-uri (or
AIGKIT_MONGO_URI) every fresh solve is archived.

Shuts down gracefully on SIGINT and SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis host:port for a shared cache (default $AIGKIT_REDIS_ADDR)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string for run archiving (default $AIGKIT_MONGO_URI)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the runner with the configured backends and blocks
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	serveCache, err := c.newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	runner := engine.NewRunner(serveCache, nil, c.Logger)
	defer runner.Close()

	if mongoURI == "" {
		mongoURI = os.Getenv(envMongoURI)
	}
	if mongoURI != "" {
		store, err := openArchive(ctx, mongoURI)
		if err != nil {
			return err
		}
		// The shutdown path always has a cancelled context.
		defer store.Close(context.WithoutCancel(ctx))
		runner.Archive = store
	}

	srv := server.New(runner, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

// newServeCache picks the cache backend: redis when configured, the
// local file cache otherwise.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr == "" {
		redisAddr = os.Getenv(envRedisAddr)
	}
	if redisAddr == "" {
		return newCache(false)
	}
	shared, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "connecting to redis")
	}
	return shared, nil
}
