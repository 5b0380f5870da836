package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gvexport/internal/server"
	"github.com/matzehuels/gvexport/pkg/cache"
	"github.com/matzehuels/gvexport/pkg/render"
)

const redisPingTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the format catalog and renderer over HTTP",
		Long: `Serve the format catalog and renderer over HTTP.

Routes:
  GET  /health
  GET  /formats
  GET  /formats/{name}
  POST /render?format=<name>&layout=<layout>   (DOT source as body)

Rendered artifacts are cached on disk, or in Redis when --redis-url is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if redisURL == "" {
				redisURL = cfg.Server.RedisURL
			}

			artifacts, err := serverCache(ctx, redisURL, noCache)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			r := render.New(cfg.RenderOptions(), artifacts, logger)
			printSuccess("Serving on %s", addr)
			printDetail("Default format: %s (-T%s)", cfg.Format, cfg.Format.Token())
			return server.Run(ctx, addr, server.NewRouter(r, cfg.Format, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "cache artifacts in Redis, e.g. redis://localhost:6379/0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// serverCache picks Redis when a URL is configured and the file cache
// otherwise. An unreachable Redis is an error, not a silent fallback.
func serverCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		printWarning("Artifact cache disabled")
		return cache.NewNullCache(), nil
	}
	if redisURL == "" {
		return newCache(false)
	}

	rc, err := cache.NewRedisCache(redisURL, cache.DefaultRedisPrefix)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		rc.Close()
		return nil, err
	}
	printInfo("Caching artifacts in Redis")
	return rc, nil
}
