package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/McKayRansom/auto-factorio/pkg/api"
	"github.com/McKayRansom/auto-factorio/pkg/cache"
	"github.com/McKayRansom/auto-factorio/pkg/observability"
	"github.com/McKayRansom/auto-factorio/pkg/store"
)

// serveFlags configures the HTTP server.
type serveFlags struct {
	addr     string
	mongo    string
	dataDir  string
	maxCells int
	timeout  time.Duration
	scope    string
	cache    cacheFlags
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{addr: ":8080", maxCells: api.DefaultMaxCells, timeout: api.DefaultTimeout}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing HTTP API",
		Long: `Serve the routing HTTP API.

Results are kept in MongoDB with --mongo, in JSON files with --data, and in
memory otherwise. The result cache is shared with the CLI unless --redis or
--no-cache is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", flags.addr, "listen address")
	cmd.Flags().StringVar(&flags.mongo, "mongo", "", "MongoDB URI for result storage (env "+envMongo+")")
	cmd.Flags().StringVar(&flags.dataDir, "data", "", "directory for result files when MongoDB is not used")
	cmd.Flags().IntVar(&flags.maxCells, "max-cells", flags.maxCells, "largest accepted map (width × height)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", flags.timeout, "routing deadline per request")
	cmd.Flags().StringVar(&flags.scope, "cache-scope", "", "prefix for cache keys when servers share a redis")
	flags.cache.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	st, backend, err := c.newStore(ctx, flags)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := c.newRunner(ctx, flags.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	if flags.scope != "" {
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, flags.scope+":")
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRoutingHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetAPIHooks(hooks)
	defer observability.Reset()

	handler := api.New(runner, st, c.Logger, api.Config{
		MaxCells: flags.maxCells,
		Timeout:  flags.timeout,
	}).Handler()

	ln, err := net.Listen("tcp", flags.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", flags.addr, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printSuccess("Serving routing API")
	printKeyValue("address", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("store", backend)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

// newStore picks MongoDB, a file store or memory, in that order.
func (c *CLI) newStore(ctx context.Context, flags serveFlags) (store.Store, string, error) {
	uri := flags.mongo
	if uri == "" {
		uri = os.Getenv(envMongo)
	}
	if uri != "" {
		st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
		if err != nil {
			return nil, "", err
		}
		return st, "mongodb", nil
	}
	if flags.dataDir != "" {
		st, err := store.NewFileStore(flags.dataDir)
		if err != nil {
			return nil, "", err
		}
		return st, "files in " + st.Path(), nil
	}
	return store.NewMemory(), "memory", nil
}
