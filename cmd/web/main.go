// Command marisol-web serves the Villa Marisol website.
package main

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
	"golang.org/x/sync/errgroup"

	"villamarisol.com/marisol-web/internal/config"
	"villamarisol.com/marisol-web/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:   "marisol-web",
		Short: "Villa Marisol website",
		// serve is the default action
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile, serveFlags{})
		},
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	root.AddCommand(newServeCmd(&envFile), newCatalogCmd())
	return root
}

type serveFlags struct {
	addr      string
	templates string
	public    string
	dev       bool
}

func newServeCmd(envFile *string) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "HTTP listen address (overrides MARISOL_WEB_PORT)")
	cmd.Flags().StringVar(&flags.templates, "templates", "", "templates directory")
	cmd.Flags().StringVar(&flags.public, "public", "", "public assets directory")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "reload templates and content on change")
	return cmd
}

func loadConfig(ctx context.Context, envFile string, flags serveFlags) (config.Config, error) {
	overrides := map[string]string{}
	if flags.addr != "" {
		overrides["MARISOL_WEB_PORT"] = flags.addr
	}
	if flags.templates != "" {
		overrides["MARISOL_WEB_TEMPLATES_DIR"] = flags.templates
	}
	if flags.public != "" {
		overrides["MARISOL_WEB_PUBLIC_DIR"] = flags.public
	}
	if flags.dev {
		overrides["MARISOL_WEB_DEV"] = "true"
	}
	return config.Load(ctx, config.WithEnvFile(envFile), config.WithEnvMap(overrides))
}

func runServe(ctx context.Context, envFile string, flags serveFlags) error {
	cfg, err := loadConfig(ctx, envFile, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web listening", zap.String("addr", srv.Addr), zap.Bool("dev", cfg.Server.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Server.Dev {
		g.Go(func() error {
			if err := a.render.watch(gctx); err != nil {
				// reloading is a convenience; keep serving without it
				logger.Warn("template watcher stopped", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
