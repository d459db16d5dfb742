package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-detective/internal/handler"
	"github.com/naka-gawa/repo-detective/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyze API over HTTP",
	Long: `Serves POST /api/analyze. GITHUB_TOKEN must be set for analysis requests
to succeed; without it they fail with a configuration error. The admin fix
endpoint is mounted when admin credentials are configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The server always logs; --verbose only matters for analyze.
		logger := log.New(os.Stderr, "", log.LstdFlags)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}
		if cfg.GitHubToken == "" {
			logger.Println("WARNING: GITHUB_TOKEN is not set, analyze requests will fail.")
		}

		analyzer, err := newAnalyzer(cfg, logger)
		if err != nil {
			return err
		}
		routerCfg := handler.RouterConfig{
			Analyze: handler.NewAnalyzeHandler(analyzer, cfg.GitHubToken != "", logger),
			Logger:  logger,
		}
		if cfg.AdminEnabled() {
			routerCfg.Admin = handler.NewAdminHandler(usecase.NewFixer(logger), logger)
			routerCfg.AdminCredentials = map[string]string{cfg.AdminUser: cfg.AdminPassword}
		}

		server := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler.NewRouter(routerCfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			logger.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		logger.Printf("Starting repo-detective server on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address, overrides listen_addr and PORT")
}
