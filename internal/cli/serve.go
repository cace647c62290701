package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/server"
)

var (
	serveBind string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve exposes search, visit and the ledger listing over HTTP on the loopback
interface, for editor and launcher integrations.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "Address to bind (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := requireRoot(); err != nil {
		return err
	}
	if serveBind != "" {
		cfg.Server.Bind = serveBind
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	srv := server.New(server.Options{
		LedgerPath:   cfg.Ledger.Path,
		Root:         cfg.Root,
		Depth:        cfg.Search.Depth,
		ProjectScore: cfg.Search.ProjectScore,
		Ceiling:      cfg.Ledger.Ceiling,
	}, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.ErrOrStderr(), "flow serving on %s\n", addr)
		fmt.Fprintf(cmd.ErrOrStderr(), "  ledger: %s\n", cfg.Ledger.Path)
		fmt.Fprintf(cmd.ErrOrStderr(), "  root: %s\n", cfg.Root)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}
	slog.Info("shutting down", "addr", addr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
