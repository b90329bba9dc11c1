package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkerly/Mask-Fit/internal/catalog"
	"github.com/bkerly/Mask-Fit/internal/config"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fitting API server",
	Long: `Start the Mask Fit web server.
The server exposes the classification, scanning and seal check
operations over HTTP and renders the size category fit map.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (defaults to MASKFIT_PORT or 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (defaults to MASKFIT_HOST or 0.0.0.0)")
}

// resolveServeHostPort resolves host and port from flags, falling back to
// the environment-derived config.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.Config) (string, int) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if port <= 0 {
		port = cfg.Server.Port
	}
	if host == "" {
		host = cfg.Server.Host
	}
	return host, port
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	profiles, err := niosh.Load()
	if err != nil {
		return fmt.Errorf("loading size profiles: %w", err)
	}
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("loading mask catalog: %w", err)
	}

	host, port := resolveServeHostPort(cmd, cfg)
	server := web.NewServer(cfg, host, port, profiles, cat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Mask Fit API on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
