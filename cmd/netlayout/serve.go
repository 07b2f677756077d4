package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netlayout/internal/handler"
	"netlayout/internal/metrics"
	"netlayout/internal/repository/sqlite"
	"netlayout/internal/service"
	"netlayout/internal/watcher"
)

func serveCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
		open   []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout sessions over HTTP",
		Long: "Serve layout sessions over HTTP with server-sent frame streams.\n" +
			"Documents passed with --open (and the configured watch path) are opened\n" +
			"at startup and reloaded into their sessions when the file changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			if cfg.Watch.Path != "" {
				open = append(open, cfg.Watch.Path)
			}

			log.Println("Starting netlayout server...")
			if path != "" {
				log.Printf("Config loaded: %s", path)
			}

			reg := metrics.NewRegistry()

			// Initialize SQLite repository
			repo, err := sqlite.New(cfg.Database.Path, sqlite.WithSaveObserver(reg.RecordSnapshotSave))
			if err != nil {
				return err
			}
			defer repo.Close()
			log.Printf("Database opened: %s", cfg.Database.Path)

			eventBus := service.NewEventBus()
			svc := service.NewLayoutService(cfg, repo, reg, eventBus)
			defer svc.Shutdown()

			// Log lifecycle events
			eventChan := make(chan service.Event, 100)
			eventBus.Subscribe(eventChan)
			go func() {
				for event := range eventChan {
					log.Printf("Event %s (session %s)", event.Type, event.SessionID)
				}
			}()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			for _, p := range open {
				doc, err := watcher.ReadDocument(p)
				if err != nil {
					return err
				}
				if _, err := svc.Open(ctx, doc); err != nil {
					return err
				}
			}
			if len(open) > 0 {
				w := watcher.New(open, watcher.ReloadDocuments(svc)).WithDebounce(cfg.Watch.Debounce.Duration())
				go func() {
					if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Printf("Watcher stopped: %v", err)
					}
				}()
			}

			// Setup routes
			mux := http.NewServeMux()
			handler.NewLayoutHandler(svc, repo).Register(mux)
			mux.Handle("GET /metrics", reg.Handler())
			mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			// Apply middleware
			finalHandler := handler.Chain(mux,
				handler.Recover,
				handler.CORS,
				handler.Logger,
				handler.Metrics(reg),
			)

			// No write timeout: frame streams stay open for the life of a session
			server := &http.Server{
				Addr:        cfg.Server.Addr,
				Handler:     finalHandler,
				ReadTimeout: 10 * time.Second,
				IdleTimeout: 60 * time.Second,
			}

			// Start server in goroutine
			go func() {
				log.Printf("Server listening on %s", cfg.Server.Addr)
				if err := server.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatalf("Server error: %v", err)
				}
			}()

			// Wait for interrupt signal
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Println("Shutting down server...")
			cancel()

			// Close sessions first so open streams end
			svc.Shutdown()

			// Graceful shutdown with timeout
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown error: %v", err)
			}

			log.Println("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.Flags().StringArrayVar(&open, "open", nil, "Document to open and watch at startup (repeatable)")

	return cmd
}
