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

	"github.com/joho/godotenv"

	"github.com/sjsu-mhc/concierge/internal/analysis/crisis"
	"github.com/sjsu-mhc/concierge/internal/config"
	"github.com/sjsu-mhc/concierge/internal/handler"
	"github.com/sjsu-mhc/concierge/internal/service/assistant"
	"github.com/sjsu-mhc/concierge/internal/service/mediator"
	"github.com/sjsu-mhc/concierge/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := session.NewStore()
	store.StartSweeper(ctx, cfg.Session.TTL, cfg.Session.SweepInterval)

	detector := crisis.NewDetector()

	gateway := buildGateway(ctx, cfg)

	mediatorSvc := mediator.New(store, detector, gateway)

	router := handler.NewRouter(store, detector, gateway, mediatorSvc)

	startServer(ctx, cfg.Server, router)
}

// buildGateway selects the assistant backend: the orchestrate agent when a
// URL is configured, otherwise a direct Ark model when credentials exist,
// otherwise the HTTP gateway's built-in mock responses.
func buildGateway(ctx context.Context, cfg *config.Config) assistant.Gateway {
	if cfg.Assistant.Configured() {
		log.Printf("assistant gateway: orchestrate agent at %s", cfg.Assistant.AgentURL)
		return assistant.NewHTTPGateway(assistant.HTTPConfig{
			AgentURL:     cfg.Assistant.AgentURL,
			APIKey:       cfg.Assistant.APIKey,
			Timeout:      cfg.Assistant.Timeout,
			ProbeTimeout: cfg.Assistant.ProbeTimeout,
		})
	}

	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize Ark chat model: %v", err)
		} else {
			modelGateway, err := assistant.NewModelGateway(ctx, chatModel)
			if err != nil {
				log.Printf("warning: failed to build model gateway: %v", err)
			} else {
				log.Println("assistant gateway: Ark chat model")
				return modelGateway
			}
		}
	}

	log.Println("assistant gateway: no agent URL or Ark credentials, using mock responses")
	return assistant.NewHTTPGateway(assistant.HTTPConfig{})
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mental Health Concierge API listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
