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

	"github.com/eduspark/backend/internal/config"
	"github.com/eduspark/backend/internal/handler"
	"github.com/eduspark/backend/internal/service/ai"
	"github.com/eduspark/backend/internal/service/chat"
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

	store := chat.NewStore()

	var generator ai.Generator
	if cfg.AI.Enabled() {
		client, err := ai.NewGeminiClient(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize Gemini client: %v", err)
			log.Println("falling back to the stub provider - 请检查 GEMINI_API_KEY")
			generator = ai.NewStub()
		} else {
			log.Printf("Gemini client initialized (model=%s)", cfg.AI.Model)
			generator = client
		}
	} else {
		log.Println("Gemini 凭证未配置，使用本地 stub 回复")
		generator = ai.NewStub()
	}

	router := handler.NewRouter(store, generator)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("EduSpark chat gateway listening on %s", addr)
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
