package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tubebrief/features/summary"
	"tubebrief/internal/adapter/openrouter"
	"tubebrief/internal/adapter/youtube"
	"tubebrief/internal/config"
	"tubebrief/internal/middleware"
	"tubebrief/internal/text"
	"tubebrief/internal/view"
)

type App struct {
	Handler        http.Handler
	SummaryService *summary.Service

	port int
}

func New(cfg *config.Config, db *sql.DB, embedder text.Embedder) (*App, error) {
	views, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("view renderer error: %w", err)
	}

	splitter, err := text.NewSemanticSplitter(embedder)
	if err != nil {
		return nil, fmt.Errorf("semantic splitter error: %w", err)
	}

	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.LLMModel)
	llm.SetBaseURL(cfg.OpenRouterBaseURL)

	fetcher := youtube.NewClient()
	fetcher.SetTimeout(time.Duration(cfg.TranscriptTimeoutSecond) * time.Second)

	// Feature: Summary
	repo := summary.NewPostgresRepo(db)
	chain := summary.NewChain(llm)
	service := summary.NewService(fetcher, splitter, chain, repo)
	handler := summary.NewHandler(service, views,
		time.Duration(cfg.PipelineTimeoutSeconds)*time.Second)

	// Routes
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", middleware.CorrelationID(http.HandlerFunc(handler.Index)))
	mux.Handle("POST /summaries", middleware.CorrelationID(http.HandlerFunc(handler.Create)))
	mux.Handle("GET /summaries", middleware.CorrelationID(http.HandlerFunc(handler.List)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{
		Handler:        mux,
		SummaryService: service,
		port:           cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
