package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helixrag/internal/config"
	dbRedis "github.com/kailas-cloud/helixrag/internal/db/redis"
	"github.com/kailas-cloud/helixrag/internal/ingest"
	logpkg "github.com/kailas-cloud/helixrag/internal/logger"
	"github.com/kailas-cloud/helixrag/internal/metrics"
	"github.com/kailas-cloud/helixrag/internal/repository/chunkstore"
	chiTransport "github.com/kailas-cloud/helixrag/internal/transport/chi"
	"github.com/kailas-cloud/helixrag/internal/transport/dashscope"
	openaiProv "github.com/kailas-cloud/helixrag/internal/transport/openai"
	answeruc "github.com/kailas-cloud/helixrag/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/helixrag/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/helixrag/internal/usecase/ingest"
	"github.com/kailas-cloud/helixrag/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting helixrag API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	chunks := chunkstore.New(store, cfg.Database.KeyPrefix, cfg.Providers.Dimensions)
	if err := chunks.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}
	logger.Info("Vector index ready",
		zap.String("key_prefix", cfg.Database.KeyPrefix),
		zap.Int("dimensions", cfg.Providers.Dimensions),
	)

	embedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		APIKey:     cfg.Providers.APIKey,
		BaseURL:    cfg.Providers.BaseURL,
		Model:      cfg.Providers.EmbedModel,
		Dimensions: cfg.Providers.Dimensions,
		Logger:     logger,
	})
	chat := openaiProv.NewChatClient(&openaiProv.ChatConfig{
		APIKey:      cfg.Providers.APIKey,
		BaseURL:     cfg.Providers.BaseURL,
		Model:       cfg.Providers.ChatModel,
		Temperature: cfg.Providers.Temperature,
		MaxTokens:   cfg.Providers.MaxTokens,
		Logger:      logger,
	})
	reranker := dashscope.NewRerankClient(&dashscope.RerankConfig{
		APIKey: cfg.Providers.APIKey,
		URL:    cfg.Providers.RerankURL,
		Model:  cfg.Providers.RerankModel,
		Logger: logger,
	})
	logger.Info("Providers created",
		zap.String("chat_model", cfg.Providers.ChatModel),
		zap.String("embed_model", cfg.Providers.EmbedModel),
		zap.String("rerank_model", cfg.Providers.RerankModel),
	)

	answerSvc := answeruc.NewService(embedder, chunks, reranker, chat, answeruc.Options{
		DefaultTopK:       cfg.RAG.DefaultTopK,
		RerankTopN:        cfg.RAG.RerankTopN,
		MaxContextBlocks:  cfg.RAG.MaxContextBlocks,
		UntrustedPrefixes: cfg.RAG.UntrustedPrefixes,
	}, logger)

	parser := ingest.NewParser(logger)
	ingestSvc := ingestuc.NewService(embedder, chunks, parser, ingestuc.Options{
		ChunkSize:    cfg.RAG.ChunkSize,
		ChunkOverlap: cfg.RAG.ChunkOverlap,
	}, logger)

	healthSvc := healthuc.New(store, embedder)

	server := chiTransport.NewServer(answerSvc, ingestSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
