package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docai/api/internal/ai"
	"docai/api/internal/app"
	"docai/api/internal/archive"
	"docai/api/internal/authpw"
	"docai/api/internal/config"
	"docai/api/internal/docgen"
	"docai/api/internal/export"
	"docai/api/internal/flows"
	"docai/api/internal/recents"
	"docai/api/internal/search"
	"docai/api/internal/session"
	"docai/api/internal/storage"
	"docai/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		log.Fatalf("failed to create archive dir: %v", err)
	}

	dataStore := store.NewPostgresStore(db)
	archiveService := archive.New(cfg.ArchiveDir)

	redisStore, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisStore.Close()
	recentsStore := recents.NewStore(redisStore.Client())

	pgfts := search.NewPgFTS(db)
	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
	}
	searchService := search.NewService(meiliClient, pgfts)
	if meiliClient != nil {
		defer meiliClient.Close()
	}

	client, err := newAIClient(ctx, cfg)
	if err != nil {
		log.Fatalf("ai client setup failed: %v", err)
	}
	pipeline := docgen.NewPipeline(client, cfg.ImageTimeout, cfg.ImageParallel)
	flowService := flows.New(client)
	exportService := export.NewService()
	authService := authpw.NewService(dataStore)

	var service *app.Service
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		objectStore, err := storage.NewStore(ctx, storage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("object storage setup failed: %v", err)
		}
		service = app.New(cfg, dataStore, redisStore, authService, pipeline, flowService,
			exportService, recentsStore, objectStore, searchService, archiveService)
	} else {
		log.Printf("Object storage not configured, saved exports disabled")
		service = app.New(cfg, dataStore, redisStore, authService, pipeline, flowService,
			exportService, recentsStore, nil, searchService, archiveService)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("DocAI API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newAIClient(ctx context.Context, cfg config.Config) (ai.Client, error) {
	switch cfg.AIProvider {
	case "openai":
		return ai.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	default:
		return ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ImageModel)
	}
}
