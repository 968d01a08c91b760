package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/support-triage/internal/api"
	"github.com/ignite/support-triage/internal/config"
	"github.com/ignite/support-triage/internal/pipeline"
	"github.com/ignite/support-triage/internal/pkg/distlock"
	"github.com/ignite/support-triage/internal/reply"
	"github.com/ignite/support-triage/internal/repository/postgres"
	"github.com/ignite/support-triage/internal/service/triage"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadFromEnv(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatalf("DATABASE_URL is required for the API server")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to reach database: %v", err)
	}
	cancel()

	repo := postgres.NewEmailRepo(db)
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}

	drafter := buildDrafter(cfg, rdb)
	svc := triage.NewService(pipeline.New(drafter, cfg.Pipeline.Workers), repo)
	processLock := distlock.NewLock(rdb, db, "dataset-process", 10*time.Minute)
	server := api.NewServer(cfg.Server, api.NewHandlers(svc, cfg.Dataset.Path, processLock))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// buildDrafter assembles the reply strategy from configuration. The LLM
// strategy always carries the deterministic template as its fallback and,
// when Redis is enabled, a draft cache in front of the generation call.
func buildDrafter(cfg *config.Config, rdb *redis.Client) reply.Drafter {
	template := reply.NewTemplateDrafter()
	if cfg.Reply.Strategy != config.StrategyLLM {
		return template
	}

	var primary reply.Drafter = reply.NewLLMDrafter(
		cfg.Reply.AnthropicAPIKey, cfg.Reply.OpenAIAPIKey, cfg.Reply.Model, cfg.Reply.Timeout())
	if rdb != nil {
		primary = reply.NewCachedDrafter(primary, rdb, cfg.Redis.DraftCacheTTL())
	}
	return reply.NewFallbackDrafter(primary, template, cfg.Reply.Timeout())
}
