// Command triage runs the classification pipeline over a CSV dataset of
// support emails and exports the ranked results.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/ignite/support-triage/internal/config"
	"github.com/ignite/support-triage/internal/ingest"
	"github.com/ignite/support-triage/internal/pipeline"
	"github.com/ignite/support-triage/internal/reply"
	"github.com/ignite/support-triage/internal/repository/postgres"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
		inputPath  = flag.String("input", "", "input CSV (overrides dataset.path)")
		outputPath = flag.String("output", "", "output CSV (overrides dataset.output_path)")
		store      = flag.Bool("store", false, "persist results to the configured database")
	)
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *inputPath != "" {
		cfg.Dataset.Path = *inputPath
	}
	if *outputPath != "" {
		cfg.Dataset.OutputPath = *outputPath
	}
	if cfg.Dataset.Path == "" {
		log.Fatalf("No input dataset: set dataset.path, DATASET_PATH, or -input")
	}

	records, err := ingest.ReadEmails(cfg.Dataset.Path)
	if err != nil {
		log.Fatalf("Failed to read dataset: %v", err)
	}
	log.Printf("Rows before filter: %d", len(records))

	pipe := pipeline.New(buildDrafter(cfg), cfg.Pipeline.Workers)
	ctx := context.Background()
	result := pipe.Process(ctx, records)
	log.Printf("Rows after filter: %d", result.Relevant)
	for _, recErr := range result.Errors {
		log.Printf("Dropped record: %v", recErr)
	}

	if err := ingest.WriteClassified(cfg.Dataset.OutputPath, result.Emails); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Processed %d emails. Saved -> %s", len(result.Emails), cfg.Dataset.OutputPath)

	if *store {
		if cfg.Database.URL == "" {
			log.Fatalf("-store requires database.url or DATABASE_URL")
		}
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		repo := postgres.NewEmailRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		if err := repo.SaveBatch(ctx, result.Emails); err != nil {
			log.Fatalf("Failed to store batch: %v", err)
		}
		log.Printf("Stored %d emails", len(result.Emails))
	}
}

// buildDrafter assembles the reply strategy from configuration, mirroring
// the API server wiring.
func buildDrafter(cfg *config.Config) reply.Drafter {
	template := reply.NewTemplateDrafter()
	if cfg.Reply.Strategy != config.StrategyLLM {
		return template
	}

	var primary reply.Drafter = reply.NewLLMDrafter(
		cfg.Reply.AnthropicAPIKey, cfg.Reply.OpenAIAPIKey, cfg.Reply.Model, cfg.Reply.Timeout())
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		primary = reply.NewCachedDrafter(primary, rdb, cfg.Redis.DraftCacheTTL())
	}
	return reply.NewFallbackDrafter(primary, template, cfg.Reply.Timeout())
}
