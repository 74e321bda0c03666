package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"finance-insights-be/internal/config"
	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/implementation"
	"finance-insights-be/pkg/database"
	"finance-insights-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// newsRecord mirrors one entry of the dataset file.
type newsRecord struct {
	Title           string `json:"title"`
	Source          string `json:"source"`
	Region          string `json:"region"`
	Date            string `json:"date"`
	URL             string `json:"url"`
	DetailedSummary string `json:"detailed_summary"`
	CompactSummary  string `json:"compact_summary"`
}

func main() {
	datasetPath := flag.String("dataset", "data/news_dataset.json", "path to the news dataset JSON file")
	batchSize := flag.Int("batch", 50, "articles embedded and stored per batch")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var embedder embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		if cfg.Keys.OpenAI == "" {
			color.Red("OPENAI_API_KEY is not set")
			os.Exit(1)
		}
		embedder = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	}

	raw, err := os.ReadFile(*datasetPath)
	if err != nil {
		color.Red("Failed to read dataset %s: %v", *datasetPath, err)
		os.Exit(1)
	}

	var records []newsRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		color.Red("Failed to parse dataset: %v", err)
		os.Exit(1)
	}
	color.Cyan("Loaded %d articles from %s", len(records), *datasetPath)

	repo := implementation.NewNewsEmbeddingRepository(db)
	ctx := context.Background()

	seeded := 0
	for start := 0; start < len(records); start += *batchSize {
		end := start + *batchSize
		if end > len(records) {
			end = len(records)
		}

		articles := make([]*entity.NewsArticle, 0, end-start)
		vectors := make([][]float32, 0, end-start)

		for _, rec := range records[start:end] {
			if rec.DetailedSummary == "" {
				continue
			}
			region := rec.Region
			if region == "" {
				region = constant.RegionGlobal
			}

			vec, err := embedder.Generate(ctx, rec.DetailedSummary)
			if err != nil {
				log.Printf("Warn: embedding failed for %q: %v. Skipping.", rec.Title, err)
				continue
			}

			articles = append(articles, &entity.NewsArticle{
				Id:              uuid.New(),
				Title:           rec.Title,
				Source:          rec.Source,
				Region:          region,
				Date:            rec.Date,
				Url:             rec.URL,
				DetailedSummary: rec.DetailedSummary,
				CompactSummary:  rec.CompactSummary,
			})
			vectors = append(vectors, vec)
		}

		if len(articles) == 0 {
			continue
		}
		if err := repo.CreateBulk(ctx, articles, vectors); err != nil {
			color.Red("Batch %d-%d failed: %v", start, end, err)
			os.Exit(1)
		}
		seeded += len(articles)
		color.Green("Seeded %d/%d articles", seeded, len(records))
	}

	color.Green("✅ Done: %d articles embedded and stored", seeded)
}
