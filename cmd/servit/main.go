// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/servit"
	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/ai/openai"
	"github.com/poiesic/servit/export"
	"github.com/poiesic/servit/geo"
	"github.com/poiesic/servit/httpapi"
	"github.com/poiesic/servit/ingestion"
	"github.com/poiesic/servit/reembed"
	"github.com/poiesic/servit/search"
	"github.com/poiesic/servit/storage/badger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "servit",
		Usage: "Semantic search over local service listings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log verbosity: debug, info, warn, or error",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the JSON HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
					&cli.StringFlag{
						Name:    "listen",
						Usage:   "Listen address for the HTTP server",
						Value:   ":8080",
						EnvVars: []string{"SERVIT_LISTEN"},
					},
					&cli.StringFlag{
						Name:    "seed-file",
						Usage:   "Bulk load this JSON listing file when the store is empty",
						EnvVars: []string{"SERVIT_SEED_FILE"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "chat-host",
						Usage:   "Chat service host URL for recommendations",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"CHAT_HOST"},
					},
					&cli.StringFlag{
						Name:    "chat-model",
						Usage:   "Chat model name for recommendations",
						Value:   "qwen2.5:3b",
						EnvVars: []string{"CHAT_MODEL"},
					},
					&cli.StringFlag{
						Name:    "gemini-api-key",
						Usage:   "Gemini API key (recommendations use Gemini when set)",
						EnvVars: []string{"GEMINI_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "gemini-model",
						Usage:   "Gemini model name",
						Value:   "gemini-1.5-pro",
						EnvVars: []string{"GEMINI_MODEL"},
					},
					&cli.DurationFlag{
						Name:    "recommend-every",
						Usage:   "Minimum interval between Gemini recommendation calls",
						Value:   2 * time.Second,
						EnvVars: []string{"SERVIT_RECOMMEND_EVERY"},
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Bulk load service listings from a JSON file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON listing file to load",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the store and print scored matches",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only match this category (\"All\" disables the filter)",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Only match services in this location",
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Price ceiling in rupees (0 disables the filter)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "lat",
						Usage: "User latitude for distance ranking",
					},
					&cli.Float64Flag{
						Name:  "lon",
						Usage: "User longitude for distance ranking",
					},
					&cli.BoolFlag{
						Name:  "recommend",
						Usage: "Print an AI recommendation after the results",
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "chat-host",
						Usage:   "Chat service host URL for recommendations",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"CHAT_HOST"},
					},
					&cli.StringFlag{
						Name:    "chat-model",
						Usage:   "Chat model name for recommendations",
						Value:   "qwen2.5:3b",
						EnvVars: []string{"CHAT_MODEL"},
					},
					&cli.StringFlag{
						Name:    "gemini-api-key",
						Usage:   "Gemini API key (recommendations use Gemini when set)",
						EnvVars: []string{"GEMINI_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "gemini-model",
						Usage:   "Gemini model name",
						Value:   "gemini-1.5-pro",
						EnvVars: []string{"GEMINI_MODEL"},
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print store statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
				},
			},
			{
				Name:      "export",
				Usage:     "Search the store and export the results",
				ArgsUsage: "<query>",
				Action:    exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (json or xlsx)",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout when omitted, required for xlsx)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only match this category (\"All\" disables the filter)",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Only match services in this location",
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Price ceiling in rupees (0 disables the filter)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "embeddinggemma",
						EnvVars: []string{"EMBEDDING_MODEL"},
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all service records with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./services_db",
						EnvVars: []string{"SERVIT_DB"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
						EnvVars:  []string{"EMBEDDING_MODEL"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Records embedded per service call",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Print a progress line every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Attempts per batch before giving up",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "First retry delay, doubled on every attempt",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := servit.NewDatabase(c.String("db"), servit.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if seedFile := c.String("seed-file"); seedFile != "" {
		if err := db.EnsureSeeded(ctx, seedFile); err != nil {
			return err
		}
	}

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("creating searcher: %w", err)
	}

	server, err := httpapi.NewServer(searcher, db.ServiceRepository(),
		httpapi.WithRecommender(db.Recommender()))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.ListenAndServe(ctx, c.String("listen"))
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	raws, err := ingestion.LoadFile(c.String("file"))
	if err != nil {
		return err
	}

	db, err := servit.NewDatabase(c.String("db"), servit.WithAIConfig(embeddingConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("creating ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, raws)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Loaded %d records: %d added, %d skipped, %d failed\n",
		report.Loaded, report.Added, report.Skipped, report.Failed)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("usage: servit search [options] <query>")
	}

	db, err := servit.NewDatabase(c.String("db"), servit.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("creating searcher: %w", err)
	}

	results := searcher.Search(ctx, search.SearchRequest{
		Query:    query,
		Category: c.String("category"),
		Location: c.String("location"),
		MaxPrice: c.Float64("max-price"),
		Limit:    c.Int("limit"),
	})

	if c.IsSet("lat") && c.IsSet("lon") {
		results = geo.NewRanker(nil).AnnotateAndSort(results, c.Float64("lat"), c.Float64("lon"))
	}

	if len(results) == 0 {
		fmt.Println("No services found")
		return nil
	}

	fmt.Printf("Found %d services\n", len(results))
	for i, hit := range results {
		line := fmt.Sprintf("%d: %s (%s) in %s - %s, %s [%0.3f]",
			i+1, hit.Record.Name, hit.Record.Category, hit.Record.Location,
			hit.Record.Price, hit.Record.Rating, hit.Score)
		if hit.DistanceText != "" {
			line += " - " + hit.DistanceText
		}
		fmt.Println(line)
	}

	if c.Bool("recommend") {
		category := c.String("category")
		if category == "All" {
			category = ""
		}
		text, err := db.Recommender().Recommend(ctx, &ai.RecommendationRequest{
			Query:    query,
			Category: category,
			Location: c.String("location"),
			Results:  results,
		})
		if err != nil {
			return fmt.Errorf("recommendation failed: %w", err)
		}
		fmt.Println()
		fmt.Println(text)
	}

	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := servit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	stats, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	fmt.Printf("Services: %d\n", stats.TotalServices)
	fmt.Printf("Categories (%d): %s\n", stats.Categories, strings.Join(stats.CategoryList, ", "))
	fmt.Printf("Locations (%d): %s\n", stats.Locations, strings.Join(stats.LocationList, ", "))
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("usage: servit export [options] <query>")
	}

	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "xlsx" {
		return fmt.Errorf("unsupported format %q: must be json or xlsx", format)
	}

	outPath := c.String("out")
	if format == "xlsx" && outPath == "" {
		return fmt.Errorf("xlsx export requires --out")
	}

	db, err := servit.NewDatabase(c.String("db"), servit.WithAIConfig(embeddingConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("creating searcher: %w", err)
	}

	results := searcher.Search(ctx, search.SearchRequest{
		Query:    query,
		Category: c.String("category"),
		Location: c.String("location"),
		MaxPrice: c.Float64("max-price"),
		Limit:    c.Int("limit"),
	})

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		err = export.WriteJSON(w, query, results)
	case "xlsx":
		err = export.WriteXLSX(w, query, results)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Exported %d services to %s\n", len(results), outPath)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	switch {
	case reembedConfig.BatchSize <= 0:
		return fmt.Errorf("batch-size must be positive")
	case reembedConfig.ReportInterval <= 0:
		return fmt.Errorf("report-interval must be positive")
	case reembedConfig.MaxRetries <= 0:
		return fmt.Errorf("max-retries must be positive")
	}

	aiConfig := embeddingConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewServiceRepository(backend)
	defer repo.Close()

	fmt.Fprintf(os.Stderr, "Reembedding %s with %s via %s\n\n",
		dbPath, c.String("embedding-model"), c.String("embedding-host"))

	if err := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr).Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

// aiConfigFromFlags builds the full AI configuration for commands that
// embed queries and generate recommendations.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithGeminiAPIKey(c.String("gemini-api-key")),
		ai.WithGeminiModel(c.String("gemini-model")),
	}
	if c.IsSet("recommend-every") {
		opts = append(opts, ai.WithRecommendEvery(c.Duration("recommend-every")))
	}
	return ai.NewConfig(opts...)
}

// embeddingConfigFromFlags builds the AI configuration for commands that
// only embed documents.
func embeddingConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
}

// setupLogger installs the default slog handler at the level named by
// the log-level flag. Runs as the app's Before hook, ahead of every
// command.
func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q, want debug, info, warn, or error", c.String("log-level"))
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
