// Package cli implements the cobra command tree. Commands talk to the
// core through the driving ports; the concrete services are wired once
// in initServices and held in package variables so tests can swap them
// for mocks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesage/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/fetch"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/media/ytdlp"
	openaispeech "github.com/custodia-labs/sitesage/internal/adapters/driven/speech/openai"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/sitesage/internal/adapters/driven/transcript/youtubeapi"
	"github.com/custodia-labs/sitesage/internal/chunker"
	"github.com/custodia-labs/sitesage/internal/core/ports/driven"
	"github.com/custodia-labs/sitesage/internal/core/ports/driving"
	"github.com/custodia-labs/sitesage/internal/core/services"
	"github.com/custodia-labs/sitesage/internal/crawler"
	"github.com/custodia-labs/sitesage/internal/logger"
	"github.com/custodia-labs/sitesage/internal/runner"
)

var (
	verbose    bool
	configPath string
)

// Services used by the commands. Wired in initServices, replaced by
// mocks in tests.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
	jobService    driving.JobService
)

// taskRunner tracks background transcription jobs so Execute can wait
// for them before the process exits.
var taskRunner *services.TaskRunner

// cleanup closes resources opened during wiring. Set by initServices.
var cleanup func()

var rootCmd = &cobra.Command{
	Use:   "sitesage",
	Short: "Ingest websites, videos and PDFs into a local knowledge base",
	Long: `sitesage crawls websites, pulls video transcripts and extracts PDF
text, chunks the content, embeds it and stores it locally. The query
command retrieves the most relevant chunks for a question.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// Execute runs the command tree, waits for any background jobs spawned
// by it, then releases wired resources.
func Execute() error {
	err := rootCmd.Execute()
	if taskRunner != nil {
		taskRunner.Wait()
	}
	if cleanup != nil {
		cleanup()
	}
	return err
}

// initServices builds the full adapter/service graph from configuration.
// Commands that only need a subset still get the whole graph; wiring is
// cheap and keeps the commands uniform.
func initServices() error {
	if ingestService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := file.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open chunk store: %w", err)
	}

	var embedder driven.EmbeddingService
	var stt driven.SpeechToText
	if cfg.Embedding.APIKey != "" {
		client, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
		if err != nil {
			store.Close()
			return fmt.Errorf("init embedding client: %w", err)
		}
		embedder = client

		transcriber, err := openaispeech.NewTranscriber(openaispeech.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
		})
		if err != nil {
			store.Close()
			return fmt.Errorf("init transcriber: %w", err)
		}
		stt = transcriber
	} else {
		logger.Warn("No embedding API key configured, ingestion and query will fail")
	}

	tok, err := tiktoken.New()
	if err != nil {
		store.Close()
		return fmt.Errorf("init tokenizer: %w", err)
	}
	splitter, err := chunker.New(tok,
		chunker.WithMaxTokens(cfg.Chunker.MaxTokens),
		chunker.WithOverlap(cfg.Chunker.Overlap),
	)
	if err != nil {
		store.Close()
		return fmt.Errorf("init chunker: %w", err)
	}

	fetcher := fetch.New(
		fetch.WithTimeout(cfg.FetchTimeoutDuration()),
		fetch.WithRequestsPerSecond(cfg.Crawler.RequestsPerSec),
	)

	taskRunner = services.NewTaskRunner()
	jobs := memory.NewJobStore()

	ingestService = services.NewIngestOrchestrator(services.IngestConfig{
		Store:        store,
		Embedder:     embedder,
		Crawler:      crawler.New(fetcher),
		Splitter:     splitter,
		Transcripts:  youtubeapi.New(),
		SpeechToText: stt,
		Audio:        ytdlp.New(runner.New()),
		Jobs:         jobs,
		Tasks:        taskRunner,
		DataDir:      cfg.DataDir,
		MaxDepth:     cfg.Crawler.MaxDepth,
		MaxPages:     cfg.Crawler.MaxPages,
	})
	queryService = services.NewRetriever(store, embedder)
	jobService = services.NewJobPoller(jobs)

	cleanup = func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store: %v", err)
		}
	}
	return nil
}
