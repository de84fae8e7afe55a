package main

import (
	"context"
	"fmt"

	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/config/file"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/embedding/ollama"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/embedding/openai"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/embedding/openaisdk"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/embedding/ratelimit"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/storage/sqlite"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driven/vector/flat"
	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driving/cli"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/services"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
	"github.com/rdcfuch/FC-knowledge-bot/internal/normalisers"
	"github.com/rdcfuch/FC-knowledge-bot/internal/normalisers/markdown"
	"github.com/rdcfuch/FC-knowledge-bot/internal/normalisers/plaintext"
	"github.com/rdcfuch/FC-knowledge-bot/internal/postprocessors/chunker"
)

// bootstrap opens the stores, builds the embedder from settings and
// rebuilds the vector index from persisted chunks.
func bootstrap(ctx context.Context, paths cli.Paths) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(paths.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config %s: %w", configStore.Path(), err)
	}

	store, err := sqlite.NewStore(paths.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("Database: %s", store.Path())

	embedder, err := newEmbedder(settings)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, nil, err
	}

	dimension := 0
	if embedder != nil {
		dimension = embedder.Dimensions()
	}
	index := flat.New(dimension)

	var ingestion driving.IngestionService
	if embedder != nil {
		ingestion = services.NewIngestionPipeline(
			chunker.FromSettings(settings.Chunking),
			embedder,
			store.ChunkStore(),
			index,
			settings.Ingest,
		)
	}

	documentService := services.NewDocumentService(store.DocumentStore(), store.ChunkStore(), index, ingestion)
	documentService.SetConcurrency(settings.Ingest.Concurrency)
	documentService.SetNormaliser(normalisers.NewRegistry(plaintext.New(), markdown.New()))

	retrievalService := services.NewRetrievalService(embedder, index, store.ChunkStore())
	retrievalService.SetDefaultLimit(settings.Retrieval.Limit)

	indexService := services.NewIndexService(store.ChunkStore(), index)
	n, err := indexService.Rebuild(ctx)
	if err != nil {
		// Mismatched vectors are skipped; everything else that loaded is searchable.
		logger.Warn("Rebuilding vector index (%d loaded): %v", n, err)
	} else {
		logger.Debug("Loaded %d vectors", n)
	}

	cleanup := func() {
		if embedder != nil {
			embedder.Close() //nolint:errcheck
		}
		index.Close() //nolint:errcheck
		store.Close() //nolint:errcheck
	}

	return &cli.Services{
		Document:    documentService,
		Retrieval:   retrievalService,
		Index:       indexService,
		Settings:    settingsService,
		ConfigStore: configStore,
	}, cleanup, nil
}

// newEmbedder builds the configured embedding provider. It returns a nil
// service when the provider lacks credentials, leaving the commands that
// need embeddings to report domain.ErrEmbeddingUnavailable.
func newEmbedder(settings *domain.Settings) (driven.EmbeddingService, error) {
	cfg := settings.Embedding
	if !cfg.IsConfigured() {
		logger.Debug("Embedding provider %s is not configured", cfg.Provider)
		return nil, nil //nolint:nilnil // absence is a valid state
	}

	var (
		embedder driven.EmbeddingService
		err      error
	)
	switch cfg.Provider {
	case domain.AIProviderOpenAI:
		embedder, err = openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case domain.AIProviderOpenAISDK:
		embedder, err = openaisdk.NewEmbeddingService(openaisdk.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	case domain.AIProviderOllama:
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s embedder: %w", cfg.Provider, err)
	}

	if cfg.GlobalSpacing {
		embedder = ratelimit.New(embedder, settings.Ingest.SuccessDelay)
	}
	return embedder, nil
}
