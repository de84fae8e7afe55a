package services

import (
	"fmt"
	"os"
	"time"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// APIKeyEnvVar is consulted when no API key is configured.
const APIKeyEnvVar = "OPENAI_API_KEY"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider      = "embedding.provider"
	keyEmbedModel         = "embedding.model"
	keyEmbedBaseURL       = "embedding.base_url"
	keyEmbedAPIKey        = "embedding.api_key"
	keyEmbedTimeout       = "embedding.timeout_seconds"
	keyEmbedGlobalSpacing = "embedding.global_spacing"
	keyChunkSize          = "chunking.size"
	keyChunkOverlap       = "chunking.overlap"
	keyChunkUnit          = "chunking.unit"
	keyMaxAttempts        = "ingest.max_attempts"
	keyRetryDelay         = "ingest.retry_delay_ms"
	keySuccessDelay       = "ingest.success_delay_ms"
	keyConcurrency        = "ingest.concurrency"
	keyRetrievalLimit     = "retrieval.limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. Unset keys take their defaults and a
// missing API key falls back to the OPENAI_API_KEY environment variable.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	provider := s.getProvider(defaults.Embedding.Provider)
	model := s.configStore.GetString(keyEmbedModel)
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	apiKey := s.configStore.GetString(keyEmbedAPIKey)
	if apiKey == "" {
		apiKey = s.getenv(APIKeyEnvVar)
	}

	settings := &domain.Settings{
		Embedding: domain.EmbeddingSettings{
			Provider:      provider,
			Model:         model,
			BaseURL:       s.configStore.GetString(keyEmbedBaseURL), // empty selects the provider default
			APIKey:        apiKey,
			Timeout:       time.Duration(s.getInt(keyEmbedTimeout, int(defaults.Embedding.Timeout/time.Second))) * time.Second,
			GlobalSpacing: s.getBool(keyEmbedGlobalSpacing, defaults.Embedding.GlobalSpacing),
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
			Unit:    s.getChunkUnit(defaults.Chunking.Unit),
		},
		Ingest: domain.IngestSettings{
			MaxAttempts:  s.getInt(keyMaxAttempts, defaults.Ingest.MaxAttempts),
			RetryDelay:   s.getMillis(keyRetryDelay, defaults.Ingest.RetryDelay),
			SuccessDelay: s.getMillis(keySuccessDelay, defaults.Ingest.SuccessDelay),
			Concurrency:  s.getInt(keyConcurrency, defaults.Ingest.Concurrency),
		},
		Retrieval: domain.RetrievalSettings{
			Limit: s.getInt(keyRetrievalLimit, defaults.Retrieval.Limit),
		},
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedTimeout, int(settings.Embedding.Timeout / time.Second)},
		{keyEmbedGlobalSpacing, settings.Embedding.GlobalSpacing},
		{keyChunkSize, settings.Chunking.Size},
		{keyChunkOverlap, settings.Chunking.Overlap},
		{keyChunkUnit, string(settings.Chunking.Unit)},
		{keyMaxAttempts, settings.Ingest.MaxAttempts},
		{keyRetryDelay, int(settings.Ingest.RetryDelay / time.Millisecond)},
		{keySuccessDelay, int(settings.Ingest.SuccessDelay / time.Millisecond)},
		{keyConcurrency, settings.Ingest.Concurrency},
		{keyRetrievalLimit, settings.Retrieval.Limit},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only persist a key that did not come from the environment.
	if settings.Embedding.APIKey != "" && settings.Embedding.APIKey != s.getenv(APIKeyEnvVar) {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if apiKey == "" {
		apiKey = settings.Embedding.APIKey
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s: %w", provider, domain.ErrMissingCredential)
	}

	settings.Embedding.Provider = provider
	if model != "" {
		settings.Embedding.Model = model
	} else {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[provider]
	}
	if provider.RequiresAPIKey() {
		settings.Embedding.APIKey = apiKey
	}

	return s.Save(settings)
}

// Validate checks that current settings can drive the services.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %s: %w", settings.Embedding.Provider, domain.ErrMissingCredential)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if !s.isSet(key) {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if !s.isSet(key) {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

// isSet reports whether key holds a value. An empty string counts as unset.
func (s *SettingsService) isSet(key string) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return false
	}
	str, isString := val.(string)
	return !isString || str != ""
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyEmbedProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getChunkUnit(defaultVal domain.ChunkUnit) domain.ChunkUnit {
	unit := domain.ChunkUnit(s.configStore.GetString(keyChunkUnit))
	if !unit.IsValid() {
		return defaultVal
	}
	return unit
}
