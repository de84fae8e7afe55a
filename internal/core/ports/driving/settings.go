package driving

import "github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, filling unset keys with defaults.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// SetEmbeddingProvider configures the embedding provider.
	// An empty model selects the provider's default model.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that current settings can drive the services.
	Validate() error
}
