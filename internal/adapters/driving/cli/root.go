// Package cli provides the kbot command line interface built on cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driven"
	"github.com/rdcfuch/FC-knowledge-bot/internal/core/ports/driving"
	"github.com/rdcfuch/FC-knowledge-bot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services groups the ports the commands drive.
type Services struct {
	Document    driving.DocumentService
	Retrieval   driving.RetrievalService
	Index       driving.IndexService
	Settings    driving.SettingsService
	ConfigStore driven.ConfigStore
}

// Paths holds the directory flags handed to the bootstrap function.
type Paths struct {
	DataDir   string
	ConfigDir string
}

// BootstrapFunc builds the services once flags are parsed. The returned
// cleanup runs after the command finishes.
type BootstrapFunc func(ctx context.Context, paths Paths) (*Services, func(), error)

var (
	documentService  driving.DocumentService
	retrievalService driving.RetrievalService
	indexService     driving.IndexService
	settingsService  driving.SettingsService
	configStore      driven.ConfigStore

	bootstrap BootstrapFunc
	cleanup   func()

	verbose   bool
	dataDir   string
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "kbot",
	Short: "Local knowledge base with semantic retrieval",
	Long: `kbot imports text files and notes, splits them into overlapping chunks,
embeds every chunk and answers questions with the most similar passages.

Embeddings come from OpenAI (set OPENAI_API_KEY or 'kbot settings set
embedding.api_key ...') or a local Ollama instance.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "database directory (default ~/.kbot/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.kbot)")
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	documentService = s.Document
	retrievalService = s.Retrieval
	indexService = s.Index
	settingsService = s.Settings
	configStore = s.ConfigStore
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	services, done, err := bootstrap(cmd.Context(), Paths{DataDir: dataDir, ConfigDir: configDir})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}

// commandContext returns the command's context, falling back to Background
// for commands executed without ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
