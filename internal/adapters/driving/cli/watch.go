package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driving/watch"
)

var watchNoSync bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the knowledge base in sync with a directory",
	Long: `Imports every .txt and .md file below dir, then follows changes until
interrupted. Created or modified files are processed again; removed files
are deleted with their chunks. Hidden files and directories are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoSync, "no-sync", false, "skip the initial import of existing files")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	ctx := commandContext(cmd)

	w, err := watch.New(documentService, args[0])
	if err != nil {
		return err
	}

	if !watchNoSync {
		n, err := w.Sync(ctx)
		if err != nil {
			return fmt.Errorf("initial sync failed: %w", err)
		}
		cmd.Printf("Imported %d file(s) from %s\n", n, w.Root())
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Root())
	return w.Run(ctx, func(c watch.Change) {
		if c.Err != nil {
			cmd.PrintErrf("%s %s failed: %v\n", c.Kind, c.Path, c.Err)
			return
		}
		cmd.Printf("%s %s\n", c.Kind, c.Path)
	})
}
