package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdcfuch/FC-knowledge-bot/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Import and process text files",
	Long: `Imports each file as a document, then chunks and embeds them.
Files are processed concurrently; chunks of one file are embedded in order.
Importing a file again replaces its previous chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add a note and process it",
	RunE:  runNote,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var (
	addNoProcess bool
	noteTitle    string
	noteContent  string
	noteFile     string
)

func init() {
	addCmd.Flags().BoolVar(&addNoProcess, "no-process", false, "import without embedding")

	noteCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "note title")
	noteCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note text")
	noteCmd.Flags().StringVarP(&noteFile, "file", "f", "", "read note text from a file")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	ctx := commandContext(cmd)

	ids := make([]string, 0, len(args))
	titles := make(map[string]string, len(args))
	for _, path := range args {
		doc, err := documentService.AddFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		if _, seen := titles[doc.ID]; !seen {
			ids = append(ids, doc.ID)
		}
		titles[doc.ID] = doc.Title
		cmd.Printf("Added %s (%s)\n", doc.Title, doc.ID)
	}

	if addNoProcess {
		return nil
	}

	printer := newProgressPrinter(cmd.OutOrStdout(), titles)
	if err := documentService.ProcessAll(ctx, ids, printer.report); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	cmd.Printf("Processed %d document(s).\n", len(ids))
	return nil
}

func runNote(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	ctx := commandContext(cmd)

	content := noteContent
	if noteFile != "" {
		if content != "" {
			return errors.New("use either --content or --file, not both")
		}
		data, err := os.ReadFile(noteFile)
		if err != nil {
			return fmt.Errorf("failed to read note: %w", err)
		}
		content = string(data)
	}

	doc, err := documentService.AddText(ctx, noteTitle, content)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	cmd.Printf("Added note %s (%s)\n", doc.Title, doc.ID)

	printer := newProgressPrinter(cmd.OutOrStdout(), map[string]string{doc.ID: doc.Title})
	if err := documentService.Process(ctx, doc.ID, func(f float64) { printer.report(doc.ID, f) }); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents.")
		return nil
	}

	for i := range docs {
		state := "processed"
		if !docs[i].IsProcessed() {
			state = "unprocessed"
		}
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    Kind:  %s (%s)\n", docs[i].Kind, state)
		if docs[i].Path != "" {
			cmd.Printf("    Path:  %s\n", docs[i].Path)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("document %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("# %s\n\n", doc.Title)
	cmd.Println(strings.TrimRight(doc.Content, "\n"))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(commandContext(cmd), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}
