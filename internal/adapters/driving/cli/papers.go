package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Inspect and register papers",
	Long:  `Commands for reading and adding papers in the configured document store.`,
}

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers waiting for a summary",
	Args:  cobra.NoArgs,
	RunE:  runPapersList,
}

var papersShowCmd = &cobra.Command{
	Use:   "show [paper-id]",
	Short: "Show a paper and its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runPapersShow,
}

var papersAddCmd = &cobra.Command{
	Use:   "add [paper-id] [pdf-url]",
	Short: "Register a paper for summarisation",
	Args:  cobra.ExactArgs(2),
	RunE:  runPapersAdd,
}

func init() {
	papersCmd.AddCommand(papersListCmd)
	papersCmd.AddCommand(papersShowCmd)
	papersCmd.AddCommand(papersAddCmd)
	rootCmd.AddCommand(papersCmd)
}

func runPapersList(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd.Context(), RuntimeOptions{StoreOnly: true})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	papers, err := rt.Papers.ListPending(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list papers: %w", err)
	}

	if len(papers) == 0 {
		cmd.Println("No papers waiting for a summary.")
		return nil
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%d pending paper(s)", len(papers))))
	for _, p := range papers {
		cmd.Printf("  %s  %s\n", idStyle.Render(p.ID), mutedStyle.Render(p.PDFURL))
	}
	return nil
}

func runPapersShow(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd.Context(), RuntimeOptions{StoreOnly: true})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	paper, err := rt.Papers.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("paper not found: %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get paper: %w", err)
	}

	cmd.Printf("ID:  %s\n", idStyle.Render(paper.ID))
	cmd.Printf("URL: %s\n", paper.PDFURL)
	if paper.Summary == nil {
		cmd.Println(mutedStyle.Render("(not summarised yet)"))
		return nil
	}
	cmd.Println()
	cmd.Println(bodyStyle.Render(*paper.Summary))
	return nil
}

func runPapersAdd(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd.Context(), RuntimeOptions{StoreOnly: true})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	if err := rt.Papers.Add(cmd.Context(), args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("the configured store does not accept new papers")
		}
		return fmt.Errorf("failed to add paper: %w", err)
	}

	cmd.Printf("Paper %s added.\n", args[0])
	return nil
}
