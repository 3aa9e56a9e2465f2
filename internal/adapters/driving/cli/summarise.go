package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

var summariseJSON bool

var summariseCmd = &cobra.Command{
	Use:     "summarise [paper-id]",
	Aliases: []string{"summarize"},
	Short:   "Summarise pending papers",
	Long: `Summarises every paper that has no summary yet.

If a paper ID is given, only that paper is summarised and any existing
summary is overwritten. Papers that fail at any stage are reported and
skipped; they stay pending for the next run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarise,
}

func init() {
	summariseCmd.Flags().BoolVar(&summariseJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(summariseCmd)
}

func runSummarise(cmd *cobra.Command, args []string) error {
	var failed []domain.DocumentRun
	rt, err := openRuntime(cmd.Context(), RuntimeOptions{
		OnRun: func(run domain.DocumentRun) {
			if !run.Succeeded() {
				failed = append(failed, run)
			}
		},
	})
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	var report *domain.Report
	if len(args) > 0 {
		report, err = rt.Summarise.SummariseOne(cmd.Context(), args[0])
	} else {
		report, err = rt.Summarise.SummariseAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("summarisation failed: %w", err)
	}

	if summariseJSON {
		return outputReportJSON(cmd, report)
	}
	outputReport(cmd, report, failed)
	return nil
}

func outputReportJSON(cmd *cobra.Command, report *domain.Report) error {
	if report.Summaries == nil {
		report.Summaries = []domain.PipelineOutcome{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReport(cmd *cobra.Command, report *domain.Report, failed []domain.DocumentRun) {
	cmd.Println(titleStyle.Render(report.Message))
	cmd.Println()

	for i, s := range report.Summaries {
		cmd.Printf("  [%d] %s\n", i+1, idStyle.Render(s.PaperID))
		cmd.Println(bodyStyle.Render(s.Summary))
		cmd.Println()
	}

	if len(failed) > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("%d paper(s) failed:", len(failed))))
		for _, run := range failed {
			cmd.Printf("  %s %s %s\n",
				errorStyle.Render("x"),
				run.PaperID,
				mutedStyle.Render(fmt.Sprintf("(%s: %v)", run.FailedAt, run.Err)))
		}
		cmd.Println()
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("%d summarised, %d failed", len(report.Summaries), len(failed))))
}
