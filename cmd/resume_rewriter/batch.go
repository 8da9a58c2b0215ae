package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/observability"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"github.com/jonathan/resume-rewriter/internal/types"
)

// batchFile is the document read by the batch command.
type batchFile struct {
	Requests []types.RewriteRequest `json:"requests"`
}

func newBatchCmd(a *app) *cobra.Command {
	var inFile, outFile string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rewrite many requests concurrently",
		Long:  "Reads {\"requests\": [RewriteRequest...]} and rewrites them with bounded concurrency. Results keep request order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := os.ReadFile(inFile)
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}

			var batch batchFile
			if err := json.Unmarshal(content, &batch); err != nil {
				return fmt.Errorf("failed to unmarshal batch JSON: %w", err)
			}
			if len(batch.Requests) == 0 {
				return fmt.Errorf("batch file %s has no requests", inFile)
			}

			limit := a.cfg.Generation.Concurrency
			if cmd.Flags().Changed("concurrency") {
				limit = concurrency
			}
			results := a.orchestrator.RewriteAll(cmd.Context(), a.settings.GenerationSettings(), batch.Requests, limit)

			for i, result := range results {
				data, err := json.Marshal(result)
				if err != nil {
					return fmt.Errorf("failed to marshal result %d: %w", i, err)
				}
				if err := schemas.ValidateResult(data); err != nil {
					return fmt.Errorf("result %d failed schema validation: %w", i, err)
				}
			}

			if a.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(results)
			}
			return writeJSON(cmd, outFile, map[string][]types.RewriteResult{"results": results})
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to batch JSON file (required)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel generation calls (default from config)")
	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	return cmd
}
