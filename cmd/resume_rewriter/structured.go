package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/types"
)

func newStructuredCmd(a *app) *cobra.Command {
	var inFile, outFile string

	cmd := &cobra.Command{
		Use:   "structured",
		Short: "Rewrite a summary and labeled fields in one call",
		Long:  "Rewrites a summary plus labeled fields (e.g. Sectors, Capabilities) from a StructuredRequest JSON file. Labels and their order are always preserved.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := readRequestFile(inFile)
			if err != nil {
				return err
			}

			var req types.StructuredRequest
			if err := json.Unmarshal(content, &req); err != nil {
				return fmt.Errorf("failed to unmarshal structured request JSON: %w", err)
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid structured request: %w", err)
			}

			result := a.orchestrator.RewriteStructured(cmd.Context(), a.settings.GenerationSettings(), req)
			return a.writeResult(cmd, outFile, result)
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to StructuredRequest JSON file (required)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output RewriteResult JSON file (default stdout)")
	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	return cmd
}
