package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/observability"
	"github.com/jonathan/resume-rewriter/internal/rewriting"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"github.com/jonathan/resume-rewriter/internal/types"
)

// readRequestFile reads a request document and checks it against the request schema.
func readRequestFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	if err := schemas.ValidateRequest(content); err != nil {
		return nil, fmt.Errorf("request file %s failed schema validation: %w", path, err)
	}
	return content, nil
}

// writeJSON writes v as indented JSON to outPath, or to the command's stdout when outPath is
// empty.
func writeJSON(cmd *cobra.Command, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeResult validates a result against the result schema before writing it.
func (a *app) writeResult(cmd *cobra.Command, outPath string, result types.RewriteResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := schemas.ValidateResult(data); err != nil {
		return fmt.Errorf("result failed schema validation: %w", err)
	}

	if a.verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintResult(&result)
		if result.OK && result.Text != "" && len(result.Bullets) == 0 && !strings.Contains(result.Text, "\n") {
			printer.PrintStyleReport(result.Text, rewriting.Review(result.Text))
		}
	}
	return writeJSON(cmd, outPath, result)
}

// readAll reads r fully, used for fragments piped on stdin.
func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
