package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/types"
)

type rewriteFlags struct {
	contentType string
	inFile      string
	outFile     string
	jobFile     string
	hints       types.Hints
	contract    types.FormatContract
}

func newRewriteCmd(a *app) *cobra.Command {
	f := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite [fragment...]",
		Short: "Rewrite resume fragments of one content type",
		Long: "Rewrites fragments into a work bullet, work profile, consulting summary, tech summary or bullet batch. " +
			"Fragments come from arguments, a request file (--in) or stdin. Without generation enabled the fragments are fitted locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRewrite(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.contentType, "type", "t", "", "Content type: "+contentTypeNames())
	cmd.Flags().StringVarP(&f.inFile, "in", "i", "", "Path to a RewriteRequest JSON file")
	cmd.Flags().StringVarP(&f.outFile, "out", "o", "", "Path to output RewriteResult JSON file (default stdout)")
	cmd.Flags().StringVar(&f.jobFile, "job-description", "", "Path to a job description (text or HTML) used as a hint")
	cmd.Flags().StringVar(&f.hints.Role, "role", "", "Role title hint")
	cmd.Flags().StringVar(&f.hints.Company, "company", "", "Company hint")
	cmd.Flags().StringVar(&f.hints.Track, "track", "", "Career track hint")
	cmd.Flags().StringVar(&f.hints.TargetRole, "target-role", "", "Target role hint")
	cmd.Flags().IntVar(&f.contract.MaxChars, "max-chars", 0, "Per-line or per-bullet character cap (0 = profile default)")
	cmd.Flags().IntVar(&f.contract.MaxTotalChars, "max-total-chars", 0, "Whole-text character cap (0 = profile default)")
	cmd.Flags().IntVar(&f.contract.MinLines, "min-lines", 0, "Minimum line count (0 = profile default)")
	cmd.Flags().IntVar(&f.contract.MaxLines, "max-lines", 0, "Maximum line count (0 = profile default)")
	cmd.Flags().IntVar(&f.contract.BulletCount, "bullet-count", 0, "Exact bullet count for bullet_batch (0 = one per input bullet)")

	return cmd
}

func (a *app) runRewrite(cmd *cobra.Command, f *rewriteFlags, args []string) error {
	req, err := f.request(cmd, args)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid rewrite request: %w", err)
	}

	result := a.orchestrator.Rewrite(cmd.Context(), a.settings.GenerationSettings(), req)
	return a.writeResult(cmd, f.outFile, result)
}

// request assembles the RewriteRequest. Command-line flags override values from --in.
func (f *rewriteFlags) request(cmd *cobra.Command, args []string) (types.RewriteRequest, error) {
	var req types.RewriteRequest
	if f.inFile != "" {
		content, err := readRequestFile(f.inFile)
		if err != nil {
			return req, err
		}
		if err := json.Unmarshal(content, &req); err != nil {
			return req, fmt.Errorf("failed to unmarshal rewrite request JSON: %w", err)
		}
	}

	if f.contentType != "" {
		ct, err := parseContentType(f.contentType)
		if err != nil {
			return req, err
		}
		req.ContentType = ct
	}
	if req.ContentType == "" {
		return req, fmt.Errorf("a content type is required (--type or content_type in --in)")
	}

	if len(args) > 0 {
		req.Fragments = args
	}
	if len(req.Fragments) == 0 {
		text, err := readAll(cmd.InOrStdin())
		if err != nil {
			return req, err
		}
		req.Fragments = []string{text}
	}

	mergeHints(&req.Hints, f.hints)
	if f.jobFile != "" {
		content, err := os.ReadFile(f.jobFile)
		if err != nil {
			return req, fmt.Errorf("failed to read job description: %w", err)
		}
		req.Hints.JobDescription = string(content)
	}

	if f.contract != (types.FormatContract{}) {
		contract := f.contract
		if req.Contract != nil {
			contract = contract.Merge(*req.Contract)
		}
		req.Contract = &contract
	}
	return req, nil
}

func mergeHints(dst *types.Hints, src types.Hints) {
	if src.Role != "" {
		dst.Role = src.Role
	}
	if src.Company != "" {
		dst.Company = src.Company
	}
	if src.Track != "" {
		dst.Track = src.Track
	}
	if src.TargetRole != "" {
		dst.TargetRole = src.TargetRole
	}
}

// contentTypeNames lists the accepted --type values.
func contentTypeNames() string {
	names := make([]string, 0, len(types.ContentTypes()))
	for _, ct := range types.ContentTypes() {
		names = append(names, string(ct))
	}
	return strings.Join(names, ", ")
}

func parseContentType(s string) (types.ContentType, error) {
	for _, ct := range types.ContentTypes() {
		if string(ct) == s {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unsupported content type: %s (want one of %s)", s, contentTypeNames())
}
