package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-rewriter/internal/highlight"
)

func newHighlightCmd(a *app) *cobra.Command {
	var contentType, outFile string
	var keywords []string

	cmd := &cobra.Command{
		Use:   "highlight [text...]",
		Short: "Extract the spans worth emphasising from finalized text",
		Long:  "Prints the quantitative tokens and keywords found verbatim in the text, longest first, as a JSON array. Text comes from arguments or stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if text, err = readAll(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			if len(keywords) == 0 && contentType != "" {
				ct, err := parseContentType(contentType)
				if err != nil {
					return err
				}
				p, _ := a.orchestrator.Profile(ct)
				keywords = p.Keywords
			}

			return writeJSON(cmd, outFile, highlight.Extract(text, keywords))
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Use the keyword list of this content type: "+contentTypeNames())
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "Keyword to highlight (repeatable; overrides --type)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to output JSON file (default stdout)")

	return cmd
}
