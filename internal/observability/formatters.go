// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/rewriting"
	"github.com/jonathan/resume-rewriter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// lineWidth is the widest content line that fits inside a box
	lineWidth = boxWidth - 4
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, lineWidth)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of one rewrite result.
func (p *Printer) PrintResult(result *types.RewriteResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	status := "✓"
	if !result.OK {
		status = "⚠"
	}
	sb.WriteString(fmt.Sprintf("State:    %s %s\n", status, result.State))
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", result.Error))
	}
	sb.WriteString("\n")

	switch {
	case result.ContentType == types.ContentStructured:
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", result.Summary))
		for _, f := range result.Fields {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", f.Label, f.Value))
		}
	case len(result.Bullets) > 0:
		writeList(&sb, result.Bullets, "bullets")
	default:
		for _, line := range strings.Split(result.Text, "\n") {
			sb.WriteString(line + "\n")
		}
	}

	if len(result.Highlights) > 0 {
		sb.WriteString("\nHighlights: ")
		sb.WriteString(strings.Join(result.Highlights, " · "))
	}

	p.printBox(fmt.Sprintf("REWRITE RESULT (%s)", result.ContentType), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStyleReport outputs style check indicators for one rewritten line.
func (p *Printer) PrintStyleReport(text string, report rewriting.StyleReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("• %s\n", text))

	checks := []string{}
	if report.StrongVerb {
		checks = append(checks, "✓verb")
	}
	if report.Quantified {
		checks = append(checks, "✓metrics")
	}
	if len(report.Buzzwords) == 0 {
		checks = append(checks, "✓style")
	}
	if len(checks) > 0 {
		sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(checks, " ")))
	}
	for _, b := range report.Buzzwords {
		sb.WriteString(fmt.Sprintf("  ⚠ filler: %s\n", b))
	}

	p.printBox("STYLE CHECKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the number of results per terminal state.
func (p *Printer) PrintBatchSummary(results []types.RewriteResult) {
	if len(results) == 0 {
		return
	}

	counts := make(map[types.State]int)
	for _, r := range results {
		counts[r.State]++
	}
	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, string(s))
	}
	sort.Strings(states)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rewrote %d requests:\n\n", len(results)))
	for _, s := range states {
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", s, counts[types.State(s)]))
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, items []string, noun string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more %s\n", len(items)-maxItemsToShow, noun))
	}
}

// shorten cuts s to at most width runes, marking the cut with "...".
func shorten(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to lineWidth runes. fmt's width verb counts bytes for
// multi-byte text, which would skew the box edge.
func pad(s string) string {
	n := len([]rune(s))
	if n >= lineWidth {
		return s
	}
	return s + strings.Repeat(" ", lineWidth-n)
}
