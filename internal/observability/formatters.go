// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Step prints a progress line for one pipeline stage.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.out, "==> "+format+"\n", args...)
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.out, "warning: "+format+"\n", args...)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBrief outputs a human-readable summary of the issue brief.
func (p *Printer) PrintBrief(brief *types.Brief) {
	if brief == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %s\n\n", brief.Category))

	if len(brief.KeyPoints) > 0 {
		sb.WriteString("Key Points:\n")
		count := min(len(brief.KeyPoints), maxItemsToShow)
		for i := 0; i < count; i++ {
			point := brief.KeyPoints[i]
			if len(point) > 50 {
				point = point[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", point))
		}
		if len(brief.KeyPoints) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(brief.KeyPoints)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Sources: %d article(s)", len(brief.Sources)))

	p.printBox("ISSUE BRIEF", sb.String())
}

// PrintLetter outputs a letter for review, subject first.
func (p *Printer) PrintLetter(title string, letter *types.Letter) {
	if letter == nil {
		return
	}

	fmt.Fprintf(p.out, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	fmt.Fprintf(p.out, "SUBJECT: %s\n\n", letter.Subject)
	fmt.Fprintf(p.out, "%s\n", letter.Text())
	if letter.OfficeUsed != nil {
		fmt.Fprintf(p.out, "\n[mailing to: %s, %s %s]\n", letter.OfficeUsed.City, letter.OfficeUsed.State, letter.OfficeUsed.Zip)
	}
}

// PrintRecipients outputs the selected recipients with their categories.
func (p *Printer) PrintRecipients(officials []types.Official) {
	if len(officials) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Selected %d recipient(s):\n\n", len(officials)))
	for i, official := range officials {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, official.FullName))
		sb.WriteString(fmt.Sprintf("   %s", official.Category))
		if official.District != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", official.District))
		}
		sb.WriteString("\n")
	}

	p.printBox("RECIPIENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the end-of-run accounting.
func (p *Printer) PrintSummary(session *types.Session) {
	if session == nil {
		return
	}

	var accepted, skipped, flagged int
	for _, id := range session.VariantOrder {
		switch session.State(id) {
		case types.StateAccepted:
			accepted++
		case types.StateSkipped:
			skipped++
		}
		if session.HasDuplicateRisk(id) {
			flagged++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", session.ID))
	sb.WriteString(fmt.Sprintf("Accepted: %d\n", accepted))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", skipped))
	if flagged > 0 {
		sb.WriteString(fmt.Sprintf("Flagged duplicate risk: %d\n", flagged))
	}
	sb.WriteString(fmt.Sprintf("Revision events: %d", len(session.RevisionLog)))

	p.printBox("RUN SUMMARY", sb.String())
}
