package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/brian/letter-agent/internal/observability"
	"github.com/brian/letter-agent/internal/review"
	"github.com/brian/letter-agent/internal/types"
)

// consolePrompter presents each variant on the terminal and reads the
// reviewer's decision from stdin.
type consolePrompter struct {
	in      *bufio.Reader
	out     io.Writer
	printer *observability.Printer
}

func newConsolePrompter(in io.Reader, out io.Writer, printer *observability.Printer) *consolePrompter {
	return &consolePrompter{in: bufio.NewReader(in), out: out, printer: printer}
}

// Select shows the letter and maps single-key answers onto review actions.
func (p *consolePrompter) Select(official types.Official, letter *types.Letter) (review.Action, error) {
	title := fmt.Sprintf("LETTER FOR %s", strings.ToUpper(official.FullName))
	p.printer.PrintLetter(title, letter)

	for {
		fmt.Fprint(p.out, "[a]ccept / [e]dit / [r]evise with AI / [s]kip / [A]ccept all remaining? ")
		line, err := p.in.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read review choice: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "a", "accept":
			return review.ActionAccept, nil
		case "e", "edit":
			return review.ActionEdit, nil
		case "r", "revise":
			return review.ActionRevise, nil
		case "s", "skip":
			return review.ActionSkip, nil
		case "A", "all":
			return review.ActionAcceptAll, nil
		default:
			fmt.Fprintln(p.out, "please answer a, e, r, s, or A")
		}
	}
}

// Feedback reads the change request for a revise action.
func (p *consolePrompter) Feedback(types.Official) (string, error) {
	fmt.Fprint(p.out, "What should change? ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read revision feedback: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// StyleRetry asks whether to regenerate an unusable base letter with
// adjusted tone and focus. Empty answers keep the current settings.
func (p *consolePrompter) StyleRetry(failure error, style types.StyleConfig) (types.StyleConfig, bool) {
	fmt.Fprintf(p.out, "The draft came back unusable: %v\n", failure)
	fmt.Fprint(p.out, "Regenerate with different tone/focus? [y/N] ")
	line, err := p.in.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "y" {
		return style, false
	}

	fmt.Fprintf(p.out, "Tone (professional/concerned/urgent/supportive) [%s]: ", style.ToneOrDefault())
	if line, err = p.in.ReadString('\n'); err != nil {
		return style, false
	}
	if tone := strings.TrimSpace(line); tone != "" {
		style.Tone = types.Tone(tone)
	}

	fmt.Fprintf(p.out, "Focus [%s]: ", style.Focus)
	if line, err = p.in.ReadString('\n'); err != nil {
		return style, false
	}
	if focus := strings.TrimSpace(line); focus != "" {
		style.Focus = focus
	}
	return style, true
}
