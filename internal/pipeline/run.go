// Package pipeline orchestrates the end-to-end letter generation run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brian/letter-agent/internal/analysis"
	"github.com/brian/letter-agent/internal/assembly"
	"github.com/brian/letter-agent/internal/directory"
	"github.com/brian/letter-agent/internal/drafting"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/observability"
	"github.com/brian/letter-agent/internal/personalize"
	"github.com/brian/letter-agent/internal/review"
	"github.com/brian/letter-agent/internal/session"
	"github.com/brian/letter-agent/internal/types"
)

// RunOptions carries everything one run needs, resolved from config and flags.
type RunOptions struct {
	Articles       []string
	RecipientsPath string
	CSVPath        string
	Selector       directory.Selector
	OfficePref     personalize.OfficePreference
	Style          types.StyleConfig
	Sender         types.Sender
	OutputDir      string
	AcceptAll      bool
	UseBrowser     bool
	Verbose        bool
}

// Runner wires the pipeline stages together.
type Runner struct {
	Client   llm.Client
	Store    session.Store
	Printer  *observability.Printer
	Editor   review.Editor
	Prompter review.Prompter

	// StyleRetry, when set, is consulted after a failed draft: it returns
	// adjusted style settings and whether to try again.
	StyleRetry func(failure error, style types.StyleConfig) (types.StyleConfig, bool)

	// Now supplies session and event timestamps; tests pin it.
	Now func() time.Time
}

// maxDraftAttempts bounds base-letter regeneration with adjusted style.
const maxDraftAttempts = 3

// NewRunner builds a Runner with real collaborators.
func NewRunner(client llm.Client, store session.Store, printer *observability.Printer) *Runner {
	return &Runner{
		Client:  client,
		Store:   store,
		Printer: printer,
		Now:     time.Now,
	}
}

// Run executes the full pipeline: directory, articles, brief, base letter,
// personalization, review, assembly. The session is checkpointed after every
// stage and every review decision so an interrupted run can resume.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*types.Session, error) {
	recipients, err := r.loadRecipients(opts)
	if err != nil {
		return nil, err
	}
	r.Printer.PrintRecipients(recipients)

	r.Printer.Step("fetching %d article(s)", len(opts.Articles))
	articles, warnings, err := analysis.FetchAll(ctx, opts.Articles, opts.UseBrowser, opts.Verbose)
	for _, warning := range warnings {
		r.Printer.Warn("%s", warning)
	}
	if err != nil {
		return nil, fmt.Errorf("article fetch failed: %w", err)
	}

	sess := types.NewSession(r.Now())
	for _, official := range recipients {
		sess.SelectedRecipients = append(sess.SelectedRecipients, official.ID)
	}

	r.Printer.Step("analyzing articles")
	analyzer := analysis.NewAnalyzer(r.Client)
	brief, err := analyzer.Analyze(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	sess.Brief = brief
	r.Printer.PrintBrief(brief)
	r.checkpoint(ctx, sess)

	style := opts.Style
	if style.Focus == "" {
		options := analyzer.SuggestFocus(ctx, articles, opts.Sender.State)
		style.Focus = options[0]
		if opts.Verbose {
			for _, option := range options {
				r.Printer.Step("focus option: %s", option)
			}
		}
	}

	r.Printer.Step("drafting base letter")
	drafter := drafting.NewDrafter(r.Client)
	var base *types.Letter
	for attempt := 1; ; attempt++ {
		base, err = drafter.Draft(ctx, brief, style, opts.Sender)
		if err == nil {
			break
		}
		var draftErr *drafting.DraftError
		if !errors.As(err, &draftErr) || r.StyleRetry == nil || attempt >= maxDraftAttempts {
			return sess, err
		}
		r.Printer.Warn("draft failed: %v", err)
		adjusted, retry := r.StyleRetry(err, style)
		if !retry {
			return sess, err
		}
		style = adjusted
	}
	sess.BaseLetter = base
	if opts.Verbose {
		r.Printer.PrintLetter("BASE LETTER", base)
	}
	r.checkpoint(ctx, sess)

	r.Printer.Step("personalizing for %d recipient(s)", len(recipients))
	engine := personalize.NewEngine(r.Client)
	engine.Now = r.Now
	engine.OnEvent = func(officialID, kind, note string) {
		r.Printer.Warn("%s: %s (%s)", officialID, kind, note)
	}
	if err := engine.Personalize(ctx, base, recipients, opts.OfficePref, style, opts.Sender, sess); err != nil {
		return sess, err
	}
	r.checkpoint(ctx, sess)

	recipientsByID := make(map[string]types.Official, len(recipients))
	for _, official := range recipients {
		recipientsByID[official.ID] = official
	}

	loop := review.NewLoop(r.Editor, r.Prompter)
	loop.Now = r.Now
	loop.AfterTransition = func(s *types.Session) { r.checkpoint(ctx, s) }
	loop.Reviser = func(letter *types.Letter, feedback string) (*types.Letter, error) {
		return drafter.Refine(ctx, letter, feedback, opts.Sender)
	}
	if opts.AcceptAll || r.Prompter == nil {
		r.Printer.Step("accepting all variants")
		loop.AcceptAll(sess)
	} else {
		r.Printer.Step("reviewing variants")
		if err := loop.Run(sess, recipientsByID, opts.Sender); err != nil {
			return sess, err
		}
	}

	r.Printer.Step("assembling artifacts")
	artifacts, err := assembly.Assemble(sess, recipientsByID, opts.Sender, r.Now())
	if err != nil {
		return sess, err
	}
	if err := assembly.WriteAll(artifacts, opts.OutputDir); err != nil {
		return sess, err
	}
	r.checkpoint(ctx, sess)

	r.Printer.PrintSummary(sess)
	return sess, nil
}

// Resume reloads a saved session and re-runs assembly against it.
func (r *Runner) Resume(ctx context.Context, id string, opts RunOptions) (*types.Session, error) {
	sess, err := r.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	recipients, err := r.loadRecipients(opts)
	if err != nil {
		return nil, err
	}
	recipientsByID := make(map[string]types.Official, len(recipients))
	for _, official := range recipients {
		recipientsByID[official.ID] = official
	}

	r.Printer.Step("re-assembling session %s", sess.ID)
	artifacts, err := assembly.Assemble(sess, recipientsByID, opts.Sender, r.Now())
	if err != nil {
		return sess, err
	}
	if err := assembly.WriteAll(artifacts, opts.OutputDir); err != nil {
		return sess, err
	}

	r.Printer.PrintSummary(sess)
	return sess, nil
}

// loadRecipients loads, classifies, and filters the directory.
func (r *Runner) loadRecipients(opts RunOptions) ([]types.Official, error) {
	officials, warnings, err := directory.Load(opts.RecipientsPath, opts.CSVPath)
	for _, warning := range warnings {
		r.Printer.Warn("%s", warning)
	}
	if err != nil {
		return nil, err
	}

	recipients, err := directory.Filter(officials, opts.Selector)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipients match selector %q", opts.Selector)
	}
	return recipients, nil
}

// checkpoint saves the session, reporting but not propagating failures;
// losing a checkpoint must not abort the run.
func (r *Runner) checkpoint(ctx context.Context, sess *types.Session) {
	if r.Store == nil {
		return
	}
	if err := r.Store.Save(ctx, sess); err != nil {
		r.Printer.Warn("failed to save session: %v", err)
	}
}
