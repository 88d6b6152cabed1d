package personalize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brian/letter-agent/internal/drafting"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/prompts"
	"github.com/brian/letter-agent/internal/types"
)

// DefaultMaxRetries bounds regeneration attempts after a sentence collision.
const DefaultMaxRetries = 3

// Engine produces per-recipient letter variants from a base letter.
type Engine struct {
	client llm.Client

	// MaxRetries is how many regenerations a sentence collision triggers
	// before the variant is accepted with a duplicate-risk flag.
	MaxRetries int

	// Now supplies event timestamps; tests pin it.
	Now func() time.Time

	// OnEvent, when set, receives progress notifications.
	OnEvent func(officialID, kind, note string)
}

// NewEngine creates an Engine with default retry policy.
func NewEngine(client llm.Client) *Engine {
	return &Engine{
		client:     client,
		MaxRetries: DefaultMaxRetries,
		Now:        time.Now,
	}
}

// Personalize generates one variant per recipient, in the supplied order,
// storing results and review states on the session. A recipient whose
// generation fails is recorded and skipped; the run continues. Only an empty
// base letter is fatal.
func (e *Engine) Personalize(ctx context.Context, base *types.Letter, recipients []types.Official, pref OfficePreference, style types.StyleConfig, sender types.Sender, session *types.Session) error {
	if base == nil || len(base.Body) == 0 {
		return fmt.Errorf("no base letter to personalize")
	}

	openings := sentenceSet{}
	closings := sentenceSet{}
	openings.add(base.OpeningSentence())
	closings.add(base.ClosingSentence())

	for _, official := range recipients {
		letter, flagged, err := e.generateVariant(ctx, base, official, pref, style, sender, openings, closings)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			// Per-recipient failures are isolated; the run continues.
			session.AppendEvent(official.ID, types.EventGenerationFailed, err.Error(), false, e.Now())
			session.SetState(official.ID, types.StateSkipped)
			e.emit(official.ID, types.EventGenerationFailed, err.Error())
			continue
		}

		session.SetVariant(official.ID, letter)
		session.SetState(official.ID, types.StatePending)
		if flagged {
			note := "opening and closing still collide after retries"
			session.AppendEvent(official.ID, types.EventDuplicateRisk, note, false, e.Now())
			e.emit(official.ID, types.EventDuplicateRisk, note)
		}

		openings.add(letter.OpeningSentence())
		closings.add(letter.ClosingSentence())
	}

	return nil
}

// generateVariant produces one variant, retrying on sentence collisions.
// flagged is true when retries were exhausted and the last attempt is
// returned despite colliding.
func (e *Engine) generateVariant(ctx context.Context, base *types.Letter, official types.Official, pref OfficePreference, style types.StyleConfig, sender types.Sender, openings, closings sentenceSet) (letter *types.Letter, flagged bool, err error) {
	office, err := ResolveOffice(official, pref)
	if err != nil {
		return nil, false, err
	}

	template, err := prompts.Get("letters.json", "personalize-letter")
	if err != nil {
		return nil, false, err
	}

	basePrompt := prompts.Format(template, map[string]string{
		"Title":             official.SalutationTitle(),
		"Name":              official.Name,
		"LastName":          official.LastName(),
		"BaseLetter":        base.Text(),
		"OfficeDescription": officeDescription(official),
		"Region":            fmt.Sprintf("%s, %s", office.City, office.State),
		"District":          districtLine(official),
		"Instructions":      framingInstructions(official),
		"Tone":              string(style.ToneOrDefault()),
		"UsedSentences":     usedSentencesBlock(openings, closings),
	})

	defaultSalutation := fmt.Sprintf("Dear %s %s", official.SalutationTitle(), official.LastName())

	prompt := basePrompt
	for attempt := 0; ; attempt++ {
		raw, genErr := e.client.GenerateContent(ctx, prompt, llm.TierCreative)
		if genErr != nil {
			return nil, false, genErr
		}

		subject, letterText := drafting.SplitResponse(raw)
		salutation, body, closing := drafting.ParseLetter(letterText, defaultSalutation, sender)
		if len(body) == 0 {
			return nil, false, &llm.ServiceError{Message: "personalized letter had no body"}
		}

		letter = &types.Letter{
			Salutation: salutation,
			Subject:    subject,
			Body:       body,
			Closing:    closing,
			OfficeUsed: &office,
		}

		openingCollides := openings.contains(letter.OpeningSentence())
		closingCollides := closings.contains(letter.ClosingSentence())
		if !openingCollides && !closingCollides {
			return letter, false, nil
		}
		if attempt >= e.MaxRetries {
			// Flag only a full collision; sharing one sentence is tolerated.
			return letter, openingCollides && closingCollides, nil
		}

		prompt = basePrompt + "\n\n" + retryEscalation(openings, closings)
	}
}

// retryEscalation builds the appended instruction after a collision.
func retryEscalation(openings, closings sentenceSet) string {
	template, err := prompts.Get("letters.json", "personalize-retry")
	if err != nil {
		return "The previous attempt reused an opening or closing sentence. Start and end differently."
	}
	return prompts.Format(template, map[string]string{
		"UsedSentences": usedSentencesBlock(openings, closings),
	})
}

// usedSentencesBlock renders the do-not-reuse list in stable order.
func usedSentencesBlock(openings, closings sentenceSet) string {
	sentences := append(openings.list(), closings.list()...)
	sort.Strings(sentences)
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

// officeDescription summarizes the recipient's office for the prompt.
func officeDescription(official types.Official) string {
	if official.Organization != "" {
		return fmt.Sprintf("%s, %s", official.Title, official.Organization)
	}
	return official.Title
}

// districtLine renders the optional district detail.
func districtLine(official types.Official) string {
	if official.District == "" {
		return ""
	}
	return fmt.Sprintf("- District: %s\n", official.District)
}

// framingInstructions tailors the ask to what the recipient can act on.
func framingInstructions(official types.Official) string {
	switch official.Category {
	case types.CategoryGovernor:
		return "Frame requests around state executive action: signing or vetoing legislation, directing state agencies, and emergency declarations."
	case types.CategoryUSSenator, types.CategoryUSRep:
		return "Frame requests around congressional action: sponsoring or supporting federal legislation, committee oversight, and federal funding."
	case types.CategoryStateSen, types.CategoryStateRep:
		return "Frame requests around state legislative action: state bills, state budget priorities, and oversight of state programs."
	default:
		return "Frame requests around actions within the recipient's authority."
	}
}

func (e *Engine) emit(officialID, kind, note string) {
	if e.OnEvent != nil {
		e.OnEvent(officialID, kind, note)
	}
}
