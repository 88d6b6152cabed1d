package drafting

import (
	"context"
	"fmt"
	"strings"

	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/prompts"
	"github.com/brian/letter-agent/internal/types"
)

// Drafter generates the base letter that personalization later varies
// per recipient.
type Drafter struct {
	client llm.Client
}

// NewDrafter creates a Drafter backed by the given LLM client.
func NewDrafter(client llm.Client) *Drafter {
	return &Drafter{client: client}
}

// baseSalutation addresses the generic draft; personalization replaces it
// with the recipient's name.
const baseSalutation = "Dear Representative"

// Draft produces the base letter from the brief. The response must parse
// into non-empty subject, salutation, body, and closing; anything less is a
// *DraftError the caller can retry with different style settings.
func (d *Drafter) Draft(ctx context.Context, brief *types.Brief, style types.StyleConfig, sender types.Sender) (*types.Letter, error) {
	if brief == nil || len(brief.KeyPoints) == 0 {
		return nil, &DraftError{Message: "issue brief is empty"}
	}

	template, err := prompts.Get("letters.json", "draft-letter")
	if err != nil {
		return nil, &DraftError{Message: "prompt template unavailable", Cause: err}
	}

	voiceProfile := ""
	if style.VoiceProfile != "" {
		voiceProfile = "Write in this voice: " + style.VoiceProfile + "."
	}
	focus := style.Focus
	if focus == "" {
		focus = "the overall impact on constituents"
	}

	prompt := prompts.Format(template, map[string]string{
		"Category":      string(brief.Category),
		"KeyPoints":     bulletList(brief.KeyPoints),
		"Sources":       strings.Join(brief.Sources, "\n"),
		"SenderName":    sender.Name,
		"SenderCity":    sender.City,
		"SenderState":   sender.State,
		"VoiceProfile":  voiceProfile,
		"Salutation":    strings.TrimPrefix(baseSalutation, "Dear "),
		"ActionContext": "an elected official",
		"Tone":          string(style.ToneOrDefault()),
		"Focus":         focus,
	})

	raw, err := d.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	return parseDraft(raw, sender)
}

// Refine rewrites an existing letter per reviewer feedback, keeping the
// SUBJECT:/LETTER: contract.
func (d *Drafter) Refine(ctx context.Context, letter *types.Letter, feedback string, sender types.Sender) (*types.Letter, error) {
	if letter == nil {
		return nil, &DraftError{Message: "no letter to refine"}
	}
	if strings.TrimSpace(feedback) == "" {
		return letter, nil
	}

	template, err := prompts.Get("letters.json", "refine-letter")
	if err != nil {
		return nil, &DraftError{Message: "prompt template unavailable", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"Letter":   letter.Text(),
		"Feedback": feedback,
	})

	raw, err := d.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	refined, err := parseDraft(raw, sender)
	if err != nil {
		return nil, err
	}
	refined.OfficeUsed = letter.OfficeUsed
	return refined, nil
}

// parseDraft converts a raw model response into a validated Letter.
func parseDraft(raw string, sender types.Sender) (*types.Letter, error) {
	subject, letterText := SplitResponse(raw)
	salutation, body, closing := ParseLetter(letterText, baseSalutation, sender)

	letter := &types.Letter{
		Salutation: salutation,
		Subject:    subject,
		Body:       body,
		Closing:    closing,
	}

	var missing []string
	if letter.Subject == "" {
		missing = append(missing, "subject")
	}
	if letter.Salutation == "" {
		missing = append(missing, "salutation")
	}
	if len(letter.Body) == 0 {
		missing = append(missing, "body")
	}
	if letter.Closing == "" {
		missing = append(missing, "closing")
	}
	if len(missing) > 0 {
		return nil, &DraftError{
			Message: fmt.Sprintf("letter missing sections: %s", strings.Join(missing, ", ")),
		}
	}

	return letter, nil
}

func bulletList(points []string) string {
	var b strings.Builder
	for _, point := range points {
		b.WriteString("- ")
		b.WriteString(point)
		b.WriteString("\n")
	}
	return b.String()
}
