package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/brian/letter-agent/internal/drafting"
	"github.com/brian/letter-agent/internal/types"
)

// Action is a reviewer's decision on a presented variant.
type Action string

const (
	ActionAccept    Action = "accept"
	ActionEdit      Action = "edit"
	ActionRevise    Action = "revise"
	ActionSkip      Action = "skip"
	ActionAcceptAll Action = "accept-all"
)

// Prompter presents a variant and collects the reviewer's decisions.
// Tests substitute a scripted implementation.
type Prompter interface {
	Select(official types.Official, letter *types.Letter) (Action, error)
	// Feedback collects the change request for a revise action.
	Feedback(official types.Official) (string, error)
}

// Loop walks every pending variant through present/accept/edit/revise/skip.
type Loop struct {
	Editor   Editor
	Prompter Prompter

	// Reviser rewrites a letter per reviewer feedback. The pipeline wires it
	// to the drafter's refine call.
	Reviser func(letter *types.Letter, feedback string) (*types.Letter, error)

	// Now supplies revision-event timestamps; tests pin it.
	Now func() time.Time

	// AfterTransition, when set, runs after a variant reaches a terminal
	// state. The pipeline uses it to checkpoint the session.
	AfterTransition func(*types.Session)
}

// NewLoop builds a review loop with the given collaborators.
func NewLoop(editor Editor, prompter Prompter) *Loop {
	return &Loop{Editor: editor, Prompter: prompter, Now: time.Now}
}

// Run reviews each variant in session order. Variants move
// Pending -> Presented -> Accepted | Editing | Skipped, with Editing always
// returning to Presented. Accepting appends a revision event whose Edited
// flag records whether the text diverged from what the machine generated.
func (l *Loop) Run(session *types.Session, recipients map[string]types.Official, sender types.Sender) error {
	machineTexts := snapshotTexts(session)

	for _, id := range session.VariantOrder {
		if session.State(id) != types.StatePending {
			continue
		}

		official := recipients[id]
		for {
			session.SetState(id, types.StatePresented)
			letter := session.Variants[id]

			action, err := l.Prompter.Select(official, letter)
			if err != nil {
				return fmt.Errorf("review aborted: %w", err)
			}

			done, err := l.apply(session, id, official, action, machineTexts, sender)
			if err != nil {
				return err
			}
			if action == ActionAcceptAll {
				l.acceptRemaining(session, machineTexts)
				return nil
			}
			if done {
				break
			}
		}
	}
	return nil
}

// apply executes one action on the presented variant. done reports whether
// the variant reached a terminal state.
func (l *Loop) apply(session *types.Session, id string, official types.Official, action Action, machineTexts map[string]string, sender types.Sender) (bool, error) {
	switch action {
	case ActionAccept, ActionAcceptAll:
		l.accept(session, id, machineTexts)
		return true, nil

	case ActionSkip:
		session.SetState(id, types.StateSkipped)
		session.AppendEvent(id, types.EventSkipped, "", false, l.Now())
		l.checkpoint(session)
		return true, nil

	case ActionEdit:
		if l.Editor == nil {
			return false, fmt.Errorf("no editor configured")
		}
		session.SetState(id, types.StateEditing)
		letter := session.Variants[id]

		edited, err := l.Editor.Edit(RenderForEdit(letter))
		if err != nil {
			// Editor failure keeps the original text; re-present.
			return false, nil
		}

		updated := ParseEdited(edited, letter, sender)
		if updated.Subject == letter.Subject && updated.Text() == letter.Text() {
			// Saved without changes; nothing to log.
			return false, nil
		}
		session.SetVariant(id, updated)
		session.AppendEvent(id, types.EventEdited, "", true, l.Now())
		return false, nil

	case ActionRevise:
		if l.Reviser == nil {
			return false, fmt.Errorf("no reviser configured")
		}
		session.SetState(id, types.StateEditing)
		letter := session.Variants[id]

		feedback, err := l.Prompter.Feedback(official)
		if err != nil {
			return false, fmt.Errorf("review aborted: %w", err)
		}
		if strings.TrimSpace(feedback) == "" {
			return false, nil
		}

		revised, err := l.Reviser(letter, feedback)
		if err != nil {
			// Revision failure keeps the original text; re-present.
			return false, nil
		}
		session.SetVariant(id, revised)
		session.AppendEvent(id, types.EventRevised, feedback, true, l.Now())
		return false, nil

	default:
		return false, fmt.Errorf("unknown review action %q", action)
	}
}

// AcceptAll accepts every remaining pending or presented variant, as the
// non-interactive --yes mode does.
func (l *Loop) AcceptAll(session *types.Session) {
	l.acceptRemaining(session, snapshotTexts(session))
}

func (l *Loop) acceptRemaining(session *types.Session, machineTexts map[string]string) {
	for _, id := range session.VariantOrder {
		switch session.State(id) {
		case types.StatePending, types.StatePresented:
			l.accept(session, id, machineTexts)
		}
	}
}

func (l *Loop) accept(session *types.Session, id string, machineTexts map[string]string) {
	edited := session.Variants[id].Text() != machineTexts[id]
	session.SetState(id, types.StateAccepted)
	session.AppendEvent(id, types.EventAccepted, "", edited, l.Now())
	l.checkpoint(session)
}

func (l *Loop) checkpoint(session *types.Session) {
	if l.AfterTransition != nil {
		l.AfterTransition(session)
	}
}

// snapshotTexts captures the machine-generated text of each variant so later
// accepts can tell whether the reviewer changed anything.
func snapshotTexts(session *types.Session) map[string]string {
	texts := make(map[string]string, len(session.VariantOrder))
	for _, id := range session.VariantOrder {
		texts[id] = session.Variants[id].Text()
	}
	return texts
}

// RenderForEdit formats a letter for the edit buffer with the subject on the
// first line.
func RenderForEdit(letter *types.Letter) string {
	return fmt.Sprintf("SUBJECT: %s\n\n%s", letter.Subject, letter.Text())
}

// ParseEdited converts an edited buffer back into a letter, keeping the
// original's office binding and falling back to its sections where the edit
// removed them.
func ParseEdited(edited string, original *types.Letter, sender types.Sender) *types.Letter {
	subject := original.Subject
	lines := strings.SplitN(strings.TrimSpace(edited), "\n", 2)
	rest := ""
	if strings.HasPrefix(lines[0], "SUBJECT:") {
		subject = strings.TrimSpace(strings.TrimPrefix(lines[0], "SUBJECT:"))
		if len(lines) > 1 {
			rest = lines[1]
		}
	} else {
		rest = strings.TrimSpace(edited)
	}

	salutation, body, closing := drafting.ParseLetter(rest, original.Salutation, sender)
	if len(body) == 0 {
		body = original.Body
	}

	updated := &types.Letter{
		Salutation: salutation,
		Subject:    subject,
		Body:       body,
		Closing:    closing,
		OfficeUsed: original.OfficeUsed,
	}
	return updated
}
