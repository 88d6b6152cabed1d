package review

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brian/letter-agent/internal/types"
)

// scriptedPrompter replays a fixed sequence of review actions and feedback.
type scriptedPrompter struct {
	actions  []Action
	feedback []string
	calls    int
	asked    int
}

func (p *scriptedPrompter) Select(types.Official, *types.Letter) (Action, error) {
	if p.calls >= len(p.actions) {
		return "", fmt.Errorf("prompter script exhausted")
	}
	action := p.actions[p.calls]
	p.calls++
	return action, nil
}

func (p *scriptedPrompter) Feedback(types.Official) (string, error) {
	if p.asked >= len(p.feedback) {
		return "", fmt.Errorf("feedback script exhausted")
	}
	feedback := p.feedback[p.asked]
	p.asked++
	return feedback, nil
}

// rewriteEditor replaces the first body paragraph.
type rewriteEditor struct {
	replacement string
	err         error
}

func (e *rewriteEditor) Edit(text string) (string, error) {
	if e.err != nil {
		return text, e.err
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" && !strings.HasPrefix(line, "SUBJECT:") && !strings.HasPrefix(line, "Dear") {
			lines[i] = e.replacement
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func reviewSession(n int) (*types.Session, map[string]types.Official) {
	session := types.NewSession(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	recipients := make(map[string]types.Official, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("official-%d", i)
		recipients[id] = types.Official{ID: id, Name: fmt.Sprintf("Pat Example%d", i)}
		session.SetVariant(id, &types.Letter{
			Salutation: fmt.Sprintf("Dear Senator Example%d", i),
			Subject:    fmt.Sprintf("Subject %d", i),
			Body:       []string{fmt.Sprintf("Machine paragraph for recipient %d.", i)},
			Closing:    "Sincerely",
		})
	}
	return session, recipients
}

func newTestLoop(editor Editor, prompter Prompter) *Loop {
	loop := NewLoop(editor, prompter)
	loop.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }
	return loop
}

func TestRunAcceptAndSkip(t *testing.T) {
	session, recipients := reviewSession(3)
	prompter := &scriptedPrompter{actions: []Action{ActionAccept, ActionSkip, ActionAccept}}
	loop := newTestLoop(nil, prompter)

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	assert.Equal(t, types.StateAccepted, session.State("official-1"))
	assert.Equal(t, types.StateSkipped, session.State("official-2"))
	assert.Equal(t, types.StateAccepted, session.State("official-3"))
	assert.Equal(t, []string{"official-1", "official-3"}, session.AcceptedIDs())

	for _, event := range session.RevisionLog {
		if event.Kind == types.EventAccepted {
			assert.False(t, event.Edited)
		}
	}
}

func TestRunAcceptAllAfterEdit(t *testing.T) {
	session, recipients := reviewSession(5)
	prompter := &scriptedPrompter{actions: []Action{ActionEdit, ActionAcceptAll}}
	editor := &rewriteEditor{replacement: "A hand-edited paragraph with new content."}
	loop := newTestLoop(editor, prompter)

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	// All five accepted; only the first was edited.
	require.Len(t, session.AcceptedIDs(), 5)
	assert.Contains(t, session.Variants["official-1"].Body[0], "hand-edited")
	assert.Equal(t, "Machine paragraph for recipient 2.", session.Variants["official-2"].Body[0])

	editedFlags := map[string]bool{}
	for _, event := range session.RevisionLog {
		if event.Kind == types.EventAccepted {
			editedFlags[event.OfficialID] = event.Edited
		}
	}
	assert.True(t, editedFlags["official-1"])
	for i := 2; i <= 5; i++ {
		assert.False(t, editedFlags[fmt.Sprintf("official-%d", i)])
	}
}

func TestRunEditorFailureKeepsOriginal(t *testing.T) {
	session, recipients := reviewSession(1)
	prompter := &scriptedPrompter{actions: []Action{ActionEdit, ActionAccept}}
	editor := &rewriteEditor{err: fmt.Errorf("editor crashed")}
	loop := newTestLoop(editor, prompter)

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	assert.Equal(t, types.StateAccepted, session.State("official-1"))
	assert.Equal(t, "Machine paragraph for recipient 1.", session.Variants["official-1"].Body[0])
	for _, event := range session.RevisionLog {
		if event.Kind == types.EventAccepted {
			assert.False(t, event.Edited)
		}
	}
}

func TestRunUnchangedEditNotLogged(t *testing.T) {
	session, recipients := reviewSession(1)
	prompter := &scriptedPrompter{actions: []Action{ActionEdit, ActionAccept}}
	// Editor saves the buffer without touching it.
	editor := &rewriteEditor{replacement: "Machine paragraph for recipient 1."}
	loop := newTestLoop(editor, prompter)

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	assert.Equal(t, types.StateAccepted, session.State("official-1"))
	for _, event := range session.RevisionLog {
		assert.NotEqual(t, types.EventEdited, event.Kind)
		if event.Kind == types.EventAccepted {
			assert.False(t, event.Edited)
		}
	}
}

func TestRunReviseThenAccept(t *testing.T) {
	session, recipients := reviewSession(2)
	prompter := &scriptedPrompter{
		actions:  []Action{ActionRevise, ActionAccept, ActionAccept},
		feedback: []string{"make the second paragraph more urgent"},
	}
	loop := newTestLoop(nil, prompter)
	loop.Reviser = func(letter *types.Letter, feedback string) (*types.Letter, error) {
		revised := letter.Clone()
		revised.Body = []string{"An urgent rewritten paragraph."}
		return revised, nil
	}

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	assert.Equal(t, []string{"An urgent rewritten paragraph."}, session.Variants["official-1"].Body)
	assert.Equal(t, "Machine paragraph for recipient 2.", session.Variants["official-2"].Body[0])

	var revised bool
	editedFlags := map[string]bool{}
	for _, event := range session.RevisionLog {
		if event.Kind == types.EventRevised {
			revised = true
			assert.Equal(t, "official-1", event.OfficialID)
			assert.Equal(t, "make the second paragraph more urgent", event.Note)
		}
		if event.Kind == types.EventAccepted {
			editedFlags[event.OfficialID] = event.Edited
		}
	}
	assert.True(t, revised, "expected a revised event for official-1")
	assert.True(t, editedFlags["official-1"])
	assert.False(t, editedFlags["official-2"])
}

func TestRunReviseFailureKeepsOriginal(t *testing.T) {
	session, recipients := reviewSession(1)
	prompter := &scriptedPrompter{
		actions:  []Action{ActionRevise, ActionAccept},
		feedback: []string{"shorten it"},
	}
	loop := newTestLoop(nil, prompter)
	loop.Reviser = func(*types.Letter, string) (*types.Letter, error) {
		return nil, fmt.Errorf("service unavailable")
	}

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))

	assert.Equal(t, types.StateAccepted, session.State("official-1"))
	assert.Equal(t, "Machine paragraph for recipient 1.", session.Variants["official-1"].Body[0])
	for _, event := range session.RevisionLog {
		assert.NotEqual(t, types.EventRevised, event.Kind)
	}
}

func TestRunReviseEmptyFeedbackRepresents(t *testing.T) {
	session, recipients := reviewSession(1)
	prompter := &scriptedPrompter{
		actions:  []Action{ActionRevise, ActionAccept},
		feedback: []string{"   "},
	}
	loop := newTestLoop(nil, prompter)
	loop.Reviser = func(*types.Letter, string) (*types.Letter, error) {
		t.Fatal("reviser must not run on empty feedback")
		return nil, nil
	}

	require.NoError(t, loop.Run(session, recipients, types.Sender{}))
	assert.Equal(t, types.StateAccepted, session.State("official-1"))
}

func TestAcceptAllNonInteractive(t *testing.T) {
	session, _ := reviewSession(4)
	session.SetState("official-2", types.StateSkipped)

	loop := newTestLoop(nil, nil)
	loop.AcceptAll(session)

	assert.Equal(t, []string{"official-1", "official-3", "official-4"}, session.AcceptedIDs())
	assert.Equal(t, types.StateSkipped, session.State("official-2"))
}

func TestParseEdited(t *testing.T) {
	original := &types.Letter{
		Salutation: "Dear Senator Example",
		Subject:    "Original Subject",
		Body:       []string{"Original paragraph."},
		Closing:    "Sincerely",
		OfficeUsed: &types.Office{City: "Tulsa", State: "OK"},
	}

	t.Run("full edit", func(t *testing.T) {
		edited := "SUBJECT: New Subject\n\nDear Senator Example,\n\nRewritten paragraph.\n\nRespectfully,"
		updated := ParseEdited(edited, original, types.Sender{})
		assert.Equal(t, "New Subject", updated.Subject)
		assert.Equal(t, []string{"Rewritten paragraph."}, updated.Body)
		assert.Equal(t, "Respectfully", updated.Closing)
		require.NotNil(t, updated.OfficeUsed)
		assert.Equal(t, "Tulsa", updated.OfficeUsed.City)
	})

	t.Run("subject line removed keeps original subject", func(t *testing.T) {
		edited := "Dear Senator Example,\n\nRewritten paragraph.\n\nSincerely,"
		updated := ParseEdited(edited, original, types.Sender{})
		assert.Equal(t, "Original Subject", updated.Subject)
		assert.Equal(t, []string{"Rewritten paragraph."}, updated.Body)
	})

	t.Run("emptied body falls back to original", func(t *testing.T) {
		updated := ParseEdited("SUBJECT: X\n\nDear Senator Example,\n\nSincerely,", original, types.Sender{})
		assert.Equal(t, original.Body, updated.Body)
	})
}

func TestRenderForEditRoundTrip(t *testing.T) {
	letter := &types.Letter{
		Salutation: "Dear Governor Stitt",
		Subject:    "Budget Priorities",
		Body:       []string{"First paragraph.", "Second paragraph."},
		Closing:    "Respectfully",
	}

	updated := ParseEdited(RenderForEdit(letter), letter, types.Sender{})
	assert.Equal(t, letter.Subject, updated.Subject)
	assert.Equal(t, letter.Salutation, updated.Salutation)
	assert.Equal(t, letter.Body, updated.Body)
	assert.Equal(t, letter.Closing, updated.Closing)
}
