package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brian/letter-agent/internal/types"
)

func TestPrintBrief(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintBrief(&types.Brief{
		Category:  types.TopicHealthcare,
		KeyPoints: []string{"County hospital faces closure", "Medicaid changes reduce coverage"},
		Sources:   []string{"https://example.com/a"},
	})

	out := buf.String()
	assert.Contains(t, out, "ISSUE BRIEF")
	assert.Contains(t, out, "Healthcare")
	assert.Contains(t, out, "County hospital faces closure")
}

func TestPrintBriefNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBrief(nil)
	assert.Empty(t, buf.String())
}

func TestPrintLetter(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintLetter("VARIANT 1 OF 3", &types.Letter{
		Salutation: "Dear Senator Lankford",
		Subject:    "Protect Rural Healthcare",
		Body:       []string{"Paragraph."},
		Closing:    "Sincerely",
		OfficeUsed: &types.Office{City: "Washington", State: "DC", Zip: "20510"},
	})

	out := buf.String()
	assert.Contains(t, out, "VARIANT 1 OF 3")
	assert.Contains(t, out, "SUBJECT: Protect Rural Healthcare")
	assert.Contains(t, out, "Dear Senator Lankford,")
	assert.Contains(t, out, "mailing to: Washington, DC 20510")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	session := types.NewSession(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	session.SetVariant("a", &types.Letter{Body: []string{"p."}})
	session.SetVariant("b", &types.Letter{Body: []string{"q."}})
	session.SetState("a", types.StateAccepted)
	session.SetState("b", types.StateSkipped)

	printer.PrintSummary(session)

	out := buf.String()
	assert.Contains(t, out, "Accepted: 1")
	assert.Contains(t, out, "Skipped:  1")
}

func TestStepAndWarn(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.Step("analyzing %d articles", 3)
	printer.Warn("failed to fetch %s", "https://example.com")

	assert.Contains(t, buf.String(), "==> analyzing 3 articles")
	assert.Contains(t, buf.String(), "warning: failed to fetch")
}
