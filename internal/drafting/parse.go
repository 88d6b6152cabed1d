package drafting

import (
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// closingKeywords mark the sign-off line, scanned from the bottom up.
var closingKeywords = []string{"Sincerely", "Respectfully", "Best regards", "Thank you", "Yours truly"}

// fallbackSubject is used when the model response carries no SUBJECT: line.
const fallbackSubject = "Important Matter Requiring Your Attention"

// SplitResponse separates a SUBJECT:/LETTER: formatted model response.
// When the markers are missing the whole response is treated as the letter
// with a fallback subject, so a sloppy model response still parses.
func SplitResponse(raw string) (subject, letter string) {
	var body []string
	inLetter := false

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "SUBJECT:"):
			subject = strings.TrimSpace(strings.TrimPrefix(line, "SUBJECT:"))
		case strings.HasPrefix(line, "LETTER:"):
			inLetter = true
		case inLetter:
			body = append(body, line)
		}
	}

	letter = strings.TrimSpace(strings.Join(body, "\n"))
	if subject == "" || letter == "" {
		return fallbackSubject, strings.TrimSpace(raw)
	}
	return subject, letter
}

// ParseLetter splits raw letter text into salutation, body paragraphs, and
// closing. The salutation is the first "Dear" line; the closing is the lowest
// line containing a sign-off keyword; body lines between them group into
// paragraphs on blank lines, with short all-caps lines kept as standalone
// headings. Paragraphs that echo the sender's signature details are dropped.
func ParseLetter(raw, defaultSalutation string, sender types.Sender) (salutation string, body []string, closing string) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	salutation = defaultSalutation
	salutationIdx := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Dear") {
			salutation = strings.TrimRight(strings.TrimSpace(line), ",")
			salutationIdx = i
			break
		}
	}

	closing = "Respectfully"
	closingIdx := len(lines) - 1
	for i := len(lines) - 1; i > salutationIdx; i-- {
		line := strings.TrimRight(strings.TrimSpace(lines[i]), ",")
		if containsAny(line, closingKeywords) {
			closing = line
			closingIdx = i
			break
		}
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range lines[salutationIdx+1 : closingIdx] {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case isHeading(line):
			flush()
			paragraphs = append(paragraphs, line)
		default:
			current = append(current, line)
		}
	}
	flush()

	for _, para := range paragraphs {
		if !isSignatureEcho(para, sender) {
			body = append(body, para)
		}
	}

	return salutation, body, closing
}

// isHeading reports whether a line is a short all-caps section heading.
func isHeading(line string) bool {
	if line != strings.ToUpper(line) || line == strings.ToLower(line) {
		return false
	}
	return len(strings.Fields(line)) <= 10
}

// isSignatureEcho reports whether a paragraph repeats the sender's signature
// block, which the model sometimes appends despite instructions.
func isSignatureEcho(para string, sender types.Sender) bool {
	markers := []string{sender.Name, sender.Street1, sender.Phone, sender.Email}
	for _, marker := range markers {
		if marker != "" && strings.Contains(para, marker) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
