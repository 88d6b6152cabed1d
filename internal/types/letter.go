package types

import "strings"

// Letter is a drafted letter. The base letter has no OfficeUsed; a variant is
// bound to exactly one official's office.
type Letter struct {
	Salutation string   `json:"salutation"`
	Subject    string   `json:"subject"`
	Body       []string `json:"body"`
	Closing    string   `json:"closing"`
	OfficeUsed *Office  `json:"office_used,omitempty"`
}

// OpeningSentence returns the first sentence of the first body paragraph.
func (l *Letter) OpeningSentence() string {
	if len(l.Body) == 0 {
		return ""
	}
	return firstSentence(l.Body[0])
}

// ClosingSentence returns the last sentence of the last body paragraph.
func (l *Letter) ClosingSentence() string {
	if len(l.Body) == 0 {
		return ""
	}
	return lastSentence(l.Body[len(l.Body)-1])
}

// Text renders the letter as plain human-readable text.
func (l *Letter) Text() string {
	var sb strings.Builder
	sb.WriteString(l.Salutation)
	sb.WriteString(",\n\n")
	for _, para := range l.Body {
		sb.WriteString(para)
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.Closing)
	sb.WriteString(",")
	return sb.String()
}

// Clone returns a deep copy of the letter.
func (l *Letter) Clone() *Letter {
	dup := *l
	dup.Body = make([]string, len(l.Body))
	copy(dup.Body, l.Body)
	if l.OfficeUsed != nil {
		office := *l.OfficeUsed
		dup.OfficeUsed = &office
	}
	return &dup
}

// sentenceEnders are the characters that terminate a sentence.
const sentenceEnders = ".!?"

func firstSentence(paragraph string) string {
	paragraph = strings.TrimSpace(paragraph)
	if idx := strings.IndexAny(paragraph, sentenceEnders); idx >= 0 {
		return paragraph[:idx+1]
	}
	return paragraph
}

func lastSentence(paragraph string) string {
	paragraph = strings.TrimSpace(paragraph)
	trimmed := strings.TrimRight(paragraph, sentenceEnders+" ")
	if idx := strings.LastIndexAny(trimmed, sentenceEnders); idx >= 0 {
		return strings.TrimSpace(paragraph[idx+1:])
	}
	return paragraph
}
