package personalize

import "strings"

// normalizeSentence canonicalizes a sentence for uniqueness comparison:
// casefold, collapse runs of whitespace, and strip trailing punctuation.
func normalizeSentence(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".!?,;: ")
}

// sentenceSet tracks normalized sentences already used across variants.
type sentenceSet map[string]bool

func (set sentenceSet) add(s string) {
	if normalized := normalizeSentence(s); normalized != "" {
		set[normalized] = true
	}
}

func (set sentenceSet) contains(s string) bool {
	return set[normalizeSentence(s)]
}

func (set sentenceSet) list() []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
