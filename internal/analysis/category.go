package analysis

import (
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// categoryKeywords maps each topic category to the tokens that vote for it.
// Scoring counts keyword hits in the combined text; the LLM's free-text topic
// guess is scored separately at a higher weight so an explicit guess wins
// over incidental keyword noise.
var categoryKeywords = map[types.TopicCategory][]string{
	types.TopicHealthcare:  {"health", "medical", "medicare", "medicaid", "insurance", "hospital", "doctor", "patient"},
	types.TopicEnergy:      {"energy", "oil", "gas", "renewable", "solar", "wind", "pipeline", "electricity", "grid"},
	types.TopicImmigration: {"immigration", "immigrant", "visa", "citizenship", "refugee", "asylum", "border"},
	types.TopicCivilRights: {"civil rights", "discrimination", "voting rights", "equality", "constitution", "liberties"},
	types.TopicEconomy:     {"economy", "economic", "jobs", "inflation", "wage", "employment", "business", "trade"},
	types.TopicEducation:   {"school", "education", "student", "teacher", "university", "college", "curriculum"},
	types.TopicEnvironment: {"environment", "climate", "pollution", "conservation", "epa", "emissions", "wildlife"},
	types.TopicDefense:     {"military", "defense", "pentagon", "army", "navy", "air force", "national security"},
	types.TopicVeterans:    {"veteran", "va ", "gi bill", "military service", "vfw"},
	types.TopicTaxes:       {"tax", "irs", "revenue", "deduction", "taxation", "levy"},
}

// categoryPriority is the tie-break order: earlier wins on equal scores so
// detection stays deterministic regardless of map iteration.
var categoryPriority = []types.TopicCategory{
	types.TopicHealthcare,
	types.TopicEnergy,
	types.TopicImmigration,
	types.TopicCivilRights,
	types.TopicEconomy,
	types.TopicEducation,
	types.TopicEnvironment,
	types.TopicDefense,
	types.TopicVeterans,
	types.TopicTaxes,
}

// guessWeight multiplies keyword hits found in the LLM topic guess.
const guessWeight = 3

// DetectCategory maps a free-text topic guess plus raw article text onto the
// closed category set. Pure function of its inputs; no hits at all yields
// TopicOther.
func DetectCategory(guess, rawText string) types.TopicCategory {
	guess = strings.ToLower(guess)
	rawText = strings.ToLower(rawText)

	best := types.TopicOther
	bestScore := 0

	for _, category := range categoryPriority {
		score := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(guess, keyword) {
				score += guessWeight
			}
			if strings.Contains(rawText, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	return best
}
