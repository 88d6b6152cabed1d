package directory

import (
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// classifyRule maps a title token to an office category. Rules are evaluated
// top-down; needsHint rules only match when the chamber hint agrees.
type classifyRule struct {
	token    string
	hint     types.Chamber // empty means no hint required
	category types.OfficeCategory
	chamber  types.Chamber
}

// classifyRules is the ordered rule table for title classification.
// Precedence: Governor > explicit federal house titles > Senator (by hint) >
// Representative (by hint). Anything else is Unresolved.
var classifyRules = []classifyRule{
	{token: "governor", category: types.CategoryGovernor, chamber: types.ChamberState},
	{token: "congressman", category: types.CategoryUSRep, chamber: types.ChamberFederal},
	{token: "congresswoman", category: types.CategoryUSRep, chamber: types.ChamberFederal},
	{token: "u.s. senator", category: types.CategoryUSSenator, chamber: types.ChamberFederal},
	{token: "united states senator", category: types.CategoryUSSenator, chamber: types.ChamberFederal},
	{token: "senator", hint: types.ChamberFederal, category: types.CategoryUSSenator, chamber: types.ChamberFederal},
	{token: "senator", hint: types.ChamberState, category: types.CategoryStateSen, chamber: types.ChamberState},
	{token: "u.s. representative", category: types.CategoryUSRep, chamber: types.ChamberFederal},
	{token: "united states representative", category: types.CategoryUSRep, chamber: types.ChamberFederal},
	{token: "representative", hint: types.ChamberFederal, category: types.CategoryUSRep, chamber: types.ChamberFederal},
	{token: "representative", hint: types.ChamberState, category: types.CategoryStateRep, chamber: types.ChamberState},
}

// Classify infers the office category from a raw name/title string.
// The chamber hint disambiguates "Senator" and "Representative"; without it
// those titles are Unresolved rather than silently misclassified.
func Classify(rawTitle string, chamberHint types.Chamber) (types.OfficeCategory, types.Chamber) {
	title := strings.ToLower(rawTitle)

	for _, rule := range classifyRules {
		if !strings.Contains(title, rule.token) {
			continue
		}
		if rule.hint != "" && rule.hint != chamberHint {
			continue
		}
		return rule.category, rule.chamber
	}

	return types.CategoryUnresolved, ""
}

// derivedTitle returns the formal title for an office category.
func derivedTitle(category types.OfficeCategory) string {
	switch category {
	case types.CategoryGovernor:
		return "Governor"
	case types.CategoryUSSenator:
		return "United States Senator"
	case types.CategoryUSRep:
		return "United States Representative"
	case types.CategoryStateSen:
		return "State Senator"
	case types.CategoryStateRep:
		return "State Representative"
	default:
		return ""
	}
}

// derivedOrganization returns the body an office category belongs to.
func derivedOrganization(category types.OfficeCategory) string {
	switch category {
	case types.CategoryGovernor:
		return "Office of the Governor"
	case types.CategoryUSSenator:
		return "United States Senate"
	case types.CategoryUSRep:
		return "United States House of Representatives"
	case types.CategoryStateSen:
		return "State Senate"
	case types.CategoryStateRep:
		return "State House of Representatives"
	default:
		return ""
	}
}
