package types

// TopicCategory is the closed set of issue categories a brief can be filed under.
type TopicCategory string

// Topic categories recognized by the analyzer. DetectCategory falls back to
// TopicOther when no keyword matches.
const (
	TopicHealthcare  TopicCategory = "Healthcare"
	TopicEnergy      TopicCategory = "Energy"
	TopicImmigration TopicCategory = "Immigration"
	TopicCivilRights TopicCategory = "CivilRights"
	TopicEconomy     TopicCategory = "Economy"
	TopicEducation   TopicCategory = "Education"
	TopicEnvironment TopicCategory = "Environment"
	TopicDefense     TopicCategory = "Defense"
	TopicVeterans    TopicCategory = "Veterans"
	TopicTaxes       TopicCategory = "Taxes"
	TopicOther       TopicCategory = "Other"
)

// Brief is the structured summary of the input news articles that drives
// letter content. Created once per session and read-only afterward.
type Brief struct {
	Category  TopicCategory `json:"category"`
	KeyPoints []string      `json:"key_points"`
	Sources   []string      `json:"sources"`
	Summary   string        `json:"summary,omitempty"`
}
