package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brian/letter-agent/internal/types"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		text  string
		want  types.TopicCategory
	}{
		{
			name:  "healthcare from guess",
			guess: "rural hospital closures",
			text:  "The clinic serves patients across three counties.",
			want:  types.TopicHealthcare,
		},
		{
			name:  "energy from text",
			guess: "local industry news",
			text:  "The pipeline expansion would add natural gas capacity and wind generation to the grid.",
			want:  types.TopicEnergy,
		},
		{
			name:  "guess outweighs incidental keywords",
			guess: "education funding shortfall",
			text:  "The school board debated the budget. One parent works at a hospital.",
			want:  types.TopicEducation,
		},
		{
			name:  "no keywords falls back to other",
			guess: "miscellaneous happenings",
			text:  "A parade was held downtown on Saturday.",
			want:  types.TopicOther,
		},
		{
			name:  "veterans",
			guess: "GI Bill benefit delays",
			text:  "Veteran service organizations reported processing backlogs.",
			want:  types.TopicVeterans,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.guess, tt.text))
		})
	}
}

func TestDetectCategoryDeterministic(t *testing.T) {
	guess := "healthcare and education policy"
	text := "Hospital funding and school funding were both debated."

	first := DetectCategory(guess, text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, DetectCategory(guess, text))
	}
}
