package types

// Tone sets the register of the drafted letter.
type Tone string

// Recognized tones.
const (
	ToneProfessional Tone = "professional"
	ToneConcerned    Tone = "concerned"
	ToneUrgent       Tone = "urgent"
	ToneSupportive   Tone = "supportive"
)

// StyleConfig carries the human-selected style options for drafting.
type StyleConfig struct {
	Tone         Tone   `json:"tone" validate:"omitempty,oneof=professional concerned urgent supportive"`
	Focus        string `json:"focus,omitempty"`
	VoiceProfile string `json:"voice_profile,omitempty"`
}

// ToneOrDefault returns the configured tone, defaulting to professional.
func (s StyleConfig) ToneOrDefault() Tone {
	if s.Tone == "" {
		return ToneProfessional
	}
	return s.Tone
}

// Sender identifies the letter writer and return address.
type Sender struct {
	Name    string `json:"name" validate:"required"`
	Street1 string `json:"street_1" validate:"required"`
	Street2 string `json:"street_2,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required,len=2"`
	Zip     string `json:"zip" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Title   string `json:"title,omitempty"`
}
