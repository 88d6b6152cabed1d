package assembly

import (
	"strings"
	"time"

	"github.com/brian/letter-agent/internal/types"
)

// Document is the mailer JSON emitted for one accepted variant.
type Document struct {
	Metadata         Metadata         `json:"metadata"`
	ReturnAddress    ReturnAddress    `json:"return_address"`
	RecipientAddress RecipientAddress `json:"recipient_address"`
	Content          Content          `json:"content"`
}

// Metadata identifies the document. GeneratedAt is the only field that varies
// between re-assemblies of the same session.
type Metadata struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	ReferenceID string `json:"reference_id"`
	GeneratedAt string `json:"generated_at"`
}

// ReturnAddress is the sender block.
type ReturnAddress struct {
	Name    string `json:"name"`
	Street1 string `json:"street_1"`
	Street2 string `json:"street_2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Title   string `json:"title,omitempty"`
}

// RecipientAddress is the addressee block.
type RecipientAddress struct {
	Honorific    string `json:"honorific"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organization string `json:"organization,omitempty"`
	Street1      string `json:"street_1"`
	Street2      string `json:"street_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Content carries the letter text sections.
type Content struct {
	Salutation string    `json:"salutation"`
	Subject    string    `json:"subject"`
	Body       []string  `json:"body"`
	Closing    string    `json:"closing"`
	Signature  Signature `json:"signature"`
}

// Signature is the typed sign-off block.
type Signature struct {
	Type      string `json:"type"`
	TypedName string `json:"typed_name"`
	Title     string `json:"title,omitempty"`
}

// documentType maps an office category onto the mailer's document type.
func documentType(category types.OfficeCategory) string {
	switch category {
	case types.CategoryGovernor:
		return "executive"
	case types.CategoryStateSen, types.CategoryStateRep:
		return "state_legislative"
	default:
		return "congressional"
	}
}

// ReferenceID derives the correlation key for a variant: office category,
// topic category, and session ID, upper-cased. Deterministic for a given
// session, so re-assembly reproduces it.
func ReferenceID(category types.OfficeCategory, topic types.TopicCategory, sessionID string) string {
	return strings.ToUpper(string(category)) + "_" + strings.ToUpper(string(topic)) + "_" + sessionID
}

// buildDocument assembles the mailer JSON structure for one accepted variant.
func buildDocument(session *types.Session, official types.Official, letter *types.Letter, office types.Office, sender types.Sender, now time.Time) Document {
	topic := types.TopicOther
	if session.Brief != nil {
		topic = session.Brief.Category
	}

	subject := letter.Subject
	if !strings.HasPrefix(subject, "RE: ") {
		subject = "RE: " + subject
	}

	return Document{
		Metadata: Metadata{
			Type:        documentType(official.Category),
			Date:        session.StartedAt.Format("2006-01-02"),
			ReferenceID: ReferenceID(official.Category, topic, session.ID),
			GeneratedAt: now.UTC().Format(time.RFC3339),
		},
		ReturnAddress: ReturnAddress{
			Name:    sender.Name,
			Street1: sender.Street1,
			Street2: sender.Street2,
			City:    sender.City,
			State:   sender.State,
			Zip:     sender.Zip,
			Title:   sender.Title,
		},
		RecipientAddress: RecipientAddress{
			Honorific:    official.Honorific,
			Name:         official.Name,
			Title:        official.Title,
			Organization: official.Organization,
			Street1:      office.Street1,
			Street2:      office.Street2,
			City:         office.City,
			State:        office.State,
			Zip:          office.Zip,
		},
		Content: Content{
			Salutation: letter.Salutation,
			Subject:    subject,
			Body:       letter.Body,
			Closing:    letter.Closing,
			Signature: Signature{
				Type:      "typed",
				TypedName: sender.Name,
				Title:     sender.Title,
			},
		},
	}
}
