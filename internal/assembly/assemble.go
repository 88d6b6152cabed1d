package assembly

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brian/letter-agent/internal/schemas"
	"github.com/brian/letter-agent/internal/types"
)

// Artifact kinds.
const (
	KindLetterJSON = "letter_json"
	KindLetterText = "letter_text"
	KindSnapshot   = "snapshot"
)

// Artifact is one output document ready to write.
type Artifact struct {
	Name       string
	Kind       string
	OfficialID string
	Data       []byte
}

// Assemble produces one JSON and one plain-text artifact per accepted
// variant, plus exactly one session snapshot. It fails only when nothing was
// accepted. Pure with respect to the session: re-running on an unchanged
// session reproduces identical artifacts except metadata.generated_at.
func Assemble(session *types.Session, recipients map[string]types.Official, sender types.Sender, now time.Time) ([]Artifact, error) {
	accepted := session.AcceptedIDs()
	if len(accepted) == 0 {
		return nil, &AssemblyError{Message: "no accepted variants to assemble"}
	}

	var artifacts []Artifact
	for _, id := range accepted {
		letter := session.Variants[id]
		official, ok := recipients[id]
		if !ok {
			return nil, &AssemblyError{Message: fmt.Sprintf("accepted variant %s has no directory record", id)}
		}

		office, err := variantOffice(letter, official)
		if err != nil {
			return nil, err
		}

		doc := buildDocument(session, official, letter, office, sender, now)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, &AssemblyError{Message: fmt.Sprintf("failed to marshal document for %s", id), Cause: err}
		}
		if err := schemas.ValidateLetterJSON(string(data)); err != nil {
			return nil, &AssemblyError{Message: fmt.Sprintf("document for %s failed schema validation", id), Cause: err}
		}

		baseName := fmt.Sprintf("%s_%s", sanitizeName(id), doc.Metadata.ReferenceID)
		artifacts = append(artifacts,
			Artifact{Name: baseName + ".json", Kind: KindLetterJSON, OfficialID: id, Data: data},
			Artifact{Name: baseName + ".txt", Kind: KindLetterText, OfficialID: id, Data: []byte(renderText(doc))},
		)
	}

	snapshot, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return nil, &AssemblyError{Message: "failed to marshal session snapshot", Cause: err}
	}
	artifacts = append(artifacts, Artifact{
		Name: fmt.Sprintf("session_%s.json", session.ID),
		Kind: KindSnapshot,
		Data: snapshot,
	})

	return artifacts, nil
}

// WriteAll writes artifacts under dir, creating it if needed.
func WriteAll(artifacts []Artifact, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, artifact := range artifacts {
		path := filepath.Join(dir, artifact.Name)
		if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", artifact.Name, err)
		}
	}
	return nil
}

// variantOffice returns the office the letter was bound to, falling back to
// the official's default for hand-built sessions.
func variantOffice(letter *types.Letter, official types.Official) (types.Office, error) {
	if letter.OfficeUsed != nil {
		return *letter.OfficeUsed, nil
	}
	if office, ok := official.DefaultOffice(); ok {
		return office, nil
	}
	return types.Office{}, &AssemblyError{Message: fmt.Sprintf("no office for official %s", official.ID)}
}

// renderText produces the human-readable plain-text letter.
func renderText(doc Document) string {
	var b strings.Builder

	b.WriteString(doc.ReturnAddress.Name + "\n")
	b.WriteString(doc.ReturnAddress.Street1 + "\n")
	if doc.ReturnAddress.Street2 != "" {
		b.WriteString(doc.ReturnAddress.Street2 + "\n")
	}
	fmt.Fprintf(&b, "%s, %s %s\n\n", doc.ReturnAddress.City, doc.ReturnAddress.State, doc.ReturnAddress.Zip)

	b.WriteString(doc.Metadata.Date + "\n\n")

	fmt.Fprintf(&b, "%s %s\n", doc.RecipientAddress.Honorific, doc.RecipientAddress.Name)
	if doc.RecipientAddress.Organization != "" {
		b.WriteString(doc.RecipientAddress.Organization + "\n")
	}
	b.WriteString(doc.RecipientAddress.Street1 + "\n")
	if doc.RecipientAddress.Street2 != "" {
		b.WriteString(doc.RecipientAddress.Street2 + "\n")
	}
	fmt.Fprintf(&b, "%s, %s %s\n\n", doc.RecipientAddress.City, doc.RecipientAddress.State, doc.RecipientAddress.Zip)

	b.WriteString(doc.Content.Subject + "\n\n")
	b.WriteString(doc.Content.Salutation + ",\n\n")
	for _, para := range doc.Content.Body {
		b.WriteString(para + "\n\n")
	}
	b.WriteString(doc.Content.Closing + ",\n\n")
	b.WriteString(doc.Content.Signature.TypedName + "\n")
	if doc.Content.Signature.Title != "" {
		b.WriteString(doc.Content.Signature.Title + "\n")
	}

	return b.String()
}

// sanitizeName makes an ID safe for filenames.
func sanitizeName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
