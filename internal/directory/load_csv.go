package directory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// csvColumns maps the tabular export's header names to record fields. The
// export carries one row per official with a single mailing address.
var csvColumns = []string{"name_text", "address1_text", "City", "state_text", "zip_text"}

// LoadCSV loads officials from the tabular fallback export. Each row holds
// the official's titled name and one mailing address; the chamber column is
// optional and disambiguates bare Senator/Representative titles.
func LoadCSV(path string) ([]types.Official, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, &DirectoryError{Message: "failed to open CSV fallback", Cause: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &DirectoryError{Message: "failed to read CSV header", Cause: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range csvColumns {
		if _, ok := index[required]; !ok {
			return nil, nil, &DirectoryError{
				Message: fmt.Sprintf("CSV fallback missing column %q", required),
			}
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &DirectoryError{Message: "failed to read CSV rows", Cause: err}
	}

	var officials []types.Official
	var warnings []string

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for n, row := range rows {
		name := field(row, "name_text")
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("skipping CSV row %d: empty name", n+2))
			continue
		}

		hint := types.Chamber(strings.ToLower(field(row, "chamber")))
		category, chamber := Classify(name, hint)
		if category == types.CategoryUnresolved {
			warnings = append(warnings, fmt.Sprintf("skipping %q: cannot resolve office category", name))
			continue
		}

		title := derivedTitle(category)
		officials = append(officials, types.Official{
			ID:           csvID(name, n),
			FullName:     name,
			Name:         strippedName(name),
			Honorific:    "The Honorable",
			Title:        title,
			Organization: derivedOrganization(category),
			Category:     category,
			Chamber:      chamber,
			Offices: []types.Office{{
				Label:     "Mailing Address",
				Street1:   field(row, "address1_text"),
				City:      field(row, "City"),
				State:     field(row, "state_text"),
				Zip:       field(row, "zip_text"),
				IsDefault: true,
			}},
		})
	}

	if len(officials) == 0 {
		return nil, warnings, &DirectoryError{Message: "CSV fallback contains no resolvable officials"}
	}

	return officials, warnings, nil
}

// titlePrefixes are the leading title words stripped to recover a bare name.
var titlePrefixes = []string{
	"governor", "u.s. senator", "united states senator", "senator",
	"u.s. representative", "united states representative", "representative",
	"congressman", "congresswoman", "state senator", "state representative",
	"the honorable",
}

// strippedName removes the leading title from a titled name like
// "Senator Jane Smith".
func strippedName(titled string) string {
	lower := strings.ToLower(titled)
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			return strings.TrimSpace(titled[len(prefix):])
		}
	}
	return titled
}

// csvID builds a stable identifier from the row's name and position.
func csvID(name string, row int) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '.', r == '-':
			return '_'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '_' }), "_"), "_")
	if slug == "" {
		return fmt.Sprintf("row_%d", row+1)
	}
	return slug
}
