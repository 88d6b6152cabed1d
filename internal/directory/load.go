package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// rawOffice is one office entry in the primary JSON directory format.
type rawOffice struct {
	Name    string `json:"name"`
	Street1 string `json:"street_1"`
	Street2 string `json:"street_2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

// rawOfficial is one official entry in the primary JSON directory format.
type rawOfficial struct {
	ID           string               `json:"id"`
	FullName     string               `json:"full_name"`
	Name         string               `json:"name"`
	Honorific    string               `json:"honorific,omitempty"`
	Title        string               `json:"title,omitempty"`
	Organization string               `json:"organization,omitempty"`
	District     string               `json:"district,omitempty"`
	Party        string               `json:"party,omitempty"`
	Offices      map[string]rawOffice `json:"offices"`
}

// rawDirectory is the primary JSON directory format: officials grouped by
// level of government and body.
type rawDirectory struct {
	Federal struct {
		Senate []rawOfficial `json:"senate"`
		House  []rawOfficial `json:"house"`
	} `json:"federal"`
	State struct {
		Executive struct {
			Governor *rawOfficial `json:"governor"`
		} `json:"executive"`
		Senate []rawOfficial `json:"senate"`
		House  []rawOfficial `json:"house"`
	} `json:"state"`
}

// Load reads the recipient directory, trying the primary JSON source first
// and the CSV fallback next. It returns the classified officials in directory
// order plus warnings for records that were rejected rather than fatal.
// Only when both sources are absent or unparseable does it fail.
func Load(jsonPath, csvPath string) ([]types.Official, []string, error) {
	if _, err := os.Stat(jsonPath); err == nil {
		officials, warnings, err := LoadJSON(jsonPath)
		if err == nil {
			return officials, warnings, nil
		}
		// Fall through to CSV with the JSON failure reported as a warning.
		if _, statErr := os.Stat(csvPath); statErr == nil {
			officials, warnings, csvErr := LoadCSV(csvPath)
			if csvErr != nil {
				return nil, nil, &DirectoryError{Message: "both directory sources failed", Cause: err}
			}
			warnings = append([]string{fmt.Sprintf("primary directory %s unusable: %v", jsonPath, err)}, warnings...)
			return officials, warnings, nil
		}
		return nil, nil, &DirectoryError{Message: fmt.Sprintf("failed to load %s", jsonPath), Cause: err}
	}

	if _, err := os.Stat(csvPath); err == nil {
		return LoadCSV(csvPath)
	}

	return nil, nil, &DirectoryError{
		Message: fmt.Sprintf("no directory source found (tried %s, %s)", jsonPath, csvPath),
	}
}

// LoadJSON loads officials from the primary JSON format.
func LoadJSON(path string) ([]types.Official, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &DirectoryError{Message: "failed to read directory file", Cause: err}
	}

	var raw rawDirectory
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, &DirectoryError{Message: "failed to parse directory JSON", Cause: err}
	}

	var officials []types.Official
	var warnings []string

	appendGroup := func(entries []rawOfficial, hint types.Chamber) {
		for _, entry := range entries {
			official, warning := buildOfficial(entry, hint)
			if warning != "" {
				warnings = append(warnings, warning)
				continue
			}
			officials = append(officials, official)
		}
	}

	// Directory order: governor, federal senate, federal house, state senate,
	// state house. Selection later preserves this load order.
	if raw.State.Executive.Governor != nil {
		appendGroup([]rawOfficial{*raw.State.Executive.Governor}, types.ChamberState)
	}
	appendGroup(raw.Federal.Senate, types.ChamberFederal)
	appendGroup(raw.Federal.House, types.ChamberFederal)
	appendGroup(raw.State.Senate, types.ChamberState)
	appendGroup(raw.State.House, types.ChamberState)

	if len(officials) == 0 {
		return nil, warnings, &DirectoryError{Message: "directory contains no resolvable officials"}
	}

	return officials, warnings, nil
}

// buildOfficial converts a raw record into a classified Official, or returns
// a warning when the record cannot be resolved.
func buildOfficial(entry rawOfficial, hint types.Chamber) (types.Official, string) {
	titleSource := entry.Title
	if titleSource == "" {
		titleSource = entry.FullName
	}

	category, chamber := Classify(titleSource, hint)
	if category == types.CategoryUnresolved {
		return types.Official{}, fmt.Sprintf("skipping %q: cannot resolve office category from title %q", entry.FullName, titleSource)
	}

	if len(entry.Offices) == 0 {
		return types.Official{}, fmt.Sprintf("skipping %q: no offices listed", entry.FullName)
	}

	official := types.Official{
		ID:           entry.ID,
		FullName:     entry.FullName,
		Name:         entry.Name,
		Honorific:    entry.Honorific,
		Title:        entry.Title,
		Organization: entry.Organization,
		Category:     category,
		Chamber:      chamber,
		District:     entry.District,
		Party:        entry.Party,
		Offices:      orderedOffices(entry.Offices),
	}

	if official.Honorific == "" {
		official.Honorific = "The Honorable"
	}
	if official.Title == "" {
		official.Title = derivedTitle(category)
	}
	if official.Organization == "" {
		official.Organization = derivedOrganization(category)
	}
	if official.Name == "" {
		official.Name = strings.TrimSpace(strings.TrimPrefix(entry.FullName, official.Title))
	}

	return official, ""
}

// orderedOffices flattens the office map into a deterministic slice with
// exactly one default: the "dc" entry when present, otherwise the first key
// in sorted order.
func orderedOffices(raw map[string]rawOffice) []types.Office {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	defaultKey := keys[0]
	for _, key := range keys {
		if key == "dc" || strings.EqualFold(raw[key].State, "DC") {
			defaultKey = key
			break
		}
	}

	offices := make([]types.Office, 0, len(keys))
	for _, key := range keys {
		entry := raw[key]
		label := entry.Name
		if label == "" {
			label = entry.City + " Office"
		}
		offices = append(offices, types.Office{
			Label:     label,
			Street1:   entry.Street1,
			Street2:   entry.Street2,
			City:      entry.City,
			State:     entry.State,
			Zip:       entry.Zip,
			Phone:     entry.Phone,
			IsDefault: key == defaultKey,
		})
	}

	return offices
}
