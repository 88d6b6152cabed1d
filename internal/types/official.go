// Package types defines the shared data model for the letter generation pipeline.
package types

import "strings"

// OfficeCategory identifies the kind of elected office an official holds.
type OfficeCategory string

// Office categories, ordered by classification precedence.
const (
	CategoryGovernor   OfficeCategory = "governor"
	CategoryUSSenator  OfficeCategory = "us_senator"
	CategoryUSRep      OfficeCategory = "us_representative"
	CategoryStateSen   OfficeCategory = "state_senator"
	CategoryStateRep   OfficeCategory = "state_representative"
	CategoryUnresolved OfficeCategory = "unresolved"
)

// Chamber identifies the level of government an official serves in.
type Chamber string

// Chamber constants.
const (
	ChamberFederal Chamber = "federal"
	ChamberState   Chamber = "state"
)

// Office is a single mailing address for an official.
type Office struct {
	Label     string `json:"label"`
	Street1   string `json:"street_1"`
	Street2   string `json:"street_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Official is an elected office holder eligible to receive a letter.
// Loaded once per run from the recipient directory and never mutated.
type Official struct {
	ID           string         `json:"id"`
	FullName     string         `json:"full_name"`
	Name         string         `json:"name"`
	Honorific    string         `json:"honorific"`
	Title        string         `json:"title"`
	Organization string         `json:"organization"`
	Category     OfficeCategory `json:"office_category"`
	Chamber      Chamber        `json:"chamber"`
	District     string         `json:"district,omitempty"`
	Party        string         `json:"party,omitempty"`
	Offices      []Office       `json:"offices"`
}

// DefaultOffice returns the office marked as default.
// The directory loader guarantees exactly one default per official,
// so the fallback to the first office only covers hand-built values.
func (o *Official) DefaultOffice() (Office, bool) {
	for _, office := range o.Offices {
		if office.IsDefault {
			return office, true
		}
	}
	if len(o.Offices) > 0 {
		return o.Offices[0], true
	}
	return Office{}, false
}

// LastName returns the final token of the official's name, used in salutations.
func (o *Official) LastName() string {
	fields := strings.Fields(o.Name)
	if len(fields) == 0 {
		return o.Name
	}
	return fields[len(fields)-1]
}

// SalutationTitle returns the spoken title for the official's office category
// ("Governor", "Senator", "Representative").
func (o *Official) SalutationTitle() string {
	switch o.Category {
	case CategoryGovernor:
		return "Governor"
	case CategoryUSSenator, CategoryStateSen:
		return "Senator"
	case CategoryUSRep, CategoryStateRep:
		return "Representative"
	default:
		return ""
	}
}
