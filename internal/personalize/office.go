// Package personalize generates per-recipient variations of the base letter
// under a uniqueness constraint on opening and closing sentences.
package personalize

import (
	"fmt"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// OfficePreference selects which of an official's offices a letter is
// addressed to.
type OfficePreference string

const (
	// PreferDefault uses the office the directory marks as default.
	PreferDefault OfficePreference = "default"
	// PreferLocal uses the first non-DC office, falling back to the default.
	PreferLocal OfficePreference = "local"
	// PreferDC uses the first DC office, falling back to the default.
	PreferDC OfficePreference = "dc"
)

// ResolveOffice picks the mailing office for an official under the given
// preference. Resolution is total for any official with at least one office:
// an unsatisfiable preference falls back to the default rather than failing.
func ResolveOffice(official types.Official, pref OfficePreference) (types.Office, error) {
	fallback, ok := official.DefaultOffice()
	if !ok {
		return types.Office{}, fmt.Errorf("official %s has no offices", official.ID)
	}

	switch pref {
	case PreferLocal:
		for _, office := range official.Offices {
			if !strings.EqualFold(office.State, "DC") {
				return office, nil
			}
		}
	case PreferDC:
		for _, office := range official.Offices {
			if strings.EqualFold(office.State, "DC") {
				return office, nil
			}
		}
	}
	return fallback, nil
}
