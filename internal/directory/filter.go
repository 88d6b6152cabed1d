package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brian/letter-agent/internal/types"
)

// Selector names a subset of the directory. Selectors are order-preserving:
// the filtered slice keeps directory order regardless of the selector.
type Selector string

const (
	SelectAll         Selector = "all"
	SelectFederal     Selector = "federal"
	SelectState       Selector = "state"
	SelectLocalOffice Selector = "local-office"
	SelectDCOffice    Selector = "dc-office"
)

// Filter returns the officials matching the selector. An unknown selector is
// treated as a comma-separated list of official IDs.
func Filter(officials []types.Official, selector Selector) ([]types.Official, error) {
	switch selector {
	case "", SelectAll:
		return officials, nil
	case SelectFederal:
		return filterBy(officials, func(o types.Official) bool {
			return o.Chamber == types.ChamberFederal
		}), nil
	case SelectState:
		return filterBy(officials, func(o types.Official) bool {
			return o.Chamber == types.ChamberState
		}), nil
	case SelectDCOffice:
		return filterBy(officials, hasOfficeIn("DC")), nil
	case SelectLocalOffice:
		return filterBy(officials, func(o types.Official) bool {
			for _, office := range o.Offices {
				if !strings.EqualFold(office.State, "DC") {
					return true
				}
			}
			return false
		}), nil
	default:
		return FilterByIDs(officials, strings.Split(string(selector), ","))
	}
}

// FilterByIDs returns the officials whose IDs appear in ids, in directory
// order. Every requested ID must exist.
func FilterByIDs(officials []types.Official, ids []string) ([]types.Official, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			wanted[id] = true
		}
	}
	if len(wanted) == 0 {
		return nil, &DirectoryError{Message: "no recipient IDs given"}
	}

	selected := filterBy(officials, func(o types.Official) bool {
		return wanted[o.ID]
	})

	for _, official := range selected {
		delete(wanted, official.ID)
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for id := range wanted {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return nil, &DirectoryError{
			Message: fmt.Sprintf("unknown recipient IDs: %s", strings.Join(missing, ", ")),
		}
	}

	return selected, nil
}

func filterBy(officials []types.Official, keep func(types.Official) bool) []types.Official {
	var out []types.Official
	for _, official := range officials {
		if keep(official) {
			out = append(out, official)
		}
	}
	return out
}

func hasOfficeIn(state string) func(types.Official) bool {
	return func(o types.Official) bool {
		for _, office := range o.Offices {
			if strings.EqualFold(office.State, state) {
				return true
			}
		}
		return false
	}
}
