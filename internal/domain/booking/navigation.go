package booking

import "bioscrap/internal/domain/catalog"

const (
	RouteHome        = "/"
	RouteMaterials   = "/booking/scrap"
	RouteWeight      = "/booking/scrap/weight"
	RouteWasteWizard = "/booking/waste"
	RouteScrapWizard = "/booking/scrap/schedule"
	RouteReceipt     = "/receipt"
)

// Navigation is a page transition together with the state it carries.
type Navigation struct {
	To    string `json:"to"`
	State any    `json:"state,omitempty"`
}

// NavState is the draft fragment the scrap selection pages hand forward.
// Every field may be absent.
type NavState struct {
	ScrapTypes []string `json:"scrap_types,omitempty"`
	WeightKg   string   `json:"weight_kg,omitempty"`
}

// Normalize drops materials that are unknown or not accepted, duplicates included,
// and an unknown weight band, so guards only see values the catalog can honour.
func (s NavState) Normalize() NavState {
	out := NavState{}
	seen := make(map[string]struct{}, len(s.ScrapTypes))
	for _, id := range s.ScrapTypes {
		if _, dup := seen[id]; dup {
			continue
		}
		if m, ok := catalog.FindMaterial(id); ok && m.Accepting {
			seen[id] = struct{}{}
			out.ScrapTypes = append(out.ScrapTypes, id)
		}
	}
	if _, ok := catalog.FindWeightBand(s.WeightKg); ok {
		out.WeightKg = s.WeightKg
	}
	return out
}

func materialsOnly(types []string) NavState {
	return NavState{ScrapTypes: append([]string(nil), types...)}
}

// GuardScrapWizard decides whether the scrap wizard may render for the given state.
// It returns the redirect and true when it may not.
func GuardScrapWizard(s NavState) (Navigation, bool) {
	if len(s.ScrapTypes) == 0 {
		return Navigation{To: RouteMaterials}, true
	}
	if s.WeightKg == "" {
		return Navigation{To: RouteWeight, State: materialsOnly(s.ScrapTypes)}, true
	}
	return Navigation{}, false
}

// GuardWeightPage sends the user back to materials when none were chosen.
func GuardWeightPage(s NavState) (Navigation, bool) {
	if len(s.ScrapTypes) == 0 {
		return Navigation{To: RouteMaterials}, true
	}
	return Navigation{}, false
}
