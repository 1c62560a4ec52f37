package booking

import "bioscrap/internal/domain/catalog"

// MaterialSelection is the state of the materials page.
type MaterialSelection struct {
	Selected    []string `json:"selected"`
	CanContinue bool     `json:"can_continue"`
}

func newMaterialSelection(selected []string) MaterialSelection {
	if selected == nil {
		selected = []string{}
	}
	return MaterialSelection{Selected: selected, CanContinue: len(selected) > 0}
}

// ToggleMaterial adds id to the set or removes it when already present.
// Materials that are not accepted can never be added.
func ToggleMaterial(selected []string, id string) (MaterialSelection, error) {
	m, ok := catalog.FindMaterial(id)
	if !ok {
		return MaterialSelection{}, ErrUnknownMaterial
	}

	out := make([]string, 0, len(selected)+1)
	removed := false
	for _, s := range selected {
		if s == id {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if removed {
		return newMaterialSelection(out), nil
	}
	if !m.Accepting {
		return MaterialSelection{}, ErrMaterialNotAccepted
	}
	return newMaterialSelection(append(out, id)), nil
}

func ClearMaterials() MaterialSelection {
	return newMaterialSelection(nil)
}

// ContinueFromMaterials moves to the weight page carrying the chosen materials.
func ContinueFromMaterials(selected []string) (Navigation, error) {
	state := NavState{ScrapTypes: selected}.Normalize()
	if len(state.ScrapTypes) == 0 {
		return Navigation{}, FieldErrors{"scrap_types": msgScrapTypes}
	}
	return Navigation{To: RouteWeight, State: materialsOnly(state.ScrapTypes)}, nil
}

// WeightPage is what the weight page renders with.
type WeightPage struct {
	ScrapTypes  []string             `json:"scrap_types"`
	Materials   []catalog.Material   `json:"materials"`
	WeightBands []catalog.WeightBand `json:"weight_bands"`
	Selected    string               `json:"selected,omitempty"`
}

// EnterWeightPage renders the weight page, or redirects when materials are missing.
func EnterWeightPage(s NavState) (*WeightPage, *Navigation) {
	s = s.Normalize()
	if nav, redirect := GuardWeightPage(s); redirect {
		return nil, &nav
	}

	page := &WeightPage{
		ScrapTypes:  s.ScrapTypes,
		WeightBands: catalog.WeightBands(),
		Selected:    s.WeightKg,
	}
	for _, id := range s.ScrapTypes {
		m, _ := catalog.FindMaterial(id)
		page.Materials = append(page.Materials, m)
	}
	return page, nil
}

// ContinueFromWeight moves on to the scrap wizard once a band is chosen.
func ContinueFromWeight(s NavState) (Navigation, error) {
	s = s.Normalize()
	if nav, redirect := GuardWeightPage(s); redirect {
		return nav, nil
	}
	if s.WeightKg == "" {
		return Navigation{}, FieldErrors{"weight_kg": msgWeight}
	}
	return Navigation{To: RouteScrapWizard, State: s}, nil
}

func BackFromWeight() Navigation {
	return Navigation{To: RouteMaterials}
}
