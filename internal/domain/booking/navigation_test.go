package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardScrapWizard(t *testing.T) {
	tests := []struct {
		name     string
		state    NavState
		redirect bool
		to       string
		forward  any
	}{
		{name: "no state", state: NavState{}, redirect: true, to: RouteMaterials},
		{name: "empty materials", state: NavState{ScrapTypes: []string{}, WeightKg: "0-10kg"}, redirect: true, to: RouteMaterials},
		{
			name:     "materials without weight",
			state:    NavState{ScrapTypes: []string{"plastic", "metal"}},
			redirect: true,
			to:       RouteWeight,
			forward:  NavState{ScrapTypes: []string{"plastic", "metal"}},
		},
		{name: "complete", state: NavState{ScrapTypes: []string{"plastic"}, WeightKg: "10-25kg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, redirect := GuardScrapWizard(tt.state)
			assert.Equal(t, tt.redirect, redirect)
			if !tt.redirect {
				return
			}
			assert.Equal(t, tt.to, nav.To)
			if tt.forward == nil {
				assert.Nil(t, nav.State)
			} else {
				assert.Equal(t, tt.forward, nav.State)
			}
		})
	}
}

func TestNavState_Normalize(t *testing.T) {
	in := NavState{
		ScrapTypes: []string{"plastic", "wood", "plastic", "kryptonite", "metal"},
		WeightKg:   "7kg",
	}
	assert.Equal(t, NavState{ScrapTypes: []string{"plastic", "metal"}}, in.Normalize())
}

func TestToggleMaterial(t *testing.T) {
	sel, err := ToggleMaterial(nil, "plastic")
	require.NoError(t, err)
	assert.Equal(t, []string{"plastic"}, sel.Selected)
	assert.True(t, sel.CanContinue)

	sel, err = ToggleMaterial(sel.Selected, "metal")
	require.NoError(t, err)
	assert.Equal(t, []string{"plastic", "metal"}, sel.Selected)

	sel, err = ToggleMaterial(sel.Selected, "plastic")
	require.NoError(t, err)
	assert.Equal(t, []string{"metal"}, sel.Selected)

	_, err = ToggleMaterial(sel.Selected, "rubber")
	assert.ErrorIs(t, err, ErrMaterialNotAccepted)

	_, err = ToggleMaterial(sel.Selected, "uranium")
	assert.ErrorIs(t, err, ErrUnknownMaterial)

	cleared := ClearMaterials()
	assert.Empty(t, cleared.Selected)
	assert.NotNil(t, cleared.Selected)
	assert.False(t, cleared.CanContinue)
}

func TestContinueFromMaterials(t *testing.T) {
	_, err := ContinueFromMaterials(nil)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, msgScrapTypes, fe["scrap_types"])

	nav, err := ContinueFromMaterials([]string{"glass", "paper"})
	require.NoError(t, err)
	assert.Equal(t, RouteWeight, nav.To)
	assert.Equal(t, NavState{ScrapTypes: []string{"glass", "paper"}}, nav.State)
}

func TestWeightPage(t *testing.T) {
	t.Run("without materials redirects", func(t *testing.T) {
		page, redirect := EnterWeightPage(NavState{})
		assert.Nil(t, page)
		require.NotNil(t, redirect)
		assert.Equal(t, RouteMaterials, redirect.To)
	})

	t.Run("renders bands and chosen materials", func(t *testing.T) {
		page, redirect := EnterWeightPage(NavState{ScrapTypes: []string{"electronics"}})
		require.Nil(t, redirect)
		assert.Len(t, page.WeightBands, 5)
		require.Len(t, page.Materials, 1)
		assert.Equal(t, "Electronics", page.Materials[0].Label)
	})

	t.Run("continue without weight is a field error", func(t *testing.T) {
		_, err := ContinueFromWeight(NavState{ScrapTypes: []string{"metal"}})
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, msgWeight, fe["weight_kg"])
	})

	t.Run("continue with weight enters the wizard", func(t *testing.T) {
		nav, err := ContinueFromWeight(NavState{ScrapTypes: []string{"metal"}, WeightKg: "50-100kg"})
		require.NoError(t, err)
		assert.Equal(t, RouteScrapWizard, nav.To)
		assert.Equal(t, NavState{ScrapTypes: []string{"metal"}, WeightKg: "50-100kg"}, nav.State)
	})

	t.Run("back goes to materials", func(t *testing.T) {
		assert.Equal(t, RouteMaterials, BackFromWeight().To)
	})
}
