package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bioscrap/internal/relay"
)

func keys(f relay.Form) []string {
	out := make([]string, 0, len(f))
	for _, field := range f {
		out = append(out, field.Key)
	}
	return out
}

func TestBuildForm_Waste(t *testing.T) {
	d := &WasteDraft{Base: completeBase(), WasteType: "kitchen", ContainerSize: "medium"}
	now := time.Date(2025, 5, 20, 4, 30, 0, 0, time.UTC)

	form := BuildForm(d, now)

	assert.Equal(t, []string{
		"wasteType", "containerSize", "date", "timeSlot", "address", "city", "pincode",
		"name", "email", "phone", "instructions", "timestamp", "service_type", "order_type",
	}, keys(form))

	m := form.Map()
	assert.Equal(t, "kitchen", m["wasteType"])
	assert.Equal(t, "2025-06-01", m["date"])
	assert.Equal(t, "morning", m["timeSlot"])
	assert.Equal(t, "12 Example Street, near market", m["address"])
	assert.Equal(t, "Pune", m["city"])
	assert.Equal(t, "411001", m["pincode"])
	assert.Equal(t, "Asha Rao", m["name"])
	assert.Equal(t, "asha@example.com", m["email"])
	assert.Equal(t, "9876543210", m["phone"])
	assert.Equal(t, "2025-05-20T04:30:00.000Z", m["timestamp"])
	assert.Equal(t, "waste", m["service_type"])
	assert.Equal(t, "Bio-Waste Pickup", m["order_type"])
	assert.NotContains(t, m, "scrap_items")
}

func TestBuildForm_Scrap(t *testing.T) {
	lat, lng := 18.5204, 73.8567
	d := &ScrapDraft{Base: completeBase(), ScrapTypes: []string{"plastic", "metal"}, WeightBand: "10-25kg"}
	d.Latitude, d.Longitude = &lat, &lng

	m := BuildForm(d, time.Now()).Map()

	assert.Equal(t, "scrap", m["service_type"])
	assert.Equal(t, "Scrap Pickup", m["order_type"])
	assert.Equal(t, "plastic, metal", m["scrap_items"])
	assert.Equal(t, "10-25kg", m["weight"])
	assert.Equal(t, "18.5204", m["latitude"])
	assert.Equal(t, "73.8567", m["longitude"])
	assert.NotContains(t, m, "wasteType")
	assert.NotContains(t, m, "containerSize")
}

func TestReceipt_ShowsValuesUnchanged(t *testing.T) {
	d := &WasteDraft{Base: completeBase(), WasteType: "garden", ContainerSize: "large"}
	d.Instructions = "Gate code 1234"

	r := RenderReceipt(SnapshotOf(d))

	assert.Equal(t, "Waste Pickup", r.TypeLabel)
	assert.Equal(t, "garden", r.WasteType)
	assert.Equal(t, "Garden Waste", r.WasteTypeLabel)
	assert.Equal(t, "8:00 AM - 12:00 PM", r.TimeSlot)
	assert.Equal(t, "Large", r.Container)
	assert.Equal(t, d.Date, r.Date)
	assert.Equal(t, d.Address, r.Address)
	assert.Equal(t, d.City, r.City)
	assert.Equal(t, d.Pincode, r.Pincode)
	assert.Equal(t, d.Name, r.Name)
	assert.Equal(t, d.Phone, r.Phone)
	assert.Equal(t, d.Email, r.Email)
	assert.Equal(t, d.Instructions, r.Instructions)
	assert.Empty(t, r.ScrapItems)
}

func TestReceipt_Scrap(t *testing.T) {
	d := &ScrapDraft{Base: completeBase(), ScrapTypes: []string{"paper", "glass", "metal"}, WeightBand: "100kg+"}
	d.TimeSlot = "custom-slot"

	r := RenderReceipt(SnapshotOf(d))

	assert.Equal(t, "Scrap Pickup", r.TypeLabel)
	assert.Equal(t, 3, r.ScrapItemCount)
	assert.Equal(t, []string{"paper", "glass", "metal"}, r.ScrapItems)
	assert.Equal(t, "100+ kg", r.Weight)
	assert.Equal(t, "custom-slot", r.TimeSlot)
	assert.Empty(t, r.Container)
	assert.Empty(t, r.WasteType)
}

func TestConfirmation_Actions(t *testing.T) {
	d := &ScrapDraft{Base: completeBase(), ScrapTypes: []string{"paper"}, WeightBand: "0-10kg"}
	c := newConfirmation(d)

	require.Len(t, c.Actions, 2)
	assert.Equal(t, RouteReceipt, c.Actions[0].Navigate.To)
	assert.Equal(t, c.Booking, c.Actions[0].Navigate.State)
	assert.Equal(t, RouteHome, c.Actions[1].Navigate.To)
	assert.Equal(t, confirmedTitle, c.Title)

	// the snapshot does not share memory with the draft
	d.ScrapTypes[0] = "metal"
	assert.Equal(t, []string{"paper"}, c.Booking.ScrapTypes)
}

func TestReceipt_JSONCarriesWasteType(t *testing.T) {
	r := RenderReceipt(SnapshotOf(&WasteDraft{Base: completeBase(), WasteType: "kitchen", ContainerSize: "medium"}))

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"waste_type":"kitchen"`)
	assert.Contains(t, string(raw), `"waste_type_label":"Kitchen Waste"`)
}
