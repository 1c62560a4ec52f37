package catalog

// Reference data is static configuration loaded at start and never mutated.

// Option is a selectable choice with a display label.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// TimeSlot is a pickup window; Range is what receipts print.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Range string `json:"range"`
}

type ContainerSize struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Capacity string `json:"capacity"`
}

// Material is a scrap category. Categories with Accepting=false are shown but cannot be selected.
type Material struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Accepting   bool   `json:"accepting"`
}

type WeightBand struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const DefaultContainerSize = "medium"

var wasteTypes = []Option{
	{ID: "kitchen", Label: "Kitchen Waste", Description: "Food scraps, vegetable peels, etc."},
	{ID: "garden", Label: "Garden Waste", Description: "Leaves, grass, branches"},
	{ID: "agricultural", Label: "Agricultural Waste", Description: "Crop residues, farm waste"},
	{ID: "food-commercial", Label: "Commercial Food", Description: "Restaurant & hotel waste"},
}

var timeSlots = []TimeSlot{
	{ID: "morning", Label: "Morning", Range: "8:00 AM - 12:00 PM"},
	{ID: "afternoon", Label: "Afternoon", Range: "12:00 PM - 4:00 PM"},
	{ID: "evening", Label: "Evening", Range: "4:00 PM - 8:00 PM"},
}

var containerSizes = []ContainerSize{
	{ID: "small", Label: "Small", Capacity: "120 L bin"},
	{ID: "medium", Label: "Medium", Capacity: "240 L bin"},
	{ID: "large", Label: "Large", Capacity: "660 L container"},
}

var materials = []Material{
	{ID: "plastic", Label: "Plastic", Description: "Bottles, containers, bags", Accepting: true},
	{ID: "paper", Label: "Paper", Description: "Newspapers, cardboard, books", Accepting: true},
	{ID: "metal", Label: "Metal", Description: "Aluminum, iron, copper", Accepting: true},
	{ID: "electronics", Label: "Electronics", Description: "Old phones, cables, batteries", Accepting: true},
	{ID: "glass", Label: "Glass", Description: "Bottles, jars, broken glass", Accepting: true},
	{ID: "fiber", Label: "Fiber/Cloth", Description: "Old clothes, fabric scraps", Accepting: false},
	{ID: "rubber", Label: "Rubber/Tires", Description: "Old tires, rubber products", Accepting: false},
	{ID: "wood", Label: "Wood", Description: "Furniture, wooden items", Accepting: false},
}

var weightBands = []WeightBand{
	{ID: "0-10kg", Label: "0 - 10 kg"},
	{ID: "10-25kg", Label: "10 - 25 kg"},
	{ID: "25-50kg", Label: "25 - 50 kg"},
	{ID: "50-100kg", Label: "50 - 100 kg"},
	{ID: "100kg+", Label: "100+ kg"},
}

// Accessors hand out copies so callers cannot mutate the shared tables.

func WasteTypes() []Option            { return append([]Option(nil), wasteTypes...) }
func TimeSlots() []TimeSlot           { return append([]TimeSlot(nil), timeSlots...) }
func ContainerSizes() []ContainerSize { return append([]ContainerSize(nil), containerSizes...) }
func Materials() []Material           { return append([]Material(nil), materials...) }
func WeightBands() []WeightBand       { return append([]WeightBand(nil), weightBands...) }

func WasteTypeIDs() []string {
	ids := make([]string, 0, len(wasteTypes))
	for _, w := range wasteTypes {
		ids = append(ids, w.ID)
	}
	return ids
}

func TimeSlotIDs() []string {
	ids := make([]string, 0, len(timeSlots))
	for _, s := range timeSlots {
		ids = append(ids, s.ID)
	}
	return ids
}

func ContainerSizeIDs() []string {
	ids := make([]string, 0, len(containerSizes))
	for _, c := range containerSizes {
		ids = append(ids, c.ID)
	}
	return ids
}

func FindWasteType(id string) (Option, bool) {
	for _, w := range wasteTypes {
		if w.ID == id {
			return w, true
		}
	}
	return Option{}, false
}

func FindTimeSlot(id string) (TimeSlot, bool) {
	for _, s := range timeSlots {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

func FindContainerSize(id string) (ContainerSize, bool) {
	for _, c := range containerSizes {
		if c.ID == id {
			return c, true
		}
	}
	return ContainerSize{}, false
}

func FindMaterial(id string) (Material, bool) {
	for _, m := range materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

func FindWeightBand(id string) (WeightBand, bool) {
	for _, w := range weightBands {
		if w.ID == id {
			return w, true
		}
	}
	return WeightBand{}, false
}
