package catalog

// CatalogResponse is the full reference data set served to clients.
type CatalogResponse struct {
	WasteTypes           []Option        `json:"waste_types"`
	TimeSlots            []TimeSlot      `json:"time_slots"`
	ContainerSizes       []ContainerSize `json:"container_sizes"`
	DefaultContainerSize string          `json:"default_container_size"`
	Materials            []Material      `json:"materials"`
	WeightBands          []WeightBand    `json:"weight_bands"`
}

func Snapshot() CatalogResponse {
	return CatalogResponse{
		WasteTypes:           WasteTypes(),
		TimeSlots:            TimeSlots(),
		ContainerSizes:       ContainerSizes(),
		DefaultContainerSize: DefaultContainerSize,
		Materials:            Materials(),
		WeightBands:          WeightBands(),
	}
}
