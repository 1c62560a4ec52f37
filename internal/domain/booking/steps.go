package booking

// StepType is the logical content of a wizard step, independent of its position.
type StepType string

const (
	StepWasteType StepType = "wasteType"
	StepSchedule  StepType = "schedule"
	StepLocation  StepType = "location"
	StepDetails   StepType = "details"
)

type StepDefinition struct {
	Number int      `json:"number"`
	Type   StepType `json:"type"`
	Title  string   `json:"title"`
	Icon   string   `json:"icon"`
}

var wasteSteps = []StepDefinition{
	{Number: 1, Type: StepWasteType, Title: "Waste Type", Icon: "package"},
	{Number: 2, Type: StepSchedule, Title: "Schedule", Icon: "calendar"},
	{Number: 3, Type: StepLocation, Title: "Location", Icon: "map-pin"},
	{Number: 4, Type: StepDetails, Title: "Details", Icon: "user"},
}

var scrapSteps = []StepDefinition{
	{Number: 1, Type: StepSchedule, Title: "Schedule", Icon: "calendar"},
	{Number: 2, Type: StepLocation, Title: "Location", Icon: "map-pin"},
	{Number: 3, Type: StepDetails, Title: "Details", Icon: "user"},
}

// upstreamPages is how many selection pages the scrap flow shows before the wizard.
const upstreamPages = 2

func Steps(mode Mode) []StepDefinition {
	if mode == ModeScrap {
		return append([]StepDefinition(nil), scrapSteps...)
	}
	return append([]StepDefinition(nil), wasteSteps...)
}

func StepCount(mode Mode) int {
	if mode == ModeScrap {
		return len(scrapSteps)
	}
	return len(wasteSteps)
}

// StepAt returns the definition at a 1-based index.
func StepAt(mode Mode, index int) (StepDefinition, bool) {
	steps := wasteSteps
	if mode == ModeScrap {
		steps = scrapSteps
	}
	if index < 1 || index > len(steps) {
		return StepDefinition{}, false
	}
	return steps[index-1], true
}

// Progress is the position the user perceives, counting the scrap selection pages.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func progressFor(mode Mode, step int) Progress {
	if mode == ModeScrap {
		return Progress{Current: step + upstreamPages, Total: len(scrapSteps) + upstreamPages}
	}
	return Progress{Current: step, Total: len(wasteSteps)}
}
