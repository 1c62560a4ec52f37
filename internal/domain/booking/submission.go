package booking

import (
	"strconv"
	"strings"
	"time"

	"bioscrap/internal/domain/catalog"
	"bioscrap/internal/relay"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	confirmedTitle   = "Booking Confirmed!"
	confirmedMessage = "We'll send you a confirmation email shortly."
)

func orderType(mode Mode) string {
	if mode == ModeWaste {
		return "Bio-Waste Pickup"
	}
	return "Scrap Pickup"
}

func typeLabel(mode Mode) string {
	if mode == ModeWaste {
		return "Waste Pickup"
	}
	return "Scrap Pickup"
}

// BuildForm flattens a draft into the relay form: answers first, then the derived metadata.
func BuildForm(d Draft, now time.Time) relay.Form {
	var form relay.Form
	b := d.Common()

	if w, ok := d.(*WasteDraft); ok {
		form.Add("wasteType", w.WasteType)
		form.Add("containerSize", w.ContainerSize)
	}
	form.Add("date", b.Date)
	form.Add("timeSlot", b.TimeSlot)
	form.Add("address", b.Address)
	form.Add("city", b.City)
	form.Add("pincode", b.Pincode)
	form.Add("name", b.Name)
	form.Add("email", b.Email)
	form.Add("phone", b.Phone)
	form.Add("instructions", b.Instructions)
	if b.Latitude != nil && b.Longitude != nil {
		form.Add("latitude", strconv.FormatFloat(*b.Latitude, 'f', -1, 64))
		form.Add("longitude", strconv.FormatFloat(*b.Longitude, 'f', -1, 64))
	}

	form.Add("timestamp", now.UTC().Format(timestampLayout))
	form.Add("service_type", string(d.Mode()))
	form.Add("order_type", orderType(d.Mode()))
	if s, ok := d.(*ScrapDraft); ok {
		form.Add("scrap_items", strings.Join(s.ScrapTypes, ", "))
		if s.WeightBand != "" {
			form.Add("weight", s.WeightBand)
		}
	}
	return form
}

// Snapshot is a read-only copy of a submitted draft, flattened with its mode.
type Snapshot struct {
	Mode Mode `json:"mode" validate:"required,oneof=waste scrap"`
	Base
	WasteType     string   `json:"wasteType,omitempty"`
	ContainerSize string   `json:"containerSize,omitempty"`
	ScrapTypes    []string `json:"scrapTypes,omitempty"`
	WeightBand    string   `json:"weightBand,omitempty"`
}

func SnapshotOf(d Draft) Snapshot {
	c := d.clone()
	s := Snapshot{Mode: c.Mode(), Base: *c.Common()}
	switch v := c.(type) {
	case *WasteDraft:
		s.WasteType = v.WasteType
		s.ContainerSize = v.ContainerSize
	case *ScrapDraft:
		s.ScrapTypes = v.ScrapTypes
		s.WeightBand = v.WeightBand
	}
	return s
}

type Action struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Navigate Navigation `json:"navigate"`
}

// Confirmation is the one-way exit of the wizard after a successful submission.
type Confirmation struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Booking Snapshot `json:"booking"`
	Actions []Action `json:"actions"`
}

func newConfirmation(d Draft) *Confirmation {
	snap := SnapshotOf(d)
	return &Confirmation{
		Title:   confirmedTitle,
		Message: confirmedMessage,
		Booking: snap,
		Actions: []Action{
			{ID: "receipt", Label: "Show Receipt", Navigate: Navigation{To: RouteReceipt, State: snap}},
			{ID: "home", Label: "Back to Home", Navigate: Navigation{To: RouteHome}},
		},
	}
}

// Receipt is the printable summary. Values are shown as entered; only
// time slot, weight and container gain display labels, and the waste type
// carries its label alongside the raw id.
type Receipt struct {
	Mode           Mode     `json:"mode"`
	TypeLabel      string   `json:"type_label"`
	WasteType      string   `json:"waste_type,omitempty"`
	WasteTypeLabel string   `json:"waste_type_label,omitempty"`
	ScrapItems     []string `json:"scrap_items,omitempty"`
	ScrapItemCount int      `json:"scrap_item_count,omitempty"`
	Weight         string   `json:"weight,omitempty"`
	Container      string   `json:"container,omitempty"`
	Date           string   `json:"date"`
	TimeSlot       string   `json:"time_slot"`
	City           string   `json:"city"`
	Pincode        string   `json:"pincode"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Instructions   string   `json:"instructions,omitempty"`
}

func RenderReceipt(s Snapshot) Receipt {
	r := Receipt{
		Mode:         s.Mode,
		TypeLabel:    typeLabel(s.Mode),
		Date:         s.Date,
		TimeSlot:     s.TimeSlot,
		City:         s.City,
		Pincode:      s.Pincode,
		Address:      s.Address,
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Instructions: s.Instructions,
	}
	if slot, ok := catalog.FindTimeSlot(s.TimeSlot); ok {
		r.TimeSlot = slot.Range
	}

	switch s.Mode {
	case ModeScrap:
		r.ScrapItems = append([]string(nil), s.ScrapTypes...)
		r.ScrapItemCount = len(s.ScrapTypes)
		r.Weight = s.WeightBand
		if band, ok := catalog.FindWeightBand(s.WeightBand); ok {
			r.Weight = band.Label
		}
	case ModeWaste:
		r.WasteType = s.WasteType
		if wt, ok := catalog.FindWasteType(s.WasteType); ok {
			r.WasteTypeLabel = wt.Label
		}
		r.Container = s.ContainerSize
		if size, ok := catalog.FindContainerSize(s.ContainerSize); ok {
			r.Container = size.Label
		}
	}
	return r
}
