package booking

import (
	"encoding/json"
	"fmt"
	"strings"

	"bioscrap/internal/domain/catalog"
)

type Mode string

const (
	ModeWaste Mode = "waste"
	ModeScrap Mode = "scrap"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeWaste, ModeScrap:
		return m, nil
	}
	return "", ErrInvalidMode
}

// Base holds the answers both pickup flows collect.
type Base struct {
	Date         string   `json:"date"`
	TimeSlot     string   `json:"timeSlot"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Pincode      string   `json:"pincode"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Instructions string   `json:"instructions"`
}

type WasteDraft struct {
	Base
	WasteType     string `json:"wasteType"`
	ContainerSize string `json:"containerSize"`
}

// ScrapDraft is seeded from the upstream selection pages; the wizard never edits its scrap fields.
type ScrapDraft struct {
	Base
	ScrapTypes []string `json:"scrapTypes"`
	WeightBand string   `json:"weightBand"`
}

// Draft is either a *WasteDraft or a *ScrapDraft.
type Draft interface {
	Mode() Mode
	Common() *Base
	apply(p Patch) FieldErrors
	clone() Draft
}

func (d *WasteDraft) Mode() Mode    { return ModeWaste }
func (d *WasteDraft) Common() *Base { return &d.Base }

func (d *ScrapDraft) Mode() Mode    { return ModeScrap }
func (d *ScrapDraft) Common() *Base { return &d.Base }

func (d *WasteDraft) clone() Draft {
	c := *d
	c.Base = d.Base.clone()
	return &c
}

func (d *ScrapDraft) clone() Draft {
	c := *d
	c.Base = d.Base.clone()
	c.ScrapTypes = append([]string(nil), d.ScrapTypes...)
	return &c
}

func (b Base) clone() Base {
	if b.Latitude != nil {
		v := *b.Latitude
		b.Latitude = &v
	}
	if b.Longitude != nil {
		v := *b.Longitude
		b.Longitude = &v
	}
	return b
}

func (b *Base) setCoordinates(lat, lng float64) {
	b.Latitude = &lat
	b.Longitude = &lng
}

// NewDraft creates the empty draft a wizard starts with.
func NewDraft(mode Mode, upstream NavState) Draft {
	if mode == ModeScrap {
		return &ScrapDraft{
			ScrapTypes: append([]string(nil), upstream.ScrapTypes...),
			WeightBand: upstream.WeightKg,
		}
	}
	return &WasteDraft{ContainerSize: catalog.DefaultContainerSize}
}

// Patch carries the fields an input handler changed. Nil means untouched.
// Coordinates are absent on purpose: they only change through the map.
type Patch struct {
	WasteType     *string `json:"wasteType"`
	ContainerSize *string `json:"containerSize"`
	Date          *string `json:"date"`
	TimeSlot      *string `json:"timeSlot"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Pincode       *string `json:"pincode"`
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Instructions  *string `json:"instructions"`
}

func (p Patch) applyBase(b *Base) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&b.Date, p.Date)
	set(&b.TimeSlot, p.TimeSlot)
	set(&b.Address, p.Address)
	set(&b.City, p.City)
	set(&b.Pincode, p.Pincode)
	set(&b.Name, p.Name)
	set(&b.Email, p.Email)
	set(&b.Phone, p.Phone)
	set(&b.Instructions, p.Instructions)
}

func (d *WasteDraft) apply(p Patch) FieldErrors {
	if p.ContainerSize != nil {
		if _, ok := catalog.FindContainerSize(*p.ContainerSize); !ok {
			return FieldErrors{"containerSize": msgContainerSize}
		}
		d.ContainerSize = *p.ContainerSize
	}
	if p.WasteType != nil {
		d.WasteType = *p.WasteType
	}
	p.applyBase(&d.Base)
	return nil
}

func (d *ScrapDraft) apply(p Patch) FieldErrors {
	errs := FieldErrors{}
	if p.WasteType != nil {
		errs["wasteType"] = msgNotInScrapFlow
	}
	if p.ContainerSize != nil {
		errs["containerSize"] = msgNotInScrapFlow
	}
	if len(errs) > 0 {
		return errs
	}
	p.applyBase(&d.Base)
	return nil
}

func encodeDraft(d Draft) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	return string(raw), nil
}

func decodeDraft(mode Mode, raw string) (Draft, error) {
	var d Draft
	switch mode {
	case ModeWaste:
		d = &WasteDraft{}
	case ModeScrap:
		d = &ScrapDraft{}
	default:
		return nil, ErrInvalidMode
	}
	if err := json.Unmarshal([]byte(raw), d); err != nil {
		return nil, fmt.Errorf("decode %s draft: %w", mode, err)
	}
	return d, nil
}
