package booking

import (
	"strings"
	"time"

	"bioscrap/internal/domain/catalog"
	"bioscrap/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

const (
	msgWasteType      = "Please select a waste type"
	msgContainerSize  = "Please select a container size"
	msgDate           = "Please select a date"
	msgDatePast       = "Pickup date cannot be in the past"
	msgTimeSlot       = "Please select a time slot"
	msgAddress        = "Please enter your full address"
	msgCity           = "Please enter your city"
	msgPincode        = "Please enter a valid pincode"
	msgName           = "Please enter your name"
	msgEmail          = "Please enter a valid email"
	msgPhone          = "Please enter a valid phone number"
	msgNotInScrapFlow = "Not part of a scrap pickup"
	msgScrapTypes     = "Please select at least one scrap type"
	msgWeight         = "Please select a weight range"
)

type rule struct {
	field string
	tag   string
	msg   string
}

// Length rules stay length-only; pincode and phone accept any characters.
var locationRules = []rule{
	{field: "address", tag: "min=10", msg: msgAddress},
	{field: "city", tag: "min=2", msg: msgCity},
	{field: "pincode", tag: "min=5", msg: msgPincode},
}

var detailsRules = []rule{
	{field: "name", tag: "min=2", msg: msgName},
	{field: "email", tag: "required,email", msg: msgEmail},
	{field: "phone", tag: "min=10", msg: msgPhone},
}

// StepValidator checks only the fields owned by one logical step.
type StepValidator struct {
	loc *time.Location
	now func() time.Time
}

func NewStepValidator(loc *time.Location, now func() time.Time) *StepValidator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &StepValidator{loc: loc, now: now}
}

// Validate returns nil when the step may be left, otherwise the failing fields.
func (v *StepValidator) Validate(step StepType, d Draft) FieldErrors {
	errs := FieldErrors{}
	b := d.Common()

	switch step {
	case StepWasteType:
		w, ok := d.(*WasteDraft)
		if !ok || validator.Var(w.WasteType, "required,oneof="+strings.Join(catalog.WasteTypeIDs(), " ")) != "" {
			errs["wasteType"] = msgWasteType
		}
	case StepSchedule:
		if msg := v.checkDate(b.Date); msg != "" {
			errs["date"] = msg
		}
		if validator.Var(b.TimeSlot, "required,oneof="+strings.Join(catalog.TimeSlotIDs(), " ")) != "" {
			errs["timeSlot"] = msgTimeSlot
		}
	case StepLocation:
		check(errs, locationRules, map[string]string{"address": b.Address, "city": b.City, "pincode": b.Pincode})
	case StepDetails:
		check(errs, detailsRules, map[string]string{"name": b.Name, "email": b.Email, "phone": b.Phone})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func check(errs FieldErrors, rules []rule, values map[string]string) {
	for _, r := range rules {
		if validator.Var(values[r.field], r.tag) != "" {
			errs[r.field] = r.msg
		}
	}
}

func (v *StepValidator) checkDate(date string) string {
	if validator.Var(date, "required,datetime="+dateLayout) != "" {
		return msgDate
	}
	day, err := time.ParseInLocation(dateLayout, date, v.loc)
	if err != nil {
		return msgDate
	}
	if day.Before(v.today()) {
		return msgDatePast
	}
	return ""
}

func (v *StepValidator) today() time.Time {
	n := v.now().In(v.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, v.loc)
}
