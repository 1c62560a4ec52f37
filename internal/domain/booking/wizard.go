package booking

// Wizard is the step machine of one booking. Step is 1-based.
type Wizard struct {
	Mode  Mode
	Step  int
	Draft Draft
}

func NewWizard(mode Mode, draft Draft) *Wizard {
	return &Wizard{Mode: mode, Step: 1, Draft: draft}
}

func (w *Wizard) Current() StepDefinition {
	def, _ := StepAt(w.Mode, w.Step)
	return def
}

func (w *Wizard) IsLast() bool {
	return w.Step == StepCount(w.Mode)
}

// Next validates the current step and advances by one, clamped at the last step.
// On failure the step is left unchanged.
func (w *Wizard) Next(v *StepValidator) error {
	if errs := v.Validate(w.Current().Type, w.Draft); errs != nil {
		return errs
	}
	if !w.IsLast() {
		w.Step++
	}
	return nil
}

// Prev goes back one step. From the first scrap step it leaves the wizard for the
// weight page, keeping the chosen materials; the returned navigation is non-nil then.
// From the first waste step it does nothing.
func (w *Wizard) Prev() *Navigation {
	if w.Step > 1 {
		w.Step--
		return nil
	}
	if s, ok := w.Draft.(*ScrapDraft); ok {
		return &Navigation{To: RouteWeight, State: materialsOnly(s.ScrapTypes)}
	}
	return nil
}

// CheckSubmit reports whether the draft may be handed to the transport.
func (w *Wizard) CheckSubmit(v *StepValidator) error {
	if !w.IsLast() {
		return ErrNotFinalStep
	}
	if errs := v.Validate(w.Current().Type, w.Draft); errs != nil {
		return errs
	}
	return nil
}
