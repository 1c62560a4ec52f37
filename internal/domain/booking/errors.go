package booking

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidMode          = errors.New("invalid booking mode")
	ErrSessionNotFound      = errors.New("booking session not found")
	ErrNotFinalStep         = errors.New("submit is only allowed on the final step")
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrSubmissionFailed     = errors.New("booking submission failed")
	ErrUnknownMaterial      = errors.New("unknown scrap material")
	ErrMaterialNotAccepted  = errors.New("scrap material not currently accepted")
)

// FieldErrors maps a draft field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
