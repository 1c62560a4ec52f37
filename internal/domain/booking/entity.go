package booking

import "time"

type SessionStatus string

const (
	StatusActive     SessionStatus = "active"
	StatusSubmitting SessionStatus = "submitting"
)

// Session is a wizard in progress. Rows are short-lived: they are deleted on
// submit or abandon and purged once ExpiresAt passes.
type Session struct {
	ID          string        `gorm:"column:id;primaryKey;size:36"`
	Mode        Mode          `gorm:"column:mode;size:16;not null"`
	Step        int           `gorm:"column:step;not null"`
	Status      SessionStatus `gorm:"column:status;size:16;not null"`
	Draft       string        `gorm:"column:draft;type:text;not null"`
	LocationSeq int64         `gorm:"column:location_seq;not null;default:0"`
	ExpiresAt   time.Time     `gorm:"column:expires_at;index"`
	CreatedAt   time.Time     `gorm:"column:created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at"`
}

func (Session) TableName() string { return "wizard_sessions" }

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) wizard() (*Wizard, error) {
	d, err := decodeDraft(s.Mode, s.Draft)
	if err != nil {
		return nil, err
	}
	return &Wizard{Mode: s.Mode, Step: s.Step, Draft: d}, nil
}

func (s *Session) store(w *Wizard) error {
	raw, err := encodeDraft(w.Draft)
	if err != nil {
		return err
	}
	s.Draft = raw
	s.Step = w.Step
	return nil
}
