package booking

import (
	"context"
	"time"

	"bioscrap/internal/geocoding"
)

// SessionRepository stores wizard sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	// ExistingIDs returns the subset of ids that still have a row.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}

// Geocoder resolves map positions and address searches. Failures come back empty.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) string
	Search(ctx context.Context, query string) []geocoding.Place
}
