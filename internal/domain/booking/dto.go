package booking

import "time"

type ToggleMaterialRequest struct {
	Selected []string `json:"selected"`
	Material string   `json:"material" validate:"required"`
}

type ContinueMaterialsRequest struct {
	Selected []string `json:"selected"`
}

// StartSessionResponse is returned when a wizard mounts.
type StartSessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Session   *SessionView `json:"session"`
}

type PinRequest struct {
	Latitude  *float64 `json:"lat" validate:"required,latitude"`
	Longitude *float64 `json:"lng" validate:"required,longitude"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type AbandonResponse struct {
	Discarded bool `json:"discarded"`
}
