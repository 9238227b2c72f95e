package entities

import (
	"encoding/json"
	"time"
)

// SessionVersion is an archived snapshot of a session taken after one
// successful operation.
type SessionVersion struct {
	ID          string          `json:"id"`
	Version     int             `json:"version"`
	Action      string          `json:"action"`
	Phase       string          `json:"phase"`
	TurnCounter int             `json:"turn_counter"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   time.Time       `json:"created_at"`
}
