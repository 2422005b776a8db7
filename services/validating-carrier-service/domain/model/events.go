package model

import "time"

// ResolvedEvent is published after every resolution
type ResolvedEvent struct {
	EventID    string         `json:"event_id"`
	ResolvedAt time.Time      `json:"resolved_at"`
	Request    ResolveRequest `json:"request"`
	Outcome    Outcome        `json:"outcome"`
}

// ReferenceDataChanged announces that reference data of a country was modified
type ReferenceDataChanged struct {
	Country string `json:"country"`
}
