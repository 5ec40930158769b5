package events

import "time"

// LeadCreatedV1 is published after a lead has been persisted.
type LeadCreatedV1 struct {
	EventID    string    `json:"event_id"`
	LeadID     string    `json:"lead_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
