package audit

import "time"

// Action names what happened to a party.
type Action string

const (
	ActionPartyCreated             Action = "party_created"
	ActionPartyCreatedWithOverride Action = "party_created_with_override"
	ActionDuplicateReviewRequired  Action = "duplicate_review_required"
)

// Event is emitted from party operations to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	PartyID   string    `json:"party_id,omitempty"`
	// Subject is the legal name the action concerned.
	Subject string `json:"subject,omitempty"`
	// Reason holds the caller-supplied justification for overrides.
	Reason string `json:"reason,omitempty"`
	// RelatedPartyIDs lists duplicate candidates reviewed or overridden.
	RelatedPartyIDs []string `json:"related_party_ids,omitempty"`
	RequestID       string   `json:"request_id,omitempty"`
}
