package models

// PartyStatus is the lifecycle status reported by the backend.
type PartyStatus string

const (
	PartyStatusActive   PartyStatus = "ACTIVE"
	PartyStatusInactive PartyStatus = "INACTIVE"
	PartyStatusMerged   PartyStatus = "MERGED"
)

// PlaceholderLegalName marks records synthesized while the backend is unimplemented.
const PlaceholderLegalName = "Placeholder Party"

// Party is the backend party record. Timestamps are kept as the backend's
// strings so they are echoed to callers unchanged.
type Party struct {
	PartyID               string            `json:"partyId"`
	PartyType             string            `json:"partyType,omitempty"`
	LegalName             string            `json:"legalName,omitempty"`
	DBAName               string            `json:"dbaName,omitempty"`
	TaxID                 string            `json:"taxId,omitempty"`
	Email                 string            `json:"email,omitempty"`
	Phone                 string            `json:"phone,omitempty"`
	Status                PartyStatus       `json:"status,omitempty"`
	DefaultBillingTermsID string            `json:"defaultBillingTermsId,omitempty"`
	ExternalIdentifiers   map[string]string `json:"externalIdentifiers,omitempty"`
	CreatedAt             string            `json:"createdAt,omitempty"`
	CreatedBy             string            `json:"createdBy,omitempty"`
	UpdatedAt             string            `json:"updatedAt,omitempty"`
	MergedToPartyID       string            `json:"mergedToPartyId,omitempty"`
}

// DuplicateCandidate is a pre-existing party that may match one being created.
// Candidates are surfaced for human review and never resolved automatically.
type DuplicateCandidate struct {
	PartyID      string      `json:"partyId"`
	LegalName    string      `json:"legalName,omitempty"`
	DBAName      string      `json:"dbaName,omitempty"`
	TaxID        string      `json:"taxId,omitempty"`
	Status       PartyStatus `json:"status,omitempty"`
	MatchScore   float64     `json:"matchScore,omitempty"`
	MatchReasons []string    `json:"matchReasons,omitempty"`
}

// BillingTerm is a payment term a commercial account can default to.
type BillingTerm struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DueDays     int    `json:"dueDays"`
	Active      bool   `json:"active"`
}
