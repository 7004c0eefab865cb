package models

// Typed views over backend success bodies. Every field is optional: a missing
// or mistyped field decodes to its zero value instead of failing the call.

// CreatePartyResponse is the 201 body of the create endpoint.
type CreatePartyResponse struct {
	PartyID   string `json:"partyId"`
	CreatedAt string `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
}

// SearchPartiesResponse is the 200 body of the search endpoint.
type SearchPartiesResponse struct {
	Results    []Party `json:"results"`
	TotalCount int     `json:"totalCount"`
	PageNumber *int    `json:"pageNumber"`
	PageSize   *int    `json:"pageSize"`
}

// DuplicateCheckResponse is the 200 body of the duplicate-check endpoint.
type DuplicateCheckResponse struct {
	Candidates []DuplicateCandidate `json:"candidates"`
}

// BillingTermsResponse is the 200 body of the billing terms endpoint.
type BillingTermsResponse struct {
	Items []BillingTerm `json:"items"`
}
