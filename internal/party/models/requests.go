package models

// CreatePartyRequest is the body of POST /v1/crm/accounts/parties.
// Optional fields are omitted when empty; the override block is only present
// when the caller explicitly overrides a duplicate conflict.
type CreatePartyRequest struct {
	LegalName             string            `json:"legalName"`
	DBAName               string            `json:"dbaName,omitempty"`
	TaxID                 string            `json:"taxId,omitempty"`
	DefaultBillingTermsID string            `json:"defaultBillingTermsId"`
	ExternalIdentifiers   map[string]string `json:"externalIdentifiers,omitempty"`
	*OverrideBlock
}

// OverrideBlock carries a duplicate override. All three fields are sent together.
type OverrideBlock struct {
	Enabled            bool     `json:"duplicateOverride"`
	Justification      string   `json:"overrideJustification"`
	OverriddenPartyIDs []string `json:"overriddenPartyIds"`
}

// SearchPartiesRequest is the body of POST /v1/crm/accounts/parties/search.
type SearchPartiesRequest struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	TaxID         string `json:"taxId,omitempty"`
	IncludeMerged bool   `json:"includeMerged"`
	PageNumber    int    `json:"pageNumber"`
	PageSize      int    `json:"pageSize"`
	SortField     string `json:"sortField"`
	SortOrder     string `json:"sortOrder"`
}

// DuplicateCheckRequest is the body of POST /v1/crm/accounts/parties/duplicate-check.
type DuplicateCheckRequest struct {
	LegalName string `json:"legalName,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
