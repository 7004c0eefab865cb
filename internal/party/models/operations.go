package models

// CreationState is the terminal state of the account creation workflow.
type CreationState string

const (
	CreationCreated     CreationState = "CREATED"
	CreationNeedsReview CreationState = "NEEDS_REVIEW"
	CreationRejected    CreationState = "REJECTED"
	CreationDegraded    CreationState = "DEGRADED"
)

// CreateAccountInput is read from the request context of createCommercialAccount.
type CreateAccountInput struct {
	LegalName               string
	DBAName                 string
	TaxID                   string
	DefaultBillingTermsID   string
	ExternalIdentifierType  string
	ExternalIdentifierValue string
	DuplicateOverride       bool
	OverrideJustification   string
	// DuplicatePartyIDs is the raw comma-delimited list of reviewed candidates.
	DuplicatePartyIDs string
}

// CreateAccountResult is written back to the output context.
type CreateAccountResult struct {
	State               CreationState
	PartyID             string
	CreatedAt           string
	CreatedBy           string
	DuplicateCandidates []DuplicateCandidate
	ErrorCode           string
	CorrelationID       string
}

// FetchPartyResult is written back to the output context of getParty.
type FetchPartyResult struct {
	Party           *Party
	MergedToPartyID string
	Placeholder     bool
	ErrorCode       string
	CorrelationID   string
}

// SearchPartiesInput is read from the request context of searchParties.
// Zero values for paging and sorting are replaced by defaults.
type SearchPartiesInput struct {
	Name          string
	Email         string
	Phone         string
	TaxID         string
	IncludeMerged bool
	PageNumber    int
	PageSize      int
	SortField     string
	SortOrder     string
}

// HasFilter reports whether at least one search filter is present.
func (in SearchPartiesInput) HasFilter() bool {
	return in.Name != "" || in.Email != "" || in.Phone != "" || in.TaxID != ""
}

// SearchPartiesResult always carries a non-nil Results slice.
type SearchPartiesResult struct {
	Results    []Party
	TotalCount int
	PageNumber int
	PageSize   int
	ErrorCode  string
}

// DuplicateCheckInput is read from the request context of checkDuplicates.
type DuplicateCheckInput struct {
	LegalName string
	TaxID     string
	Email     string
	Phone     string
}

// BillingTermsResult always carries a non-nil Items slice.
type BillingTermsResult struct {
	Items    []BillingTerm
	Fallback bool
}
