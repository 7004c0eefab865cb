// Package outcome maps a bridge response onto the closed set of domain outcomes
// the party operations act on.
package outcome

import (
	"encoding/json"
	"errors"

	"partybridge/internal/party/models"
)

// Kind is the normalized result of one bridge call. Exactly one kind is
// resolved per response.
type Kind int

const (
	GenericFailure Kind = iota
	Success
	DuplicateConflict
	ValidationFailure
	Forbidden
	NotImplemented
	MergedRedirect
	NotFound
	// TransportFault is produced only by FromCall when the call returned no response.
	TransportFault
)

var kindNames = map[Kind]string{
	GenericFailure:    "generic_failure",
	Success:           "success",
	DuplicateConflict: "duplicate_conflict",
	ValidationFailure: "validation_failure",
	Forbidden:         "forbidden",
	NotImplemented:    "not_implemented",
	MergedRedirect:    "merged_redirect",
	NotFound:          "not_found",
	TransportFault:    "transport_fault",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Stable error codes written to the output context's errorCode field.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAccessDenied   = "ACCESS_DENIED"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "DUPLICATE_CONFLICT"
	CodeMerged         = "PARTY_MERGED"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeTransport      = "TRANSPORT_FAULT"
	CodeBackend        = "BACKEND_ERROR"
)

// Code returns the error code for k. Success has none.
func (k Kind) Code() string {
	switch k {
	case Success:
		return ""
	case ValidationFailure:
		return CodeValidation
	case Forbidden:
		return CodeAccessDenied
	case NotFound:
		return CodeNotFound
	case DuplicateConflict:
		return CodeConflict
	case MergedRedirect:
		return CodeMerged
	case NotImplemented:
		return CodeNotImplemented
	case TransportFault:
		return CodeTransport
	default:
		return CodeBackend
	}
}

// FieldError is one field-level validation message.
type FieldError struct {
	Field   string
	Message string
}

// Outcome carries the kind and only the fields relevant to it.
type Outcome struct {
	Kind       Kind
	StatusCode int

	// Body is the raw success body, decoded by the calling operation.
	Body []byte

	// DuplicateConflict
	Candidates []models.DuplicateCandidate

	// MergedRedirect
	MergedToPartyID string

	// ValidationFailure: FieldErrors sorted by field, or Message alone.
	FieldErrors []FieldError

	// ValidationFailure and GenericFailure
	Message string

	// GenericFailure
	CorrelationID string

	// TransportFault
	Err error
}

// IsSuccess reports whether the outcome is Success.
func (o Outcome) IsSuccess() bool {
	return o.Kind == Success
}

// Decode unmarshals the success body into v. Missing or mistyped fields are
// left at their zero value; the returned error is informational.
func (o Outcome) Decode(v any) error {
	if len(o.Body) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(o.Body, v)
}

var (
	errEmptyBody  = errors.New("empty response body")
	errNoResponse = errors.New("bridge returned no response")
)
