package outcome

import (
	"encoding/json"
	"net/http"
	"sort"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
)

// ConflictMode selects how an endpoint interprets 409.
type ConflictMode int

const (
	// ConflictDuplicate reads 409 as duplicate candidates (create, duplicate-check).
	ConflictDuplicate ConflictMode = iota
	// ConflictMerged reads 409 as a merged-party redirect (fetch).
	ConflictMerged
)

const (
	DefaultValidationMessage = "The request was rejected by the party service."
	DefaultFailureMessage    = "The party service returned an unexpected response."
)

// errorBody is the union of the fields the backend may put in a non-success body.
type errorBody struct {
	Message         string                      `json:"message"`
	FieldErrors     map[string]string           `json:"fieldErrors"`
	Candidates      []models.DuplicateCandidate `json:"candidates"`
	MergedToPartyID string                      `json:"mergedToPartyId"`
	CorrelationID   string                      `json:"correlationId"`
}

// Resolve maps a status code, body and headers to an Outcome. It performs no
// I/O, never panics, and resolves every status code to exactly one kind:
// unknown codes become GenericFailure.
func Resolve(statusCode int, body []byte, header http.Header, mode ConflictMode) Outcome {
	o := Outcome{StatusCode: statusCode}

	switch statusCode {
	case http.StatusOK, http.StatusCreated:
		o.Kind = Success
		o.Body = body
		return o
	case http.StatusForbidden:
		o.Kind = Forbidden
		return o
	case http.StatusNotFound:
		o.Kind = NotFound
		return o
	case http.StatusNotImplemented:
		o.Kind = NotImplemented
		return o
	}

	eb := parseErrorBody(body)
	switch statusCode {
	case http.StatusConflict:
		if mode == ConflictMerged {
			o.Kind = MergedRedirect
			o.MergedToPartyID = eb.MergedToPartyID
			return o
		}
		o.Kind = DuplicateConflict
		o.Candidates = eb.Candidates
		if o.Candidates == nil {
			o.Candidates = []models.DuplicateCandidate{}
		}
	case http.StatusBadRequest:
		o.Kind = ValidationFailure
		o.FieldErrors = sortedFieldErrors(eb.FieldErrors)
		if len(o.FieldErrors) == 0 {
			o.Message = eb.Message
			if o.Message == "" {
				o.Message = DefaultValidationMessage
			}
		}
	default:
		o.Kind = GenericFailure
		o.Message = eb.Message
		if o.Message == "" {
			o.Message = DefaultFailureMessage
		}
		o.CorrelationID = header.Get(bridge.CorrelationHeader)
		if o.CorrelationID == "" {
			o.CorrelationID = eb.CorrelationID
		}
	}
	return o
}

// FromCall is the fallible-call boundary: a transport error becomes
// TransportFault, anything else is resolved from the response.
func FromCall(resp *bridge.Response, err error, mode ConflictMode) Outcome {
	if err != nil {
		return Outcome{Kind: TransportFault, Err: err}
	}
	if resp == nil {
		return Outcome{Kind: TransportFault, Err: errNoResponse}
	}
	return Resolve(resp.StatusCode, resp.Body, resp.Header, mode)
}

func parseErrorBody(body []byte) errorBody {
	var eb errorBody
	if len(body) == 0 {
		return eb
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		// A partially decoded body is still useful; a non-object body is not.
		var probe map[string]json.RawMessage
		if json.Unmarshal(body, &probe) != nil {
			return errorBody{}
		}
	}
	return eb
}

func sortedFieldErrors(m map[string]string) []FieldError {
	if len(m) == 0 {
		return nil
	}
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	out := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		out = append(out, FieldError{Field: field, Message: m[field]})
	}
	return out
}
