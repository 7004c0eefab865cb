package service

import (
	"fmt"

	"partybridge/internal/party/outcome"
)

// User-facing message texts.
const (
	MsgSystemError          = "A system error occurred while contacting the party service. Please try again later."
	MsgPermissionDenied     = "You do not have permission to perform this action."
	MsgDuplicateReview      = "Possible duplicate accounts were found. Review the candidates and resubmit with a duplicate override and justification to proceed."
	MsgPlaceholderService   = "The party service is not available yet; no account was created."
	MsgPartyIDRequired      = "A party id is required."
	MsgSearchFilterRequired = "Enter at least one of name, email, phone or tax id to search."
	MsgSearchUnavailable    = "Party search is not available yet."
	MsgSearchFailed         = "Party search failed."
	MsgBillingTermsFallback = "Billing terms could not be loaded; showing default terms."
	MsgRecordNotFound       = "The requested record was not found."
)

func msgPartyNotFound(partyID string) string {
	return fmt.Sprintf("Party %s was not found.", partyID)
}

func msgPartyMerged(partyID, mergedTo string) string {
	return fmt.Sprintf("Party %s was merged into %s.", partyID, mergedTo)
}

func msgNotImplemented(operation string) string {
	return fmt.Sprintf("The %s operation is not implemented.", operation)
}

// reportFailure adds the error messages for a non-success outcome. Validation
// failures add one message per field error.
func reportFailure(msgs Messages, o outcome.Outcome) {
	switch o.Kind {
	case outcome.ValidationFailure:
		if len(o.FieldErrors) == 0 {
			msgs.AddError(o.Message)
			return
		}
		for _, fe := range o.FieldErrors {
			msgs.AddError(fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
	case outcome.Forbidden:
		msgs.AddError(MsgPermissionDenied)
	case outcome.NotFound:
		msgs.AddError(MsgRecordNotFound)
	case outcome.TransportFault:
		msgs.AddError(MsgSystemError)
	default:
		if o.Message != "" {
			msgs.AddError(o.Message)
			return
		}
		msgs.AddError(outcome.DefaultFailureMessage)
	}
}
