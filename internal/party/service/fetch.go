package service

import (
	"context"
	"time"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
	"partybridge/pkg/domain"
	"partybridge/pkg/requestcontext"
)

// FetchParty loads one party by id. A missing or unusable id is reported
// without calling the backend.
func (s *Service) FetchParty(ctx context.Context, rawPartyID string, msgs Messages) models.FetchPartyResult {
	partyID, err := domain.ParsePartyID(rawPartyID)
	if err != nil {
		s.logger.InfoContext(ctx, "party fetch rejected", "error", err)
		msgs.AddError(MsgPartyIDRequired)
		return models.FetchPartyResult{ErrorCode: outcome.CodeValidation}
	}

	o := s.call(ctx, OpGetParty, outcome.ConflictMerged, func() (*bridge.Response, error) {
		return s.bridge.Get(ctx, PartiesPath+"/"+partyID.String(), nil)
	})

	var result models.FetchPartyResult
	switch o.Kind {
	case outcome.Success:
		var party models.Party
		err := o.Decode(&party)
		if err == nil && party.PartyID == "" {
			err = errMissingPartyID
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "party response could not be decoded", "error", err)
			msgs.AddError(MsgSystemError)
			result.ErrorCode = outcome.CodeBackend
			return result
		}
		result.Party = &party

	case outcome.MergedRedirect:
		result.ErrorCode = o.Kind.Code()
		result.MergedToPartyID = o.MergedToPartyID
		msgs.AddMessage(msgPartyMerged(partyID.String(), o.MergedToPartyID))

	case outcome.NotFound:
		result.ErrorCode = o.Kind.Code()
		msgs.AddError(msgPartyNotFound(partyID.String()))

	case outcome.NotImplemented:
		s.metrics.IncrementFallback(OpGetParty, o.Kind.String())
		result.Placeholder = true
		result.Party = &models.Party{
			PartyID:   partyID.String(),
			LegalName: models.PlaceholderLegalName,
			Status:    models.PartyStatusActive,
			CreatedAt: requestcontext.Now(ctx).UTC().Format(time.RFC3339),
		}

	default:
		result.ErrorCode = o.Kind.Code()
		result.CorrelationID = o.CorrelationID
		reportFailure(msgs, o)
	}
	return result
}
