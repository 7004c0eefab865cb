package service

import (
	"context"
	"strings"

	"partybridge/internal/audit"
	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
	pstrings "partybridge/pkg/platform/strings"
)

// CreateCommercialAccount builds the create payload, performs the single
// backend call and resolves it to a terminal creation state. Failures are
// reported through msgs and the result; nothing is returned as an error.
func (s *Service) CreateCommercialAccount(ctx context.Context, in models.CreateAccountInput, msgs Messages) models.CreateAccountResult {
	req := buildCreatePartyRequest(in)
	o := s.call(ctx, OpCreateCommercialAccount, outcome.ConflictDuplicate, func() (*bridge.Response, error) {
		return s.bridge.Post(ctx, PartiesPath, nil, req)
	})

	result := models.CreateAccountResult{DuplicateCandidates: []models.DuplicateCandidate{}}
	switch o.Kind {
	case outcome.Success:
		var body models.CreatePartyResponse
		err := o.Decode(&body)
		if err == nil && body.PartyID == "" {
			err = errMissingPartyID
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "create party response could not be decoded", "error", err)
			msgs.AddError(MsgSystemError)
			result.State = models.CreationRejected
			result.ErrorCode = outcome.CodeBackend
			return result
		}
		result.State = models.CreationCreated
		result.PartyID = body.PartyID
		result.CreatedAt = body.CreatedAt
		result.CreatedBy = body.CreatedBy
		s.auditCreated(ctx, in, req, body.PartyID)

	case outcome.DuplicateConflict:
		result.State = models.CreationNeedsReview
		result.DuplicateCandidates = o.Candidates
		result.ErrorCode = o.Kind.Code()
		msgs.AddError(MsgDuplicateReview)
		s.emitAudit(ctx, audit.Event{
			Action:          audit.ActionDuplicateReviewRequired,
			Subject:         in.LegalName,
			RelatedPartyIDs: pstrings.DistinctIDs(candidateIDs(o.Candidates)),
		})

	case outcome.NotImplemented:
		result.State = models.CreationDegraded
		result.ErrorCode = o.Kind.Code()
		msgs.AddMessage(MsgPlaceholderService)

	case outcome.NotFound:
		result.State = models.CreationRejected
		result.ErrorCode = o.Kind.Code()
		msgs.AddError(outcome.DefaultFailureMessage)

	default:
		result.State = models.CreationRejected
		result.ErrorCode = o.Kind.Code()
		result.CorrelationID = o.CorrelationID
		reportFailure(msgs, o)
	}
	return result
}

func buildCreatePartyRequest(in models.CreateAccountInput) models.CreatePartyRequest {
	req := models.CreatePartyRequest{
		LegalName:             in.LegalName,
		DBAName:               in.DBAName,
		TaxID:                 in.TaxID,
		DefaultBillingTermsID: in.DefaultBillingTermsID,
	}
	if in.ExternalIdentifierType != "" && in.ExternalIdentifierValue != "" {
		req.ExternalIdentifiers = map[string]string{
			in.ExternalIdentifierType: in.ExternalIdentifierValue,
		}
	}
	if in.DuplicateOverride {
		req.OverrideBlock = &models.OverrideBlock{
			Enabled:            true,
			Justification:      in.OverrideJustification,
			OverriddenPartyIDs: splitPartyIDs(in.DuplicatePartyIDs),
		}
	}
	return req
}

// splitPartyIDs splits the reviewed candidate list on commas. Segments are
// passed through untrimmed, empty ones included.
func splitPartyIDs(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func candidateIDs(candidates []models.DuplicateCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.PartyID)
	}
	return ids
}

func (s *Service) auditCreated(ctx context.Context, in models.CreateAccountInput, req models.CreatePartyRequest, partyID string) {
	event := audit.Event{
		Action:  audit.ActionPartyCreated,
		PartyID: partyID,
		Subject: in.LegalName,
	}
	if req.OverrideBlock != nil {
		event.Action = audit.ActionPartyCreatedWithOverride
		event.Reason = req.Justification
		event.RelatedPartyIDs = pstrings.DistinctIDs(req.OverriddenPartyIDs)
	}
	s.emitAudit(ctx, event)
}
