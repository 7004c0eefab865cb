package service

import (
	"context"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
)

// CheckDuplicates asks the backend for parties matching the given identity
// fields. It is advisory: any outcome other than Success yields no candidates
// and adds no message.
func (s *Service) CheckDuplicates(ctx context.Context, in models.DuplicateCheckInput) []models.DuplicateCandidate {
	req := models.DuplicateCheckRequest(in)
	o := s.call(ctx, OpCheckDuplicates, outcome.ConflictDuplicate, func() (*bridge.Response, error) {
		return s.bridge.Post(ctx, DuplicateCheckPath, nil, req)
	})
	if !o.IsSuccess() {
		return []models.DuplicateCandidate{}
	}

	var body models.DuplicateCheckResponse
	if err := o.Decode(&body); err != nil {
		s.logger.WarnContext(ctx, "duplicate check response could not be decoded", "error", err)
		return []models.DuplicateCandidate{}
	}
	if body.Candidates == nil {
		return []models.DuplicateCandidate{}
	}
	return body.Candidates
}
