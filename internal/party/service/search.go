package service

import (
	"context"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
)

// Search defaults applied when the caller leaves paging or sorting unset.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	DefaultSortField  = "legalName"
	DefaultSortOrder  = "ASC"
)

// SearchParties runs a filtered party search. At least one filter is required;
// an unfiltered search is rejected without calling the backend. Results is
// never nil.
func (s *Service) SearchParties(ctx context.Context, in models.SearchPartiesInput, msgs Messages) models.SearchPartiesResult {
	req := buildSearchRequest(in)
	result := models.SearchPartiesResult{
		Results:    []models.Party{},
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}

	if !in.HasFilter() {
		s.metrics.IncrementSearchRejected()
		msgs.AddError(MsgSearchFilterRequired)
		result.ErrorCode = outcome.CodeValidation
		return result
	}

	o := s.call(ctx, OpSearchParties, outcome.ConflictDuplicate, func() (*bridge.Response, error) {
		return s.bridge.Post(ctx, PartySearchPath, nil, req)
	})

	switch o.Kind {
	case outcome.Success:
		var body models.SearchPartiesResponse
		if err := o.Decode(&body); err != nil {
			s.logger.ErrorContext(ctx, "search response could not be decoded", "error", err)
			msgs.AddError(MsgSystemError)
			result.ErrorCode = outcome.CodeBackend
			return result
		}
		if body.Results != nil {
			result.Results = body.Results
		}
		result.TotalCount = body.TotalCount
		if body.PageNumber != nil {
			result.PageNumber = *body.PageNumber
		}
		if body.PageSize != nil {
			result.PageSize = *body.PageSize
		}

	case outcome.NotImplemented:
		msgs.AddMessage(MsgSearchUnavailable)

	case outcome.TransportFault:
		result.ErrorCode = o.Kind.Code()
		msgs.AddError(MsgSystemError)

	default:
		result.ErrorCode = o.Kind.Code()
		if o.Kind == outcome.GenericFailure || o.Kind == outcome.NotFound {
			msgs.AddError(MsgSearchFailed)
			return result
		}
		reportFailure(msgs, o)
	}
	return result
}

func buildSearchRequest(in models.SearchPartiesInput) models.SearchPartiesRequest {
	req := models.SearchPartiesRequest{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		TaxID:         in.TaxID,
		IncludeMerged: in.IncludeMerged,
		PageNumber:    in.PageNumber,
		PageSize:      in.PageSize,
		SortField:     in.SortField,
		SortOrder:     in.SortOrder,
	}
	if req.PageNumber <= 0 {
		req.PageNumber = DefaultPageNumber
	}
	if req.PageSize <= 0 {
		req.PageSize = DefaultPageSize
	}
	if req.SortField == "" {
		req.SortField = DefaultSortField
	}
	if req.SortOrder == "" {
		req.SortOrder = DefaultSortOrder
	}
	return req
}
