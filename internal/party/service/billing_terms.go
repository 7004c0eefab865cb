package service

import (
	"context"
	"net/url"
	"strconv"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
)

// unimplementedCatalog is served while the billing backend answers 501.
func unimplementedCatalog() []models.BillingTerm {
	return []models.BillingTerm{
		{ID: "NET30", Name: "Net 30", Description: "Payment due within 30 days", DueDays: 30, Active: true},
		{ID: "NET60", Name: "Net 60", Description: "Payment due within 60 days", DueDays: 60, Active: true},
		{ID: "COD", Name: "Cash on Delivery", Description: "Payment due on delivery", DueDays: 0, Active: true},
		{ID: "PREPAY", Name: "Prepaid", Description: "Payment due before delivery", DueDays: 0, Active: true},
	}
}

// minimalCatalog is served when the billing backend fails.
func minimalCatalog() []models.BillingTerm {
	return []models.BillingTerm{
		{ID: "NET30", Name: "Net 30", Description: "Payment due within 30 days", DueDays: 30, Active: true},
	}
}

// ListBillingTerms returns the billing terms a commercial account can default
// to. It always returns at least one term: a 501 yields the standard catalog
// and any other failure yields NET30 alone plus an informational message.
func (s *Service) ListBillingTerms(ctx context.Context, activeOnly bool, msgs Messages) models.BillingTermsResult {
	query := url.Values{}
	query.Set("activeOnly", strconv.FormatBool(activeOnly))

	o := s.call(ctx, OpListBillingTerms, outcome.ConflictDuplicate, func() (*bridge.Response, error) {
		return s.bridge.Get(ctx, BillingTermsPath, query)
	})

	reason := o.Kind.String()
	switch o.Kind {
	case outcome.Success:
		var body models.BillingTermsResponse
		err := o.Decode(&body)
		if err == nil {
			if body.Items == nil {
				body.Items = []models.BillingTerm{}
			}
			return models.BillingTermsResult{Items: body.Items}
		}
		s.logger.WarnContext(ctx, "billing terms response could not be decoded", "error", err)
		reason = "undecodable_body"
	case outcome.NotImplemented:
		s.metrics.IncrementFallback(OpListBillingTerms, reason)
		return models.BillingTermsResult{Items: unimplementedCatalog(), Fallback: true}
	}

	s.metrics.IncrementFallback(OpListBillingTerms, reason)
	msgs.AddMessage(MsgBillingTermsFallback)
	return models.BillingTermsResult{Items: minimalCatalog(), Fallback: true}
}
