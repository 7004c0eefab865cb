package workflow

import (
	"context"
	"maps"
	"slices"

	"partybridge/internal/party/models"
	"partybridge/internal/party/service"
)

// PartyService is the set of party operations exposed to the workflow engine.
type PartyService interface {
	CreateCommercialAccount(ctx context.Context, in models.CreateAccountInput, msgs service.Messages) models.CreateAccountResult
	FetchParty(ctx context.Context, partyID string, msgs service.Messages) models.FetchPartyResult
	SearchParties(ctx context.Context, in models.SearchPartiesInput, msgs service.Messages) models.SearchPartiesResult
	CheckDuplicates(ctx context.Context, in models.DuplicateCheckInput) []models.DuplicateCandidate
	ListBillingTerms(ctx context.Context, activeOnly bool, msgs service.Messages) models.BillingTermsResult
	NotImplemented(ctx context.Context, operation string, msgs service.Messages) string
}

// stubOperations have no backend support yet.
var stubOperations = []string{
	service.OpCreatePerson,
	service.OpUpdateParty,
	service.OpCreateRelationship,
	service.OpUpdateRelationship,
	service.OpDeleteRelationship,
	service.OpListRelationships,
	service.OpMergeParties,
}

// RegisterPartyOperations binds every party operation to r.
func RegisterPartyOperations(r *Registry, svc PartyService) error {
	ops := map[string]Operation{
		service.OpCreateCommercialAccount: createCommercialAccount(svc),
		service.OpGetParty:                getParty(svc),
		service.OpSearchParties:           searchParties(svc),
		service.OpCheckDuplicates:         checkDuplicates(svc),
		service.OpListBillingTerms:        listBillingTerms(svc),
	}
	for _, name := range stubOperations {
		ops[name] = notImplemented(svc, name)
	}
	for _, name := range slices.Sorted(maps.Keys(ops)) {
		if err := r.Register(name, ops[name]); err != nil {
			return err
		}
	}
	return nil
}

func createCommercialAccount(svc PartyService) Operation {
	return func(ctx context.Context, in Input, out Output, msgs *MessageLog) {
		result := svc.CreateCommercialAccount(ctx, models.CreateAccountInput{
			LegalName:               in.String("legalName"),
			DBAName:                 in.String("dbaName"),
			TaxID:                   in.String("taxId"),
			DefaultBillingTermsID:   in.String("defaultBillingTermsId"),
			ExternalIdentifierType:  in.String("externalIdentifierType"),
			ExternalIdentifierValue: in.String("externalIdentifierValue"),
			DuplicateOverride:       in.BoolOr("duplicateOverride", false),
			OverrideJustification:   in.String("overrideJustification"),
			DuplicatePartyIDs:       in.String("duplicatePartyIds"),
		}, msgs)

		if result.State == models.CreationCreated {
			out["partyId"] = result.PartyID
			out["createdAt"] = result.CreatedAt
			out["createdBy"] = result.CreatedBy
			return
		}
		out["duplicateCandidates"] = result.DuplicateCandidates
		out["errorCode"] = result.ErrorCode
		if result.CorrelationID != "" {
			out["correlationId"] = result.CorrelationID
		}
	}
}

func getParty(svc PartyService) Operation {
	return func(ctx context.Context, in Input, out Output, msgs *MessageLog) {
		result := svc.FetchParty(ctx, in.String("partyId"), msgs)
		if result.Party != nil {
			out["party"] = result.Party
		}
		if result.MergedToPartyID != "" {
			out["mergedToPartyId"] = result.MergedToPartyID
		}
		if result.ErrorCode != "" {
			out["errorCode"] = result.ErrorCode
		}
		if result.CorrelationID != "" {
			out["correlationId"] = result.CorrelationID
		}
	}
}

func searchParties(svc PartyService) Operation {
	return func(ctx context.Context, in Input, out Output, msgs *MessageLog) {
		pageNumber, _ := in.Int("pageNumber")
		pageSize, _ := in.Int("pageSize")
		result := svc.SearchParties(ctx, models.SearchPartiesInput{
			Name:          in.String("name"),
			Email:         in.String("email"),
			Phone:         in.String("phone"),
			TaxID:         in.String("taxId"),
			IncludeMerged: in.BoolOr("includeMerged", false),
			PageNumber:    pageNumber,
			PageSize:      pageSize,
			SortField:     in.String("sortField"),
			SortOrder:     in.String("sortOrder"),
		}, msgs)

		out["results"] = result.Results
		out["totalCount"] = result.TotalCount
		out["pageNumber"] = result.PageNumber
		out["pageSize"] = result.PageSize
		if result.ErrorCode != "" {
			out["errorCode"] = result.ErrorCode
		}
	}
}

func checkDuplicates(svc PartyService) Operation {
	return func(ctx context.Context, in Input, out Output, _ *MessageLog) {
		out["candidates"] = svc.CheckDuplicates(ctx, models.DuplicateCheckInput{
			LegalName: in.String("legalName"),
			TaxID:     in.String("taxId"),
			Email:     in.String("email"),
			Phone:     in.String("phone"),
		})
	}
}

func listBillingTerms(svc PartyService) Operation {
	return func(ctx context.Context, in Input, out Output, msgs *MessageLog) {
		result := svc.ListBillingTerms(ctx, in.BoolOr("activeOnly", true), msgs)
		out["items"] = result.Items
	}
}

func notImplemented(svc PartyService, name string) Operation {
	return func(ctx context.Context, _ Input, out Output, msgs *MessageLog) {
		out["errorCode"] = svc.NotImplemented(ctx, name, msgs)
	}
}
