package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/mock/gomock"

	"partybridge/internal/audit"
	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
)

func auditEventForTest() audit.Event {
	return audit.Event{Action: audit.ActionPartyCreated, PartyID: "P-1"}
}

// capturePayload records the JSON sent to the create endpoint.
func (s *ServiceSuite) capturePayload(resp *bridge.Response) *map[string]any {
	var payload map[string]any
	s.mockBridge.EXPECT().
		Post(gomock.Any(), PartiesPath, gomock.Nil(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ url.Values, body any) (*bridge.Response, error) {
			raw, err := json.Marshal(body)
			s.Require().NoError(err)
			s.Require().NoError(json.Unmarshal(raw, &payload))
			return resp, nil
		})
	return &payload
}

func (s *ServiceSuite) TestCreatePayload() {
	s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	created := `{"partyId":"P-1"}`

	s.Run("minimal payload omits optional fields", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:             "Acme Inc",
			DefaultBillingTermsID: "NET30",
		}, &recordedMessages{})

		s.Equal(map[string]any{"legalName": "Acme Inc", "defaultBillingTermsId": "NET30"}, *payload)
	})

	s.Run("identifier type without value is dropped", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:              "Acme Inc",
			DefaultBillingTermsID:  "NET30",
			ExternalIdentifierType: "DUNS",
		}, &recordedMessages{})

		s.NotContains(*payload, "externalIdentifiers")
	})

	s.Run("identifier value without type is dropped", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:               "Acme Inc",
			DefaultBillingTermsID:   "NET30",
			ExternalIdentifierValue: "123456789",
		}, &recordedMessages{})

		s.NotContains(*payload, "externalIdentifiers")
	})

	s.Run("complete identifier and optional names are sent", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:               "Acme Inc",
			DBAName:                 "Acme",
			TaxID:                   "12-3456789",
			DefaultBillingTermsID:   "NET30",
			ExternalIdentifierType:  "DUNS",
			ExternalIdentifierValue: "123456789",
		}, &recordedMessages{})

		s.Equal("Acme", (*payload)["dbaName"])
		s.Equal("12-3456789", (*payload)["taxId"])
		s.Equal(map[string]any{"DUNS": "123456789"}, (*payload)["externalIdentifiers"])
		s.NotContains(*payload, "duplicateOverride")
	})

	s.Run("override block keeps empty id segments", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:             "Acme Inc",
			DefaultBillingTermsID: "NET30",
			DuplicateOverride:     true,
			OverrideJustification: "different legal entity",
			DuplicatePartyIDs:     "P-7,,P-9",
		}, &recordedMessages{})

		s.Equal(true, (*payload)["duplicateOverride"])
		s.Equal("different legal entity", (*payload)["overrideJustification"])
		s.Equal([]any{"P-7", "", "P-9"}, (*payload)["overriddenPartyIds"])
	})

	s.Run("override without ids sends an empty list", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:             "Acme Inc",
			DefaultBillingTermsID: "NET30",
			DuplicateOverride:     true,
		}, &recordedMessages{})

		s.Equal([]any{}, (*payload)["overriddenPartyIds"])
	})

	s.Run("override flag false sends no override block", func() {
		payload := s.capturePayload(response(http.StatusCreated, created))
		s.service.CreateCommercialAccount(s.ctx, models.CreateAccountInput{
			LegalName:             "Acme Inc",
			DefaultBillingTermsID: "NET30",
			OverrideJustification: "ignored",
			DuplicatePartyIDs:     "P-7",
		}, &recordedMessages{})

		s.NotContains(*payload, "duplicateOverride")
		s.NotContains(*payload, "overrideJustification")
		s.NotContains(*payload, "overriddenPartyIds")
	})
}

func (s *ServiceSuite) TestCreateCommercialAccount() {
	in := models.CreateAccountInput{LegalName: "Acme Inc", DefaultBillingTermsID: "NET30"}

	s.Run("201 creates the account and audits it", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusCreated, `{"partyId":"P-1","createdAt":"2024-01-01T00:00:00Z","createdBy":"sys"}`), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), audit.Event{
			Action:  audit.ActionPartyCreated,
			PartyID: "P-1",
			Subject: "Acme Inc",
		}).Return(nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationCreated, result.State)
		s.Equal("P-1", result.PartyID)
		s.Equal("2024-01-01T00:00:00Z", result.CreatedAt)
		s.Equal("sys", result.CreatedBy)
		s.Empty(result.ErrorCode)
		s.Empty(msgs.errors)
		s.Empty(msgs.messages)
	})

	s.Run("201 with override audits the justification", func() {
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusCreated, `{"partyId":"P-2"}`), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), audit.Event{
			Action:          audit.ActionPartyCreatedWithOverride,
			PartyID:         "P-2",
			Subject:         "Acme Inc",
			Reason:          "separate subsidiary",
			RelatedPartyIDs: []string{"P-7", "P-9"},
		}).Return(nil)

		override := in
		override.DuplicateOverride = true
		override.OverrideJustification = "separate subsidiary"
		override.DuplicatePartyIDs = "P-7,P-9"
		result := s.service.CreateCommercialAccount(s.ctx, override, &recordedMessages{})

		s.Equal(models.CreationCreated, result.State)
		s.Equal("P-2", result.PartyID)
	})

	s.Run("override audit lists each reviewed id once", func() {
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusCreated, `{"partyId":"P-4"}`), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event audit.Event) error {
				s.Equal([]string{"P-7", "P-9"}, event.RelatedPartyIDs)
				return nil
			})

		override := in
		override.DuplicateOverride = true
		override.DuplicatePartyIDs = "P-7,,P-9,P-7"
		s.service.CreateCommercialAccount(s.ctx, override, &recordedMessages{})
	})

	s.Run("audit failure does not affect creation", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusCreated, `{"partyId":"P-3"}`), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("queue full"))

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationCreated, result.State)
		s.Empty(msgs.errors)
	})

	s.Run("409 needs review with candidates and no party id", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusConflict, `{"candidates":[
				{"partyId":"P-7","legalName":"Acme Incorporated","matchScore":0.92,"matchReasons":["NAME"]},
				{"partyId":"P-9","legalName":"ACME Inc.","taxId":"12-3456789"}]}`), nil)
		s.mockAudit.EXPECT().Emit(gomock.Any(), audit.Event{
			Action:          audit.ActionDuplicateReviewRequired,
			Subject:         "Acme Inc",
			RelatedPartyIDs: []string{"P-7", "P-9"},
		}).Return(nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationNeedsReview, result.State)
		s.Empty(result.PartyID)
		s.Require().Len(result.DuplicateCandidates, 2)
		s.Equal("P-7", result.DuplicateCandidates[0].PartyID)
		s.InDelta(0.92, result.DuplicateCandidates[0].MatchScore, 1e-9)
		s.Equal([]string{"NAME"}, result.DuplicateCandidates[0].MatchReasons)
		s.Equal("12-3456789", result.DuplicateCandidates[1].TaxID)
		s.Equal(outcome.CodeConflict, result.ErrorCode)
		s.Equal([]string{MsgDuplicateReview}, msgs.errors)
	})

	s.Run("400 adds one error per field", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusBadRequest, `{"fieldErrors":{"taxId":"invalid format","legalName":"required"}}`), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal(outcome.CodeValidation, result.ErrorCode)
		s.Equal([]string{"legalName: required", "taxId: invalid format"}, msgs.errors)
		s.NotNil(result.DuplicateCandidates)
		s.Empty(result.DuplicateCandidates)
	})

	s.Run("400 without field errors adds the message", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusBadRequest, `{"message":"legal name too long"}`), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal([]string{"legal name too long"}, msgs.errors)
	})

	s.Run("403 adds the permission message", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusForbidden, `{"message":"nope"}`), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal(outcome.CodeAccessDenied, result.ErrorCode)
		s.Equal([]string{MsgPermissionDenied}, msgs.errors)
	})

	s.Run("501 degrades with an informational message", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusNotImplemented, ""), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationDegraded, result.State)
		s.Empty(result.PartyID)
		s.Equal(outcome.CodeNotImplemented, result.ErrorCode)
		s.Empty(msgs.errors)
		s.Equal([]string{MsgPlaceholderService}, msgs.messages)
	})

	s.Run("500 surfaces the backend message and correlation id", func() {
		msgs := &recordedMessages{}
		resp := response(http.StatusInternalServerError, `{"message":"database unavailable","correlationId":"body-corr"}`)
		resp.Header.Set(bridge.CorrelationHeader, "hdr-corr")
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).Return(resp, nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal(outcome.CodeBackend, result.ErrorCode)
		s.Equal("hdr-corr", result.CorrelationID)
		s.Equal([]string{"database unavailable"}, msgs.errors)
	})

	s.Run("404 is rejected with the generic message", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusNotFound, ""), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal(outcome.CodeNotFound, result.ErrorCode)
		s.Equal([]string{outcome.DefaultFailureMessage}, msgs.errors)
	})

	s.Run("transport fault is rejected with the system error", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(nil, transportFault())

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Equal(outcome.CodeTransport, result.ErrorCode)
		s.Equal([]string{MsgSystemError}, msgs.errors)
	})

	s.Run("undecodable success body is rejected", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
			Return(response(http.StatusCreated, `not json`), nil)

		result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

		s.Equal(models.CreationRejected, result.State)
		s.Empty(result.PartyID)
		s.Equal([]string{MsgSystemError}, msgs.errors)
	})

	s.Run("success body without a party id is rejected", func() {
		for _, body := range []string{`{}`, `null`, `{"createdBy":"sys"}`} {
			msgs := &recordedMessages{}
			s.mockBridge.EXPECT().Post(gomock.Any(), PartiesPath, gomock.Any(), gomock.Any()).
				Return(response(http.StatusCreated, body), nil)

			result := s.service.CreateCommercialAccount(s.ctx, in, msgs)

			s.Equal(models.CreationRejected, result.State, body)
			s.Equal(outcome.CodeBackend, result.ErrorCode, body)
			s.Empty(result.PartyID, body)
			s.Equal([]string{MsgSystemError}, msgs.errors, body)
		}
	})
}
