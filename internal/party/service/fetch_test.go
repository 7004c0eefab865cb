package service

import (
	"net/http"
	"time"

	"go.uber.org/mock/gomock"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
	"partybridge/internal/party/outcome"
	"partybridge/pkg/requestcontext"
)

func (s *ServiceSuite) TestFetchParty() {
	s.Run("missing party id makes no call", func() {
		msgs := &recordedMessages{}
		result := s.service.FetchParty(s.ctx, "  ", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeValidation, result.ErrorCode)
		s.Equal([]string{MsgPartyIDRequired}, msgs.errors)
	})

	s.Run("id with a path separator makes no call", func() {
		msgs := &recordedMessages{}
		result := s.service.FetchParty(s.ctx, "P-1/../admin", msgs)

		s.Nil(result.Party)
		s.Len(msgs.errors, 1)
	})

	s.Run("dot segment id makes no call", func() {
		for _, raw := range []string{".", ".."} {
			msgs := &recordedMessages{}
			result := s.service.FetchParty(s.ctx, raw, msgs)

			s.Nil(result.Party)
			s.Equal(outcome.CodeValidation, result.ErrorCode)
			s.Equal([]string{MsgPartyIDRequired}, msgs.errors)
		}
	})

	s.Run("200 without a party id is a system error", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusOK, `{}`), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeBackend, result.ErrorCode)
		s.Equal([]string{MsgSystemError}, msgs.errors)
	})

	s.Run("200 stores the party", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusOK, `{"partyId":"P-1","legalName":"Acme Inc","status":"ACTIVE","taxId":"12-3456789"}`), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Require().NotNil(result.Party)
		s.Equal("P-1", result.Party.PartyID)
		s.Equal("Acme Inc", result.Party.LegalName)
		s.Equal(models.PartyStatusActive, result.Party.Status)
		s.False(result.Placeholder)
		s.Empty(result.ErrorCode)
		s.Empty(msgs.errors)
	})

	s.Run("409 reports the merge target", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusConflict, `{"mergedToPartyId":"P-5"}`), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeMerged, result.ErrorCode)
		s.Equal("P-5", result.MergedToPartyID)
		s.Empty(msgs.errors)
		s.Len(msgs.messages, 1)
	})

	s.Run("404 reports not found", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusNotFound, ""), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeNotFound, result.ErrorCode)
		s.Equal([]string{"Party P-1 was not found."}, msgs.errors)
	})

	s.Run("403 reports permission denied", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusForbidden, ""), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Equal(outcome.CodeAccessDenied, result.ErrorCode)
		s.Equal([]string{MsgPermissionDenied}, msgs.errors)
	})

	s.Run("501 synthesizes a placeholder", func() {
		msgs := &recordedMessages{}
		at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(s.ctx, at)
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-42", gomock.Nil()).
			Return(response(http.StatusNotImplemented, ""), nil)

		result := s.service.FetchParty(ctx, "P-42", msgs)

		s.Require().NotNil(result.Party)
		s.True(result.Placeholder)
		s.Equal("P-42", result.Party.PartyID)
		s.Equal(models.PartyStatusActive, result.Party.Status)
		s.Equal(models.PlaceholderLegalName, result.Party.LegalName)
		s.Equal("2024-03-01T12:30:00Z", result.Party.CreatedAt)
		s.Empty(msgs.errors)
	})

	s.Run("502 surfaces message and correlation id", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(response(http.StatusBadGateway, `{"message":"upstream down","correlationId":"c-9"}`), nil)

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeBackend, result.ErrorCode)
		s.Equal("c-9", result.CorrelationID)
		s.Equal([]string{"upstream down"}, msgs.errors)
	})

	s.Run("transport fault reports the system error", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), PartiesPath+"/P-1", gomock.Nil()).
			Return(nil, &bridge.TransportError{Category: bridge.ErrorTimeout, Method: http.MethodGet})

		result := s.service.FetchParty(s.ctx, "P-1", msgs)

		s.Nil(result.Party)
		s.Equal(outcome.CodeTransport, result.ErrorCode)
		s.Equal([]string{MsgSystemError}, msgs.errors)
	})
}
