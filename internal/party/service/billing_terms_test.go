package service

import (
	"net/http"
	"net/url"

	"go.uber.org/mock/gomock"

	"partybridge/internal/bridge"
	"partybridge/internal/party/models"
)

func termIDs(items []models.BillingTerm) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (s *ServiceSuite) TestListBillingTerms() {
	s.Run("200 returns the backend items", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, url.Values{"activeOnly": {"true"}}).
			Return(response(http.StatusOK, `{"items":[{"id":"NET45","name":"Net 45","dueDays":45,"active":true}]}`), nil)

		result := s.service.ListBillingTerms(s.ctx, true, msgs)

		s.Equal([]string{"NET45"}, termIDs(result.Items))
		s.Equal(45, result.Items[0].DueDays)
		s.False(result.Fallback)
		s.Empty(msgs.messages)
	})

	s.Run("activeOnly false is forwarded", func() {
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, url.Values{"activeOnly": {"false"}}).
			Return(response(http.StatusOK, `{"items":[]}`), nil)

		result := s.service.ListBillingTerms(s.ctx, false, &recordedMessages{})

		s.NotNil(result.Items)
		s.Empty(result.Items)
	})

	s.Run("501 returns the four term catalog", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, gomock.Any()).
			Return(response(http.StatusNotImplemented, ""), nil)

		result := s.service.ListBillingTerms(s.ctx, true, msgs)

		s.Equal([]string{"NET30", "NET60", "COD", "PREPAY"}, termIDs(result.Items))
		for _, item := range result.Items {
			s.True(item.Active, item.ID)
		}
		s.True(result.Fallback)
		s.Empty(msgs.errors)
		s.Empty(msgs.messages)
	})

	s.Run("transport fault returns NET30 only", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, gomock.Any()).
			Return(nil, &bridge.TransportError{Category: bridge.ErrorProviderOutage, Method: http.MethodGet})

		result := s.service.ListBillingTerms(s.ctx, true, msgs)

		s.Equal([]string{"NET30"}, termIDs(result.Items))
		s.True(result.Fallback)
		s.Empty(msgs.errors)
		s.Equal([]string{MsgBillingTermsFallback}, msgs.messages)
	})

	s.Run("500 returns NET30 only", func() {
		msgs := &recordedMessages{}
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, gomock.Any()).
			Return(response(http.StatusInternalServerError, ""), nil)

		result := s.service.ListBillingTerms(s.ctx, true, msgs)

		s.Equal([]string{"NET30"}, termIDs(result.Items))
		s.Equal([]string{MsgBillingTermsFallback}, msgs.messages)
	})

	s.Run("fallback catalog is not shared between calls", func() {
		s.mockBridge.EXPECT().Get(gomock.Any(), BillingTermsPath, gomock.Any()).
			Return(response(http.StatusNotImplemented, ""), nil).Times(2)

		first := s.service.ListBillingTerms(s.ctx, true, &recordedMessages{})
		first.Items[0].Active = false
		second := s.service.ListBillingTerms(s.ctx, true, &recordedMessages{})

		s.True(second.Items[0].Active)
	})
}
