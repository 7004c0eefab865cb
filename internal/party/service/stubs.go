package service

import (
	"context"

	"partybridge/internal/party/outcome"
)

// NotImplemented reports an operation that has no backend support yet. It makes
// no backend call and returns the error code to expose.
func (s *Service) NotImplemented(ctx context.Context, operation string, msgs Messages) string {
	s.logger.InfoContext(ctx, "operation not implemented", "operation", operation)
	msgs.AddError(msgNotImplemented(operation))
	return outcome.CodeNotImplemented
}
