package testutil

import (
	"net/http"
	"time"

	"partybridge/pkg/requestcontext"
)

// WithRequestContext adds the request id and request time the middleware chain
// would normally set.
func WithRequestContext(req *http.Request, requestID string, at time.Time) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	ctx = requestcontext.WithTime(ctx, at)
	return req.WithContext(ctx)
}
