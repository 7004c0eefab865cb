package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Bridge,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"time"

	"partybridge/internal/audit"
	"partybridge/internal/bridge"
	"partybridge/internal/party/metrics"
	"partybridge/internal/party/outcome"
	"partybridge/pkg/requestcontext"
)

// errMissingPartyID marks a success body that decoded but names no party.
var errMissingPartyID = errors.New("response body has no partyId")

// Backend endpoints reached through the bridge.
const (
	PartiesPath        = "/v1/crm/accounts/parties"
	PartySearchPath    = PartiesPath + "/search"
	DuplicateCheckPath = PartiesPath + "/duplicate-check"
	BillingTermsPath   = "/v1/billing/terms"
)

// Operation names, used for registry lookup, logs and metric labels.
const (
	OpCreateCommercialAccount = "createCommercialAccount"
	OpGetParty                = "getParty"
	OpSearchParties           = "searchParties"
	OpCheckDuplicates         = "checkDuplicates"
	OpListBillingTerms        = "listBillingTerms"
	OpCreatePerson            = "createPerson"
	OpUpdateParty             = "updateParty"
	OpCreateRelationship      = "createRelationship"
	OpUpdateRelationship      = "updateRelationship"
	OpDeleteRelationship      = "deleteRelationship"
	OpListRelationships       = "listRelationships"
	OpMergeParties            = "mergeParties"
)

// Bridge is the synchronous REST bridge. A returned error means no response
// was received; every HTTP status is a *bridge.Response.
type Bridge interface {
	Get(ctx context.Context, path string, query url.Values) (*bridge.Response, error)
	Post(ctx context.Context, path string, query url.Values, body any) (*bridge.Response, error)
}

// AuditPublisher records notable party actions. Failures never affect the operation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Messages is the user-facing message sink. It is write-only and additive.
type Messages interface {
	AddError(message string)
	AddMessage(message string)
}

// Service runs the party operations. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	bridge         Bridge
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs a Service.
func New(bridge Bridge, opts ...Option) *Service {
	s := &Service{
		bridge: bridge,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// call performs the single outbound call of an operation and resolves it.
func (s *Service) call(ctx context.Context, operation string, mode outcome.ConflictMode, do func() (*bridge.Response, error)) outcome.Outcome {
	start := time.Now()
	resp, err := do()
	o := outcome.FromCall(resp, err, mode)
	elapsed := time.Since(start)
	s.metrics.ObserveCall(operation, o.Kind.String(), elapsed)

	attrs := []any{
		"operation", operation,
		"kind", o.Kind.String(),
		"status", o.StatusCode,
		"request_id", requestcontext.RequestID(ctx),
		"duration_ms", elapsed.Milliseconds(),
	}
	switch o.Kind {
	case outcome.TransportFault:
		s.logger.ErrorContext(ctx, "party backend call failed",
			append(attrs, "category", bridge.GetCategory(o.Err), "error", o.Err)...)
	case outcome.GenericFailure:
		s.logger.WarnContext(ctx, "party backend returned an error",
			append(attrs, "correlation_id", o.CorrelationID, "message", o.Message)...)
	default:
		s.logger.InfoContext(ctx, "party backend call resolved", attrs...)
	}
	return o
}

// decode reads a success body into v, logging rather than failing on bad data.
func (s *Service) decode(ctx context.Context, operation string, o outcome.Outcome, v any) {
	if err := o.Decode(v); err != nil {
		s.logger.WarnContext(ctx, "party backend success body not fully decoded",
			"operation", operation,
			"error", err,
		)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
