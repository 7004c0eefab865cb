package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Invoker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"partybridge/internal/platform/metrics"
	"partybridge/internal/workflow"
	dErrors "partybridge/pkg/domain-errors"
	"partybridge/pkg/platform/httputil"
	"partybridge/pkg/platform/sentinel"
	"partybridge/pkg/requestcontext"
)

// Invoker runs named operations.
type Invoker interface {
	Invoke(ctx context.Context, name string, in workflow.Input) (workflow.Result, error)
	Names() []string
}

// InvokeRequest is the body of POST /v1/operations/{name}.
type InvokeRequest struct {
	Input workflow.Input `json:"input"`
}

// Validate normalizes an absent input to an empty one.
func (r *InvokeRequest) Validate() error {
	if r.Input == nil {
		r.Input = workflow.Input{}
	}
	return nil
}

// OperationsResponse lists the registered operations.
type OperationsResponse struct {
	Operations []string `json:"operations"`
}

// Handler exposes the operation registry over HTTP.
type Handler struct {
	invoker Invoker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new operations Handler.
func New(invoker Invoker, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		invoker: invoker,
		logger:  logger,
		metrics: metrics,
	}
}

// Register registers the operation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/operations", h.handleListOperations)
	r.Post("/v1/operations/{name}", h.handleInvoke)
}

func (h *Handler) handleListOperations(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, OperationsResponse{Operations: h.invoker.Names()})
}

func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	name := chi.URLParam(r, "name")

	req, ok := httputil.DecodeAndPrepare[InvokeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		h.metrics.IncrementInvocation(h.operationLabel(name), "bad_request")
		return
	}

	result, err := h.invoker.Invoke(ctx, name, req.Input)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			h.logger.WarnContext(ctx, "unknown operation",
				"request_id", requestID,
				"operation", name,
			)
			h.metrics.IncrementInvocation(unknownOperationLabel, "not_found")
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown operation"))
			return
		}
		h.logger.ErrorContext(ctx, "operation invocation failed",
			"request_id", requestID,
			"operation", name,
			"error", err,
		)
		h.metrics.IncrementInvocation(name, "error")
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "operation failed"))
		return
	}

	outcome := "ok"
	if len(result.Errors) > 0 {
		outcome = "reported_errors"
	}
	h.metrics.IncrementInvocation(name, outcome)
	httputil.WriteJSON(w, http.StatusOK, result)
}

const unknownOperationLabel = "unknown"

// operationLabel bounds the metric label to registered operation names.
func (h *Handler) operationLabel(name string) string {
	if slices.Contains(h.invoker.Names(), name) {
		return name
	}
	return unknownOperationLabel
}
