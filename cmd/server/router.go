package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"partybridge/internal/platform/metrics"
	"partybridge/internal/platform/middleware"
	"partybridge/internal/workflow/handler"
	"partybridge/pkg/platform/httputil"
)

func newRouter(log *slog.Logger, m *metrics.Metrics, invoker handler.Invoker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	handler.New(invoker, log, m).Register(r)
	return r
}
