package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"unicorn/metrics"
	"unicorn/scoring"
)

// Handlers serves the scoring endpoints from an Engine.
type Handlers struct {
	engine *scoring.Engine
	log    *zap.Logger
}

// NewHandlers creates the scoring handlers.
func NewHandlers(engine *scoring.Engine, log *zap.Logger) *Handlers {
	return &Handlers{engine: engine, log: log}
}

// Register mounts health, scoring and metrics routes on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHealth)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("POST /cluster", h.handleCluster)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Health())
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	const endpoint = "predict"

	var in scoring.SupervisedInput
	if !h.decode(w, r, endpoint, predictSchema, &in) {
		return
	}

	start := time.Now()
	result, err := h.engine.Predict(in)
	metrics.InferenceDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		h.respondScoringError(w, r, endpoint, err)
		return
	}

	metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) handleCluster(w http.ResponseWriter, r *http.Request) {
	const endpoint = "cluster"

	var in scoring.ClusterInput
	if !h.decode(w, r, endpoint, clusterSchema, &in) {
		return
	}

	start := time.Now()
	result, err := h.engine.Cluster(in)
	metrics.InferenceDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		h.respondScoringError(w, r, endpoint, err)
		return
	}

	metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
	respondJSON(w, http.StatusOK, result)
}

// decode reads and validates the request body into dst, answering 413/422 itself on failure.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, endpoint string, schema *gojsonschema.Schema, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeInvalidRequest).Inc()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if details := validateBody(schema, body, dst); details != nil {
		metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeInvalidRequest).Inc()
		respondJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: details})
		return false
	}
	return true
}

// respondScoringError answers 200 with an error body when an artifact is missing
// and 500 for anything raised by the model itself.
func (h *Handlers) respondScoringError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	if scoringErr, ok := scoring.IsArtifactMissing(err); ok {
		h.log.Warn("artifact not loaded",
			zap.String("endpoint", endpoint),
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(scoringErr.Err),
		)
		metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeArtifactMissing).Inc()
		respondError(w, http.StatusOK, scoringErr.Message)
		return
	}

	h.log.Error("inference failed",
		zap.String("endpoint", endpoint),
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Error(err),
	)
	metrics.RequestsTotal.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondJSON writes data as a JSON body with status.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON", zap.Error(err))
	}
}

// respondError writes {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
