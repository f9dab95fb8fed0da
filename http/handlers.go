package http

import (
	"net/http"

	"go.uber.org/zap"
)

const readyMessage = "✅ API de prédiction du risque d'AVC post-opératoire prête"

type handlers struct {
	predictor Predictor
	metrics   *Metrics
	logger    *zap.Logger
}

func RegisterHandlers(mux *http.ServeMux, predictor Predictor, metrics *Metrics, logger *zap.Logger) {
	h := &handlers{predictor: predictor, metrics: metrics, logger: logger}

	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.Handle("POST /predict", AuthMiddleware(predictor.Authorize, metrics)(http.HandlerFunc(h.handlePredict)))
}

func handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(readyMessage))
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"model":    h.predictor.ModelType(),
		"features": h.predictor.Spec().Len(),
	})
}

func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.predictor.Predict(payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.metrics.ObservePrediction(result)
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.ObserveError(err)
	h.logger.Warn("prediction rejected",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("kind", kindLabel(err)),
		zap.Error(err))
	writeError(w, err)
}
