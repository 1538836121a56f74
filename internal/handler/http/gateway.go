package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// callService handles POST /api/services/{slug}/call. A transport failure
// is still a 200: the outcome is in the returned result.
func (h *Handler) callService(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var request models.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidCallBody, err)
		log.Err(err).Str("service", slug).Msg("bad gateway call")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	operator, _ := utils.GetOperatorFromContext(ctx)
	result, err := h.services.GatewayService.Call(ctx, slug, request)
	if err != nil {
		log.Err(err).Str("service", slug).Str("operator", operator).Msg("gateway call refused")
		http.Error(w, messageFromError(err), statusFromError(err))
		return
	}

	log.Info().
		Str("service", slug).
		Str("operator", operator).
		Bool("success", result.Success).
		Int("attempts", result.Attempts).
		Int64("latency_ms", result.Latency).
		Msg("gateway call finished")

	if _, err = utils.WriteJSON(w, result, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing gateway call result")
	}
}
