package http

import (
	"net/http"

	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{Status: "ok"}
	if h.services.AppInfoService != nil {
		response.Version = h.services.AppInfoService.GetAppVersion(r.Context())
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
