package api

import (
	"net/http"

	"github.com/phrazzld/brandkit-api/internal/api/shared"
)

// HealthHandler reports liveness and whether generation is configured.
type HealthHandler struct {
	info func() HealthResponse
}

// NewHealthHandler creates a HealthHandler. info is called per request so
// the response reflects the live provider state.
func NewHealthHandler(info func() HealthResponse) *HealthHandler {
	return &HealthHandler{info: info}
}

// Health handles GET /health requests. It always answers 200 while the
// process is serving; Configured tells operators whether generation works.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if h.info != nil {
		resp = h.info()
		resp.Status = "ok"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
