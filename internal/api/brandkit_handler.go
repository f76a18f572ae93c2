package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/brandkit-api/internal/api/shared"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/service"
)

// BrandKitHandler handles brand kit HTTP requests
type BrandKitHandler struct {
	brandKitService service.BrandKitService
	requestTimeout  time.Duration
	logger          *slog.Logger
}

// NewBrandKitHandler creates a new BrandKitHandler. A non-positive
// requestTimeout leaves generation bounded only by the client connection.
func NewBrandKitHandler(
	brandKitService service.BrandKitService,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *BrandKitHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrandKitHandler{
		brandKitService: brandKitService,
		requestTimeout:  requestTimeout,
		logger:          logger.With(slog.String("component", "brandkit_handler")),
	}
}

// generationContext bounds a generation request by the configured timeout.
func (h *BrandKitHandler) generationContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

// decodeGenerateRequest parses the body, writing a 400 on failure.
func (h *BrandKitHandler) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*GenerateRequest, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return &req, true
}

// PreviewBrandKit handles POST /api/brandkits/preview requests
func (h *BrandKitHandler) PreviewBrandKit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.generationContext(r)
	defer cancel()

	preview, err := h.brandKitService.Preview(ctx, req.Input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate preview")
		return
	}

	log.Debug("preview response sent", slog.Int("taglines", len(preview.TaglineSuggestions)))
	shared.RespondWithJSON(w, r, http.StatusOK, preview)
}

// CreateBrandKit handles POST /api/brandkits/full requests. The kit is
// persisted before it is returned.
func (h *BrandKitHandler) CreateBrandKit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.generationContext(r)
	defer cancel()

	kit, err := h.brandKitService.CreateKit(ctx, req.Input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create brand kit")
		return
	}

	w.Header().Set("Location", "/api/brandkits/"+kit.ID.String())
	log.Debug("brand kit response sent", slog.String("kit_id", kit.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, kit)
}

// GetBrandKit handles GET /api/brandkits/{id} requests
func (h *BrandKitHandler) GetBrandKit(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	kit, err := h.brandKitService.GetKit(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load brand kit")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, kit)
}
