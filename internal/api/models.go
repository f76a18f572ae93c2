package api

import (
	"github.com/phrazzld/brandkit-api/internal/domain"
)

// GenerateRequest is the body of both generation endpoints.
type GenerateRequest struct {
	Input domain.BrandInputs `json:"input"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	// Configured is false when the provider credential is absent; generation
	// requests will fail with a configuration error until it is set.
	Configured bool   `json:"configured"`
	Store      string `json:"store"`
	Profile    string `json:"profile"`
}
