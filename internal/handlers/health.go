package handlers

import (
	"net/http"

	"file-bag/internal/startup"
)

// HealthCheck reports overall service health.
// GET /healthz
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// LivenessCheck reports that the process is alive.
// GET /livez
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "alive"})
}

// ReadinessCheck reports that the service can accept conversions.
// GET /readyz
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ready"})
}

// GetVersion returns build information.
// GET /version
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, startup.GetBuildInfo())
}
