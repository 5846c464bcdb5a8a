package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maksimkurb/keen-tap/src/internal/config"
	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// TapInspector is the read-only part of the tap service the API needs.
type TapInspector interface {
	Status(a, b string) ([]*networking.InterfaceStatus, error)
	Check(a, b string) ([]networking.CheckResult, error)
	Links() ([]networking.LinkSummary, error)
}

// Handler manages all API endpoints and dependencies.
type Handler struct {
	tap     TapInspector
	cfg     *config.Config
	version string
}

// NewHandler creates a new API handler. cfg supplies the default pair.
func NewHandler(tap TapInspector, cfg *config.Config, version string) *Handler {
	return &Handler{
		tap:     tap,
		cfg:     cfg,
		version: version,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// pairFromQuery reads interface_a/interface_b, falling back to the configured pair.
func (h *Handler) pairFromQuery(r *http.Request) (string, string, error) {
	a := r.URL.Query().Get("interface_a")
	b := r.URL.Query().Get("interface_b")

	var args []string
	if a != "" || b != "" {
		args = []string{a, b}
	}
	return h.cfg.ResolvePair(args)
}

// CheckHealth reports whether netlink is usable.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Version: h.version,
		Checks:  make(map[string]CheckStatus),
	}

	if links, err := h.tap.Links(); err != nil {
		response.Healthy = false
		response.Checks["netlink"] = CheckStatus{Passed: false, Message: "Failed to list interfaces: " + err.Error()}
	} else {
		response.Checks["netlink"] = CheckStatus{Passed: true, Message: fmt.Sprintf("Netlink is reachable, %d interface(s)", len(links))}
	}

	if h.cfg != nil && h.cfg.Tap.IsConfigured() {
		response.Checks["config"] = CheckStatus{Passed: true, Message: "Interface pair is configured"}
	} else {
		response.Checks["config"] = CheckStatus{Passed: true, Message: "No interface pair configured, pass interface_a and interface_b"}
	}

	statusCode := http.StatusOK
	if !response.Healthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, response)
}

// GetStatus returns the status of both interfaces of the pair.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	a, b, err := h.pairFromQuery(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	statuses, err := h.tap.Status(a, b)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeJSONData(w, StatusResponse{Interfaces: statuses})
}

// GetSelfCheck runs the self-check for the pair.
// GET /api/v1/check
func (h *Handler) GetSelfCheck(w http.ResponseWriter, r *http.Request) {
	a, b, err := h.pairFromQuery(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	results, err := h.tap.Check(a, b)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if results == nil {
		results = []networking.CheckResult{}
	}
	writeJSONData(w, SelfCheckResponse{OK: networking.AllOK(results), Results: results})
}

// GetInterfaces lists all interfaces.
// GET /api/v1/interfaces
func (h *Handler) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	links, err := h.tap.Links()
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeJSONData(w, InterfacesResponse{Interfaces: links})
}
