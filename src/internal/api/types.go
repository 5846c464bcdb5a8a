package api

import "github.com/maksimkurb/keen-tap/src/internal/networking"

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// HealthCheckResponse reports whether the daemon can talk to the kernel.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Version string                 `json:"version"`
	Checks  map[string]CheckStatus `json:"checks"`
}

// CheckStatus is one health check outcome.
type CheckStatus struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// StatusResponse holds one snapshot per pair member, in pair order.
type StatusResponse struct {
	Interfaces []*networking.InterfaceStatus `json:"interfaces"`
}

// SelfCheckResponse holds the self-check results for a pair.
type SelfCheckResponse struct {
	OK      bool                     `json:"ok"`
	Results []networking.CheckResult `json:"results"`
}

// InterfacesResponse lists all interfaces.
type InterfacesResponse struct {
	Interfaces []networking.LinkSummary `json:"interfaces"`
}
