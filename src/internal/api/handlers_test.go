package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimkurb/keen-tap/src/internal/config"
	apperrors "github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/mocks"
	"github.com/maksimkurb/keen-tap/src/internal/networking"
	"github.com/maksimkurb/keen-tap/src/internal/service"
)

func doRequest(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "127.0.0.1:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

// newKernelRouter serves a real TapService over an in-memory kernel with an applied tap.
func newKernelRouter(t *testing.T, cfg *config.Config) (http.Handler, *mocks.FakeKernel) {
	t.Helper()
	kernel := mocks.NewFakeKernel()
	kernel.AddLink(1, "lo")
	kernel.AddLink(5, "veth0", "10.0.0.1/24")
	kernel.AddLink(6, "veth1")

	tap := service.NewTapService(networking.NewManagerWithDeps(kernel, kernel))
	require.NoError(t, tap.Start("veth0", "veth1"))

	return NewRouter(NewHandler(tap, cfg, "test")), kernel
}

func TestGetStatus(t *testing.T) {
	router, _ := newKernelRouter(t, config.DefaultConfig())

	rec := doRequest(t, router, "/api/v1/status?interface_a=veth0&interface_b=veth1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Interfaces, 2)
	assert.Equal(t, "veth0", resp.Interfaces[0].Name)
	assert.Equal(t, "veth1", resp.Interfaces[1].Name)
	for _, status := range resp.Interfaces {
		assert.False(t, status.IPv6Enabled)
		assert.True(t, status.PromiscuousMode)
		require.Len(t, status.Qdiscs, 1)
		assert.Equal(t, "ingress", status.Qdiscs[0].Kind)
	}
}

func TestGetStatus_UsesConfiguredPair(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tap.InterfaceA = "veth1"
	cfg.Tap.InterfaceB = "veth0"
	router, _ := newKernelRouter(t, cfg)

	rec := doRequest(t, router, "/api/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Interfaces, 2)
	assert.Equal(t, "veth1", resp.Interfaces[0].Name)
}

func TestGetStatus_Errors(t *testing.T) {
	router, _ := newKernelRouter(t, config.DefaultConfig())

	tests := []struct {
		name   string
		target string
		status int
		code   ErrorCode
	}{
		{"missing interface", "/api/v1/status?interface_a=veth0&interface_b=ghost0", http.StatusNotFound, ErrCodeNotFound},
		{"no pair", "/api/v1/status", http.StatusBadRequest, ErrCodeInvalidRequest},
		{"half pair", "/api/v1/status?interface_a=veth0", http.StatusBadRequest, ErrCodeInvalidRequest},
		{"bad name", "/api/v1/status?interface_a=veth0&interface_b=a%2Fb", http.StatusBadRequest, ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestGetSelfCheck(t *testing.T) {
	router, kernel := newKernelRouter(t, config.DefaultConfig())

	rec := doRequest(t, router, "/api/v1/check?interface_a=veth0&interface_b=veth1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SelfCheckResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.OK)
	assert.Len(t, resp.Results, 8)

	kernel.SetPromisc("veth1", false)

	rec = doRequest(t, router, "/api/v1/check?interface_a=veth0&interface_b=veth1")
	decodeData(t, rec, &resp)
	assert.False(t, resp.OK)
}

func TestGetInterfaces(t *testing.T) {
	router, _ := newKernelRouter(t, nil)

	rec := doRequest(t, router, "/api/v1/interfaces")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp InterfacesResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp.Interfaces, 3)
	assert.Equal(t, "lo", resp.Interfaces[0].Name)
	assert.Empty(t, resp.Interfaces[1].Addresses, "start flushed veth0")
}

func TestCheckHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := NewRouter(NewHandler(service.NewTapService(mocks.NewMockTapEngine()), config.DefaultConfig(), "1.2.3"))

		rec := doRequest(t, router, "/api/v1/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthCheckResponse
		decodeData(t, rec, &resp)
		assert.True(t, resp.Healthy)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.True(t, resp.Checks["netlink"].Passed)
	})

	t.Run("netlink down", func(t *testing.T) {
		engine := mocks.NewMockTapEngine()
		engine.LinksFunc = func() ([]networking.LinkSummary, error) {
			return nil, apperrors.NewTransportError("", "failed to list links", errors.New("closed"))
		}
		router := NewRouter(NewHandler(service.NewTapService(engine), config.DefaultConfig(), "1.2.3"))

		rec := doRequest(t, router, "/api/v1/health")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthCheckResponse
		decodeData(t, rec, &resp)
		assert.False(t, resp.Healthy)
	})
}

func TestWriteAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, apperrors.NewTransportError("veth0", "failed to add ingress qdisc", errors.New("EPERM")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, ErrCodeInternalError, apiErr.Code)
	assert.Equal(t, "TRANSPORT_ERROR", apiErr.Details["kind"])
}

func TestUnknownEndpoint(t *testing.T) {
	router := NewRouter(NewHandler(service.NewTapService(mocks.NewMockTapEngine()), nil, "test"))

	rec := doRequest(t, router, "/api/v1/start")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
