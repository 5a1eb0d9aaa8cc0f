package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy-billing/core/engine"
	"energy-billing/core/tariff"
	"energy-billing/core/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	e, err := engine.NewEngine(tariff.Default())
	require.NoError(t, err)
	return NewServer(e, "test")
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestPostBill(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/bills", `{"consumption":"250","flag":"verde"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var bill types.Bill
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bill))
	assert.True(t, bill.Total.Equal(decimal.RequireFromString("222.705")), "total %s", bill.Total)
	assert.Len(t, bill.Brackets, 3)
	assert.Equal(t, "verde", bill.Flag)
}

func TestPostBillAcceptsNumbersAndCommas(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"consumption":150.5,"flag":"AMARELA"}`,
		`{"consumption":"150,5","flag":" amarela "}`,
	} {
		rec := do(t, s, http.MethodPost, "/bills", body)
		require.Equal(t, http.StatusOK, rec.Code, body)

		var bill types.Bill
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bill))
		assert.True(t, bill.Consumption.Equal(decimal.RequireFromString("150.5")))
		assert.Equal(t, "amarela", bill.Flag)
	}
}

func TestPostBillValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		body    string
		code    string
		message string
	}{
		{`{"consumption":"abc","flag":"verde"}`, "INVALID_FORMAT", "Valor inválido. Digite um número válido"},
		{`{"consumption":"-5","flag":"verde"}`, "NEGATIVE", "O valor deve ser positivo"},
		{`{"consumption":"100","flag":"azul"}`, "UNKNOWN_TIER", "Bandeira inválida. Use: verde, amarela, vermelha"},
		{`{"consumption":"","flag":"azul"}`, "INVALID_FORMAT", "Valor inválido. Digite um número válido"},
		{`{"consumption":"1e-20000000","flag":"verde"}`, "INVALID_FORMAT", "Valor inválido. Digite um número válido"},
		{`{"consumption":1e2000000000,"flag":"verde"}`, "INVALID_FORMAT", "Valor inválido. Digite um número válido"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/bills", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, rec.Header().Get(HeaderRequestID), resp.RequestID)
		})
	}
}

func TestPostBillMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"consumption":`, `{"consumption":"1","flag":"verde","extra":1}`, `{"consumption":true}`} {
		rec := do(t, s, http.MethodPost, "/bills", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "INVALID_JSON")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/bills", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	assert.NoError(t, err)

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(HeaderRequestID))
}

func TestGetTariff(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/tariff", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sched tariff.Schedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sched))
	assert.Equal(t, "residencial", sched.Name)
	require.Len(t, sched.Brackets, 4)
	assert.True(t, sched.Brackets[3].Upper.IsUnbounded())
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "residencial", health.Tariff)
	assert.Equal(t, "0.01", health.Tolerance)

	rec = do(t, s, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "test", v.Version)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/bills", `{"consumption":"10","flag":"vermelha"}`)
	do(t, s, http.MethodPost, "/bills", `{"consumption":"-1","flag":"vermelha"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `energy_billing_bills_total{flag="vermelha"}`)
	assert.Contains(t, body, `energy_billing_validation_failures_total{type="NEGATIVE"}`)
	assert.Contains(t, body, "energy_billing_request_duration_seconds")
}

func TestRawInputUnmarshal(t *testing.T) {
	var req BillRequest
	require.NoError(t, json.Unmarshal([]byte(`{"consumption":1e2,"flag":null}`), &req))
	assert.Equal(t, RawInput("1e2"), req.Consumption)
	assert.Equal(t, RawInput(""), req.Flag)
}
