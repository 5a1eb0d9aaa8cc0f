// Package api - API types for bill calculation
// These types define the contract for the /bills endpoint.
// The API is stateless and idempotent.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BillRequest is the input to POST /bills.
// Fields are raw text, exactly as typed into a form.
type BillRequest struct {
	// Consumption in kWh, "," or "." as decimal separator
	Consumption RawInput `json:"consumption"`

	// Flag is the tariff flag name, case-insensitive
	Flag RawInput `json:"flag"`
}

// RawInput accepts a JSON string or a bare JSON number and keeps its text
type RawInput string

// UnmarshalJSON implements json.Unmarshaler
func (r *RawInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*r = RawInput(n.String())
	return nil
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail is an error in a response
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Tariff    string `json:"tariff"`
	Tolerance string `json:"invariant_tolerance"`
	Time      string `json:"time"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}
