// Package api - HTTP handler for bill calculation
// This handler wraps the engine - it contains no pricing logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"energy-billing/core/engine"
	"energy-billing/core/types"
	"energy-billing/internal/errors"
	"energy-billing/internal/metrics"
)

// maxBodyBytes caps the request body of POST /bills
const maxBodyBytes = 64 << 10

// Handler handles bill requests
type Handler struct {
	engine *engine.Engine
	logger *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(e *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: e, logger: logger}
}

// HandleBill handles POST /bills
func (h *Handler) HandleBill(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFrom(r.Context())

	var req BillRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	bill, err := h.execute(r.Context(), &req)
	if err != nil {
		metrics.RecordFailure(err)
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("bill calculation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
		writeError(w, requestID, codeFor(err), messageFor(err), status)
		return
	}

	metrics.RecordBill(bill.Flag)
	writeJSON(w, bill, http.StatusOK)
}

// HandleTariff handles GET /tariff
func (h *Handler) HandleTariff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Schedule(), http.StatusOK)
}

func (h *Handler) execute(ctx context.Context, req *BillRequest) (*types.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("request cancelled", err)
	}
	return h.engine.Calculate(string(req.Consumption), string(req.Flag))
}

// statusFor maps the error class to an HTTP status:
// rejected input is 422, everything else is a server fault
func statusFor(err error) int {
	if errors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func codeFor(err error) string {
	if t := errors.TypeOf(err); t != "" {
		return string(t)
	}
	return string(errors.TypeInternal)
}

func messageFor(err error) string {
	if e, ok := errors.As(err); ok {
		return e.Message
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	writeJSON(w, &ErrorResponse{
		Error:     ErrorDetail{Code: code, Message: message},
		RequestID: requestID,
	}, status)
}
