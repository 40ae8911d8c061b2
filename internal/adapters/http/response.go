package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, contracts.SuccessResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{Status: "error", Error: contracts.ErrorPayload{Code: code, Message: message, RequestID: requestID}})
}

func mapDomainError(err error) (int, string) {
	var insufficient *domain.InsufficientCreditsError
	var planFailed *domain.PlanGenerationError
	var assembly *domain.AssemblyError
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrGenerationActive):
		return http.StatusConflict, "generation_active"
	case errors.Is(err, domain.ErrCampaignNotReady):
		return http.StatusConflict, "campaign_not_ready"
	case errors.As(err, &insufficient):
		return http.StatusPaymentRequired, "insufficient_credits"
	case errors.As(err, &planFailed):
		return http.StatusBadGateway, "plan_generation_failed"
	case errors.As(err, &assembly):
		if assembly.Retryable {
			return http.StatusServiceUnavailable, "assembly_retryable"
		}
		return http.StatusBadGateway, "assembly_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
