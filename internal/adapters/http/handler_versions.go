package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/adforge/internal/application"
	"github.com/viralforge/adforge/internal/contracts"
)

func (h *Handler) listVersions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.ListVersions(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toClipVersionDTOs(out))
}

func (h *Handler) listArchives(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.ListArchives(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toArchivedVersionDTOs(out))
}

func (h *Handler) selectVersion(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	var req contracts.SelectVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.SelectVersion(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder, strings.TrimSpace(req.ClipID))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toClipVersionDTO(out))
}

func (h *Handler) restoreVersion(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	var req contracts.RestoreVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.RestoreVersion(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder, strings.TrimSpace(req.ArchiveID))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", toClipVersionDTO(out))
}

func (h *Handler) editScript(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	var req contracts.EditScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.EditScript(r.Context(), actor, application.EditScriptInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		BeatOrder:  beatOrder,
		Text:       strings.TrimSpace(req.Text),
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", toClipVersionDTO(out))
}

func (h *Handler) setAdjustments(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	var req contracts.SetAdjustmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.SetAdjustments(r.Context(), actor, application.SetAdjustmentsInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		BeatOrder:  beatOrder,
		TrimStart:  req.TrimStart,
		TrimEnd:    req.TrimEnd,
		Speed:      req.Speed,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toClipVersionDTO(out))
}

func (h *Handler) resetAdjustments(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.ResetAdjustments(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toClipVersionDTO(out))
}

func (h *Handler) analyzeClip(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.AnalyzeClip(r.Context(), actor, chi.URLParam(r, "campaign_id"), beatOrder)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toClipVersionDTO(out))
}
