package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/adforge/internal/application"
	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	actorProfile, preset, brief, product := toDomainPlanInput(req)
	out, err := h.service.CreatePlan(r.Context(), actor, application.CreatePlanInput{
		Actor:   actorProfile,
		Preset:  preset,
		Brief:   brief,
		Product: product,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", contracts.CreatePlanResponse{
		CampaignID: out.Campaign.CampaignID,
		Title:      out.Campaign.Title,
		Status:     string(out.Campaign.Status),
		Beats:      toBeatSpecDTOs(out.Specs),
	})
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	out, err := h.service.GetCampaign(r.Context(), actor, chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	resp := toCampaignResponse(out.Campaign)
	resp.Clips = toClipVersionDTOs(out.Clips)
	writeSuccess(w, http.StatusOK, "", resp)
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaign_id")
	out, err := h.service.Estimate(r.Context(), actor, campaignID)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.EstimateResponse{
		CampaignID:       campaignID,
		EstimatedCredits: out.EstimatedCredits,
		AvailableCredits: out.AvailableCredits,
	})
}

func (h *Handler) startGeneration(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	out, err := h.service.StartGeneration(r.Context(), actor, chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusAccepted, "", contracts.StartGenerationResponse{
		CampaignID:       out.Campaign.CampaignID,
		Status:           string(out.Campaign.Status),
		BeatsQueued:      out.BeatsQueued,
		CreditsReserved:  out.CreditsReserved,
		CreditsRemaining: out.CreditsRemaining,
	})
}

func (h *Handler) cancelGeneration(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if err := h.service.Cancel(r.Context(), actor, chi.URLParam(r, "campaign_id")); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusAccepted, "cancellation requested", nil)
}

func (h *Handler) regenerate(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	beatOrder, err := beatOrderParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "beat order must be a positive integer", requestIDFromContext(r.Context()))
		return
	}
	var req contracts.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	action, err := domain.ParseRegenerateAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "unknown regenerate action", requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.Regenerate(r.Context(), actor, application.RegenerateInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		BeatOrder:  beatOrder,
		Action:     action,
		Feedback:   strings.TrimSpace(req.Feedback),
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusAccepted, "", toClipVersionDTO(out))
}

func (h *Handler) assemble(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	out, err := h.service.Assemble(r.Context(), actor, chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", contracts.AssembleResponse{
		CampaignID:           out.Campaign.CampaignID,
		Status:               string(out.Campaign.Status),
		FinalVideoURL:        out.Campaign.FinalVideoURL,
		FinalDurationSeconds: out.Campaign.FinalDurationSeconds,
		DegradedBeats:        out.DegradedBeats,
		ClipIDs:              out.ClipIDs,
	})
}

func beatOrderParam(r *http.Request) (int, error) {
	order, err := strconv.Atoi(chi.URLParam(r, "beat_order"))
	if err != nil || order < 1 {
		return 0, strconv.ErrRange
	}
	return order, nil
}
