package http

import (
	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
)

func toCampaignResponse(c domain.Campaign) contracts.CampaignResponse {
	beats := make([]contracts.BeatDTO, 0, len(c.Beats))
	for _, b := range c.Beats {
		beats = append(beats, contracts.BeatDTO{Order: b.Order, Kind: string(b.Kind)})
	}
	return contracts.CampaignResponse{
		CampaignID:           c.CampaignID,
		Title:                c.Title,
		Status:               string(c.Status),
		Beats:                beats,
		FinalVideoURL:        c.FinalVideoURL,
		FinalDurationSeconds: c.FinalDurationSeconds,
		LastError:            c.LastError,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func toClipVersionDTO(clip domain.ClipVersion) contracts.ClipVersionDTO {
	dto := contracts.ClipVersionDTO{
		ClipID:          clip.ClipID,
		BeatOrder:       clip.BeatOrder,
		VersionNumber:   clip.VersionNumber,
		Selected:        clip.Selected,
		Status:          string(clip.Status),
		ScriptText:      clip.Script.Text,
		Engine:          string(clip.Video.Engine),
		DurationSeconds: clip.Video.DurationSeconds,
		FirstFrameURL:   clip.FirstFrame.ImageURL,
		RawURL:          clip.Video.RawURL,
		FinalURL:        clip.Video.FinalURL,
		VoiceURL:        clip.Audio.VoiceURL,
		AmbientURL:      clip.Audio.AmbientURL,
		FailureReason:   clip.FailureReason,
		CreatedAt:       clip.CreatedAt,
	}
	if clip.Adjustments.Auto != nil || clip.Adjustments.User != nil {
		effective := domain.ResolveAdjustments(clip.Adjustments, clip.Video.DurationSeconds)
		adj := &contracts.AdjustmentsDTO{
			Effective: &contracts.AdjustmentDTO{
				TrimStart: effective.TrimStart,
				TrimEnd:   effective.TrimEnd,
				Speed:     effective.Speed,
			},
			Source: string(effective.Source),
		}
		if a := clip.Adjustments.Auto; a != nil {
			adj.Auto = &contracts.AdjustmentDTO{TrimStart: a.TrimStart, TrimEnd: a.TrimEnd, Speed: a.Speed}
		}
		if u := clip.Adjustments.User; u != nil {
			adj.User = &contracts.AdjustmentDTO{TrimStart: u.TrimStart, TrimEnd: u.TrimEnd, Speed: u.Speed}
		}
		dto.Adjustments = adj
	}
	return dto
}

func toClipVersionDTOs(clips []domain.ClipVersion) []contracts.ClipVersionDTO {
	out := make([]contracts.ClipVersionDTO, 0, len(clips))
	for _, clip := range clips {
		out = append(out, toClipVersionDTO(clip))
	}
	return out
}

func toArchivedVersionDTOs(archives []domain.ArchivedVersion) []contracts.ArchivedVersionDTO {
	out := make([]contracts.ArchivedVersionDTO, 0, len(archives))
	for _, a := range archives {
		out = append(out, contracts.ArchivedVersionDTO{
			ArchiveID:     a.ArchiveID,
			ClipID:        a.ClipID,
			VersionNumber: a.VersionNumber,
			Action:        string(a.Action),
			ArchivedAt:    a.ArchivedAt,
		})
	}
	return out
}

func toDomainPlanInput(req contracts.CreatePlanRequest) (domain.ActorProfile, domain.StylePreset, domain.CampaignBrief, domain.ProductPlacement) {
	structure := make([]domain.BeatKind, 0, len(req.Preset.Structure))
	for _, kind := range req.Preset.Structure {
		structure = append(structure, domain.BeatKind(kind))
	}
	actor := domain.ActorProfile{
		ActorID:           req.Actor.ActorID,
		Name:              req.Actor.Name,
		Persona:           req.Actor.Persona,
		ReferenceImageURL: req.Actor.ReferenceImageURL,
		VoiceReferenceURL: req.Actor.VoiceReferenceURL,
	}
	preset := domain.StylePreset{
		PresetID:           req.Preset.PresetID,
		Tone:               req.Preset.Tone,
		Structure:          structure,
		SceneMode:          domain.SceneMode(req.Preset.SceneMode),
		Location:           req.Preset.Location,
		PerBeatLocations:   req.Preset.PerBeatLocations,
		CameraStyle:        req.Preset.CameraStyle,
		DefaultEngine:      domain.EngineKind(req.Preset.DefaultEngine),
		DefaultClipSeconds: req.Preset.DefaultClipSeconds,
		ClipCountHint:      req.Preset.ClipCountHint,
	}
	brief := domain.CampaignBrief{
		Product:            req.Brief.Product,
		PainPoint:          req.Brief.PainPoint,
		Audience:           req.Brief.Audience,
		TargetTotalSeconds: req.Brief.TargetTotalSeconds,
		Language:           req.Brief.Language,
	}
	product := domain.ProductPlacement{
		Visible:    req.Product.Visible,
		Descriptor: req.Product.Descriptor,
	}
	return actor, preset, brief, product
}

func toBeatSpecDTOs(specs []domain.BeatSpec) []contracts.BeatSpecDTO {
	out := make([]contracts.BeatSpecDTO, 0, len(specs))
	for _, spec := range specs {
		out = append(out, contracts.BeatSpecDTO{
			Order:           spec.Order,
			Kind:            string(spec.Kind),
			ScriptText:      spec.ScriptText,
			WordCount:       spec.WordCount,
			Engine:          string(spec.Engine),
			DurationSeconds: spec.DurationSeconds,
			Location:        spec.Location,
		})
	}
	return out
}
