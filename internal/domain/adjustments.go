package domain

import (
	"math"
	"time"
)

type AdjustmentSource string

const (
	AdjustmentSourceUser    AdjustmentSource = "user"
	AdjustmentSourceAuto    AdjustmentSource = "auto"
	AdjustmentSourceDefault AdjustmentSource = "default"
)

type ClipAdjustment struct {
	TrimStart float64   `json:"trim_start"`
	TrimEnd   float64   `json:"trim_end"`
	Speed     float64   `json:"speed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Adjustments holds the transcription-derived trim/speed next to the explicit
// user edit. A present user edit always wins; clearing it un-shadows auto.
type Adjustments struct {
	Auto *ClipAdjustment `json:"auto,omitempty"`
	User *ClipAdjustment `json:"user,omitempty"`
}

type EffectiveAdjustment struct {
	TrimStart float64          `json:"trim_start"`
	TrimEnd   float64          `json:"trim_end"`
	Speed     float64          `json:"speed"`
	Source    AdjustmentSource `json:"source"`
}

// AllowedSpeeds is the product's playback speed policy: never below 1.0.
// The floor lives only here so the policy can be revisited in one place.
var AllowedSpeeds = []float64{1.0, 1.1, 1.2}

func ClampSpeed(speed float64) float64 {
	best := AllowedSpeeds[0]
	dist := math.Abs(speed - best)
	for _, s := range AllowedSpeeds[1:] {
		if d := math.Abs(speed - s); d < dist {
			best, dist = s, d
		}
	}
	return best
}

// ResolveAdjustments computes the trim/speed applied at normalization time.
// User wins over auto unconditionally; neither present falls back to the full
// clip at normal speed. Trim values that do not satisfy
// 0 <= start < end <= duration are discarded in favor of the full window.
func ResolveAdjustments(adj Adjustments, videoDurationSeconds float64) EffectiveAdjustment {
	pick := func(a *ClipAdjustment, source AdjustmentSource) EffectiveAdjustment {
		out := EffectiveAdjustment{
			TrimStart: a.TrimStart,
			TrimEnd:   a.TrimEnd,
			Speed:     ClampSpeed(a.Speed),
			Source:    source,
		}
		if out.TrimStart < 0 {
			out.TrimStart = 0
		}
		if out.TrimEnd <= 0 || out.TrimEnd > videoDurationSeconds {
			out.TrimEnd = videoDurationSeconds
		}
		if out.TrimStart >= out.TrimEnd {
			out.TrimStart, out.TrimEnd = 0, videoDurationSeconds
		}
		return out
	}

	switch {
	case adj.User != nil:
		return pick(adj.User, AdjustmentSourceUser)
	case adj.Auto != nil:
		return pick(adj.Auto, AdjustmentSourceAuto)
	default:
		return EffectiveAdjustment{TrimStart: 0, TrimEnd: videoDurationSeconds, Speed: 1.0, Source: AdjustmentSourceDefault}
	}
}

// ValidateUserAdjustment rejects edits that cannot be applied to the clip.
func ValidateUserAdjustment(a ClipAdjustment, videoDurationSeconds float64) error {
	if a.TrimStart < 0 || a.TrimEnd <= a.TrimStart || a.TrimEnd > videoDurationSeconds {
		return ErrInvalidInput
	}
	if a.Speed < 1.0 {
		return ErrInvalidInput
	}
	return nil
}
