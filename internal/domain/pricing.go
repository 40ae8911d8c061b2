package domain

type PricingTable struct {
	VideoCreditsPerSecond float64 `json:"video_credits_per_second"`
	FrameCredits          float64 `json:"frame_credits"`
	VoiceCredits          float64 `json:"voice_credits"`
	AmbientCredits        float64 `json:"ambient_credits"`
}

func DefaultPricing() PricingTable {
	return PricingTable{
		VideoCreditsPerSecond: 10,
		FrameCredits:          8,
		VoiceCredits:          15,
		AmbientCredits:        5,
	}
}

// StageCost prices a single stage for a clip of the given duration.
func (p PricingTable) StageCost(stage Stage, durationSeconds float64) float64 {
	switch stage {
	case StageFrame:
		return p.FrameCredits
	case StageVideo:
		return p.VideoCreditsPerSecond * durationSeconds
	case StageVoice:
		return p.VoiceCredits
	case StageAmbient:
		return p.AmbientCredits
	default:
		return 0
	}
}

func (p PricingTable) ClipCost(durationSeconds float64, stages []Stage) float64 {
	total := 0.0
	for _, stage := range stages {
		total += p.StageCost(stage, durationSeconds)
	}
	return total
}

// BatchCost estimates a full-generation batch: every beat runs the complete
// stage chain. The pre-check reserves this amount before any vendor call.
func (p PricingTable) BatchCost(specs []BeatSpec) float64 {
	total := 0.0
	for _, spec := range specs {
		total += p.ClipCost(spec.DurationSeconds, StagesFor(RegenerateAll))
	}
	return total
}
