package domain

import (
	"strings"
	"time"
)

type BoundaryAnalysis struct {
	SpeechStart        float64 `json:"speech_start"`
	SpeechEnd          float64 `json:"speech_end"`
	SyllablesPerSecond float64 `json:"syllables_per_second"`
	SuggestedSpeed     float64 `json:"suggested_speed"`
	Confidence         float64 `json:"confidence"`
}

const (
	// speechPadSeconds is kept in front of the first and behind the last word
	// so trims never clip a plosive.
	speechPadSeconds = 0.15

	// targetSyllablesPerSecond is the pace short-form delivery aims for; a
	// slower take gets a speed-up suggestion, never a slow-down.
	targetSyllablesPerSecond = 6.0
)

// AnalyzeSpeechWindow derives the true speech window and a playback speed
// suggestion from word-level timestamps. It is the local fallback for the
// script model's boundary analysis and uses the same contract.
func AnalyzeSpeechWindow(words []WordTimestamp, originalScript string, durationSeconds float64) BoundaryAnalysis {
	if len(words) == 0 || durationSeconds <= 0 {
		return BoundaryAnalysis{SpeechStart: 0, SpeechEnd: durationSeconds, SuggestedSpeed: 1.0}
	}

	start := words[0].Start - speechPadSeconds
	if start < 0 {
		start = 0
	}
	end := words[len(words)-1].End + speechPadSeconds
	if end > durationSeconds {
		end = durationSeconds
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w.Word)
	}
	window := end - start
	sps := 0.0
	if window > 0 {
		sps = float64(syllables) / window
	}

	suggested := 1.0
	if sps > 0 && sps < targetSyllablesPerSecond {
		suggested = ClampSpeed(targetSyllablesPerSecond / sps)
	}

	return BoundaryAnalysis{
		SpeechStart:        start,
		SpeechEnd:          end,
		SyllablesPerSecond: sps,
		SuggestedSpeed:     suggested,
		Confidence:         scriptCoverage(words, originalScript),
	}
}

// AutoAdjustmentFrom turns a boundary analysis into the clip's automatic
// trim/speed values.
func AutoAdjustmentFrom(a BoundaryAnalysis, now time.Time) *ClipAdjustment {
	return &ClipAdjustment{
		TrimStart: a.SpeechStart,
		TrimEnd:   a.SpeechEnd,
		Speed:     ClampSpeed(a.SuggestedSpeed),
		UpdatedAt: now,
	}
}

// countSyllables approximates English syllables as vowel groups, minimum one
// per word. Good enough for pace estimation; exact phonetics are not needed.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func scriptCoverage(words []WordTimestamp, script string) float64 {
	scriptWords := strings.Fields(strings.ToLower(script))
	if len(scriptWords) == 0 {
		return 0
	}
	spoken := make(map[string]int, len(words))
	for _, w := range words {
		spoken[normalizeWord(w.Word)]++
	}
	matched := 0
	for _, sw := range scriptWords {
		key := normalizeWord(sw)
		if spoken[key] > 0 {
			spoken[key]--
			matched++
		}
	}
	return float64(matched) / float64(len(scriptWords))
}

func normalizeWord(w string) string {
	return strings.Trim(strings.ToLower(w), ".,!?;:\"'()")
}
