package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrCampaignNotReady = errors.New("campaign has no assemblable clips")
	ErrGenerationActive = errors.New("generation already in progress")
)

// PlanGenerationError covers unparsable or irrecoverably out-of-bound plans.
// It is surfaced to the operator and never retried automatically.
type PlanGenerationError struct {
	Reason string
	Raw    string
}

func (e *PlanGenerationError) Error() string {
	return fmt.Sprintf("plan generation failed: %s", e.Reason)
}

type StageGenerationError struct {
	Stage     Stage
	BeatOrder int
	Err       error
}

func (e *StageGenerationError) Error() string {
	return fmt.Sprintf("beat %d: %s stage failed: %v", e.BeatOrder, e.Stage, e.Err)
}

func (e *StageGenerationError) Unwrap() error { return e.Err }

type InsufficientCreditsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %.0f, available %.0f", e.Required, e.Available)
}

type NormalizationError struct {
	BeatOrder int
	ClipID    string
	Err       error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("beat %d clip %s: normalization failed: %v", e.BeatOrder, e.ClipID, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

type AssemblyError struct {
	Reason    string
	Retryable bool
	Failures  []*NormalizationError
}

func (e *AssemblyError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("assembly failed: %s", e.Reason)
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("assembly failed: %s: %s", e.Reason, strings.Join(parts, "; "))
}

// ArchivalWriteError is a data-integrity warning, not a generation blocker.
type ArchivalWriteError struct {
	BeatOrder int
	Err       error
}

func (e *ArchivalWriteError) Error() string {
	return fmt.Sprintf("beat %d: archival write failed: %v", e.BeatOrder, e.Err)
}

func (e *ArchivalWriteError) Unwrap() error { return e.Err }
