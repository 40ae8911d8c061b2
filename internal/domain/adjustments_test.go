package domain

import (
	"testing"
	"time"
)

func TestClampSpeed(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 1.0},
		{1.0, 1.0},
		{1.04, 1.0},
		{1.06, 1.1},
		{1.14, 1.1},
		{1.17, 1.2},
		{1.5, 1.2},
		{3.0, 1.2},
	}
	for _, c := range cases {
		if got := ClampSpeed(c.in); got != c.want {
			t.Fatalf("ClampSpeed(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestResolveAdjustmentsPrecedence(t *testing.T) {
	now := time.Now()
	auto := &ClipAdjustment{TrimStart: 0.2, TrimEnd: 5.5, Speed: 1.1, UpdatedAt: now}
	user := &ClipAdjustment{TrimStart: 1.0, TrimEnd: 4.0, Speed: 1.2, UpdatedAt: now}

	eff := ResolveAdjustments(Adjustments{Auto: auto, User: user}, 6)
	if eff.Source != AdjustmentSourceUser || eff.TrimStart != 1.0 || eff.TrimEnd != 4.0 || eff.Speed != 1.2 {
		t.Fatalf("user edit should win: %+v", eff)
	}

	eff = ResolveAdjustments(Adjustments{Auto: auto}, 6)
	if eff.Source != AdjustmentSourceAuto || eff.TrimStart != 0.2 || eff.TrimEnd != 5.5 {
		t.Fatalf("auto should apply without user edit: %+v", eff)
	}

	eff = ResolveAdjustments(Adjustments{}, 6)
	if eff.Source != AdjustmentSourceDefault || eff.TrimStart != 0 || eff.TrimEnd != 6 || eff.Speed != 1.0 {
		t.Fatalf("default should cover the full clip: %+v", eff)
	}
}

func TestResolveAdjustmentsDiscardsBrokenTrims(t *testing.T) {
	bad := &ClipAdjustment{TrimStart: 5, TrimEnd: 2, Speed: 1.0}
	eff := ResolveAdjustments(Adjustments{User: bad}, 6)
	if eff.TrimStart != 0 || eff.TrimEnd != 6 {
		t.Fatalf("inverted trim should fall back to full window: %+v", eff)
	}

	over := &ClipAdjustment{TrimStart: 1, TrimEnd: 12, Speed: 1.0}
	eff = ResolveAdjustments(Adjustments{Auto: over}, 6)
	if eff.TrimEnd != 6 {
		t.Fatalf("trim past clip end should clamp to duration: %+v", eff)
	}
	if eff.TrimStart != 1 {
		t.Fatalf("valid start should survive clamping: %+v", eff)
	}
}

func TestValidateUserAdjustment(t *testing.T) {
	ok := ClipAdjustment{TrimStart: 0.5, TrimEnd: 5, Speed: 1.1}
	if err := ValidateUserAdjustment(ok, 6); err != nil {
		t.Fatalf("valid adjustment rejected: %v", err)
	}
	bad := []ClipAdjustment{
		{TrimStart: -1, TrimEnd: 5, Speed: 1.0},
		{TrimStart: 3, TrimEnd: 3, Speed: 1.0},
		{TrimStart: 0, TrimEnd: 7, Speed: 1.0},
		{TrimStart: 0, TrimEnd: 5, Speed: 0.8},
	}
	for i, a := range bad {
		if err := ValidateUserAdjustment(a, 6); err != ErrInvalidInput {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}
