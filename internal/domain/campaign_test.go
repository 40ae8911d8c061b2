package domain

import "testing"

func TestValidCampaignTransition(t *testing.T) {
	cases := []struct {
		from, to CampaignStatus
		want     bool
	}{
		{CampaignStatusDraft, CampaignStatusGenerating, true},
		{CampaignStatusDraft, CampaignStatusAssembling, true},
		{CampaignStatusDraft, CampaignStatusCompleted, false},
		{CampaignStatusGenerating, CampaignStatusDraft, true},
		{CampaignStatusGenerating, CampaignStatusAssembling, true},
		{CampaignStatusGenerating, CampaignStatusFailed, true},
		{CampaignStatusGenerating, CampaignStatusCompleted, false},
		{CampaignStatusAssembling, CampaignStatusCompleted, true},
		{CampaignStatusAssembling, CampaignStatusFailed, true},
		{CampaignStatusAssembling, CampaignStatusGenerating, false},
		{CampaignStatusCompleted, CampaignStatusGenerating, true},
		{CampaignStatusFailed, CampaignStatusGenerating, true},
		{CampaignStatusFailed, CampaignStatusAssembling, true},
		{CampaignStatusFailed, CampaignStatusDraft, false},
		{CampaignStatus("bogus"), CampaignStatusDraft, false},
	}
	for _, tc := range cases {
		if got := ValidCampaignTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("ValidCampaignTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsBeatKind(t *testing.T) {
	for _, raw := range []string{"hook", "Problem", " agitation ", "solution", "proof", "CTA"} {
		if !IsBeatKind(raw) {
			t.Errorf("IsBeatKind(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{"", "intro", "hook,cta"} {
		if IsBeatKind(raw) {
			t.Errorf("IsBeatKind(%q) = true, want false", raw)
		}
	}
}
