package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/viralforge/adforge/internal/domain"
)

func TestCreateSelectedAssignsGaplessVersions(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := repos.Clips.CreateSelected(ctx, domain.ClipVersion{
				CampaignID: "camp-1",
				BeatOrder:  1,
				Status:     domain.ClipStatusPending,
			})
			if err != nil {
				t.Errorf("create selected: %v", err)
			}
		}()
	}
	wg.Wait()

	versions, err := repos.Clips.ListByBeat(ctx, "camp-1", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(versions) != writers {
		t.Fatalf("versions = %d, want %d", len(versions), writers)
	}
	selected := 0
	for i, v := range versions {
		if v.VersionNumber != i+1 {
			t.Fatalf("position %d has version %d; numbering must be gapless", i, v.VersionNumber)
		}
		if v.ClipID == "" || v.CreatedAt.IsZero() {
			t.Fatalf("identity not assigned: %+v", v)
		}
		if v.Selected {
			selected++
		}
	}
	if selected != 1 {
		t.Fatalf("selected count = %d, want exactly 1", selected)
	}
}

func TestSelectVersionScopedToBeat(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	a, _ := repos.Clips.CreateSelected(ctx, domain.ClipVersion{CampaignID: "camp-1", BeatOrder: 1})
	b, _ := repos.Clips.CreateSelected(ctx, domain.ClipVersion{CampaignID: "camp-1", BeatOrder: 1})

	if err := repos.Clips.SelectVersion(ctx, "camp-1", 2, a.ClipID); err != domain.ErrNotFound {
		t.Fatalf("wrong beat should be rejected, got %v", err)
	}
	if err := repos.Clips.SelectVersion(ctx, "camp-1", 1, a.ClipID); err != nil {
		t.Fatalf("select: %v", err)
	}
	got, err := repos.Clips.GetSelected(ctx, "camp-1", 1)
	if err != nil || got.ClipID != a.ClipID {
		t.Fatalf("selected = %v (%v), want %s", got.ClipID, err, a.ClipID)
	}
	if other, _ := repos.Clips.GetByID(ctx, b.ClipID); other.Selected {
		t.Fatalf("two versions selected at once")
	}
}

func TestArchiveFailureMode(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	repos.Archives.SetFailing(true)
	err := repos.Archives.Save(ctx, domain.ArchivedVersion{ArchiveID: "a1", CampaignID: "camp-1", BeatOrder: 1})
	var archErr *domain.ArchivalWriteError
	if !errors.As(err, &archErr) || archErr.BeatOrder != 1 {
		t.Fatalf("expected archival write error for beat 1, got %v", err)
	}

	repos.Archives.SetFailing(false)
	if err := repos.Archives.Save(ctx, domain.ArchivedVersion{ArchiveID: "a1", CampaignID: "camp-1", BeatOrder: 1}); err != nil {
		t.Fatalf("save after recovery: %v", err)
	}
	got, err := repos.Archives.GetByID(ctx, "a1")
	if err != nil || got.ArchiveID != "a1" {
		t.Fatalf("get archive: %v", err)
	}
}

func TestCreditLedgerAtomicReservation(t *testing.T) {
	ledger := NewCreditLedger()
	ctx := context.Background()
	ledger.Grant("owner-1", 100)

	// 100 credits cover exactly one of two concurrent 100-credit holds.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ledger.CheckAndReserve(ctx, "owner-1", 100)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range results {
		if err == nil {
			granted++
			continue
		}
		if _, ok := err.(*domain.InsufficientCreditsError); !ok {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if granted != 1 {
		t.Fatalf("granted = %d, want exactly 1", granted)
	}
	if balance, _ := ledger.Balance(ctx, "owner-1"); balance != 0 {
		t.Fatalf("balance = %v, want 0", balance)
	}

	if err := ledger.Release(ctx, "owner-1", 40); err != nil {
		t.Fatalf("release: %v", err)
	}
	if balance, _ := ledger.Balance(ctx, "owner-1"); balance != 40 {
		t.Fatalf("balance after release = %v, want 40", balance)
	}
	if err := ledger.CheckAndReserve(ctx, "owner-1", -1); err != domain.ErrInvalidInput {
		t.Fatalf("negative reservation accepted: %v", err)
	}
}
