package ledger

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"), nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	for _, e := range []Entry{
		{Date: "2026-02-09", Source: "task", Amount: 10, Balance: 10, Reason: "Gym"},
		{Date: "2026-02-09", Source: "focus", Amount: 50, Balance: 60},
		{Date: "2026-02-09", Source: "task", Amount: 0, Balance: 60},
	} {
		if err := l.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := l.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("zero-amount entries are skipped, got %d entries", len(got))
	}
	if got[0].Source != "focus" || got[1].Reason != "Gym" {
		t.Fatalf("expected newest first: %+v", got)
	}
	if err := l.Record(ctx, Entry{Amount: 5}); err == nil {
		t.Fatal("expected error for entry without date and source")
	}
}

func TestDailyTotals(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	for _, e := range []Entry{
		{Date: "2026-02-07", Source: "task", Amount: 10},
		{Date: "2026-02-08", Source: "task", Amount: 10},
		{Date: "2026-02-08", Source: "task", Amount: -10},
		{Date: "2026-02-08", Source: "bounty", Amount: 100},
		{Date: "2026-02-09", Source: "hydration", Amount: 20},
		{Date: "2026-02-09", Source: "task", Amount: 10, Balance: 130, Capped: true},
		{Date: "2026-02-09", Source: "focus", Amount: 50, Balance: 130, Capped: true},
	} {
		if err := l.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := l.DailyTotals(ctx, "2026-02-08", "2026-02-09")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two days, got %+v", got)
	}
	if got[0] != (DayTotal{Date: "2026-02-08", Earned: 110, Spent: 10}) {
		t.Fatalf("unexpected first day: %+v", got[0])
	}
	if got[1] != (DayTotal{Date: "2026-02-09", Earned: 20, Spent: 0, Capped: 2}) {
		t.Fatalf("unexpected second day: %+v", got[1])
	}
}

func TestRecordKeepsCappedAttempts(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()
	if err := l.Record(ctx, Entry{Date: "2026-02-09", Source: "task", Amount: 10, Balance: 200, Reason: "Gym", Capped: true}); err != nil {
		t.Fatalf("record capped: %v", err)
	}
	got, err := l.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || !got[0].Capped || got[0].Amount != 10 || got[0].Reason != "Gym" {
		t.Fatalf("capped attempt not stored: %+v", got)
	}
}
