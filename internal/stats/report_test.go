package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tecla-cli/tecla/internal/model"
	"github.com/tecla-cli/tecla/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tecla.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.SessionRecord{
			StartedAt:     start,
			EndedAt:       end,
			Mode:          model.ModeStrict,
			CaseSensitive: true,
			StrictAccents: true,
			Words:         10,
			TextLen:       50,
			Correct:       48,
			Incorrect:     2,
			TotalTyped:    51,
			DurationMs:    end.Sub(start).Milliseconds(),
		}
		charStats := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "ñ", Correct: 4, Incorrect: 1},
		}
		id, err := st.InsertSession(ctx, rec, charStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Last:        2,
		CurveWindow: 2,
		Chars:       "a,ñ",
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.CharAggsAll) == 0 {
		t.Fatalf("expected char aggregates for all sessions")
	}
	if len(report.CharAggsWindow) == 0 {
		t.Fatalf("expected char aggregates for window sessions")
	}
	if len(report.FingerAggsWindow) == 0 {
		t.Fatalf("expected finger aggregates for window sessions")
	}
}
