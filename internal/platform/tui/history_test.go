package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func TestHistoryRows(t *testing.T) {
	runs := []storage.Run{{
		Frames:     200,
		RideFrames: 50,
		Jumps:      3,
		Flips:      7,
		EndReason:  storage.EndQuit,
		ScriptName: "hud.js",
		ScriptHash: 0xabcd000000000000,
		CreatedAt:  time.Date(2026, time.March, 4, 9, 5, 0, 0, time.UTC),
	}}

	rows := HistoryRows(runs)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"Mar 04 09:05", "200", "25%", "3", "7", "quit", "hud.js abcd"}
	for i, cell := range rows[0] {
		if cell != want[i] {
			t.Errorf("column %d = %q, want %q", i, cell, want[i])
		}
	}
}

func TestHistoryModelView(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	empty := NewHistoryModel(store, "platformer", 100, 30)
	if !strings.Contains(empty.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}

	for i := 0; i < 2; i++ {
		if _, err := store.SaveRun(storage.Run{GameID: "platformer", Frames: 60, RideFrames: 30, EndReason: storage.EndCompleted}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewHistoryModel(store, "platformer", 100, 30)
	view := m.View()
	if !strings.Contains(view, "RUN HISTORY - platformer") {
		t.Error("missing title")
	}
	if !strings.Contains(view, "2 runs") {
		t.Errorf("missing summary in %q", view)
	}
	if !strings.Contains(view, "completed") {
		t.Error("missing run rows")
	}
}
