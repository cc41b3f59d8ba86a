package registry

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

type stubGame struct {
	id     string
	resets int
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) error { g.resets++; return nil }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should exist after Register")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q, want stub-a", g.ID())
	}

	// Each Create returns a fresh instance.
	g2, _ := Create("stub-a")
	if g == g2 {
		t.Error("Create returned the same instance twice")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no-such-game") {
		t.Error("Exists should be false for unknown game")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("stub-c", func() Game { return &stubGame{id: "stub-c"} })
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })

	var got []GameInfo
	for _, info := range List() {
		if info.ID == "stub-b" || info.ID == "stub-c" {
			got = append(got, info)
		}
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 stub games, got %d", len(got))
	}
	if got[0].ID != "stub-b" || got[1].ID != "stub-c" {
		t.Errorf("List not sorted: %v", got)
	}
	if got[0].Title != "Stub stub-b" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Stub stub-b")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
