package sokoban

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

func newGame(t *testing.T, layout string, maxSteps int) *Game {
	t.Helper()
	g := New(Options{
		Level:    levels.Level{ID: "t", Name: "Test", Layout: layout},
		MaxSteps: maxSteps,
	})
	g.Reset(platformcore.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.FrameOf(actions...))
}

func TestStepClearsLevel(t *testing.T) {
	g := newGame(t, "1,1,1,1,1\n1,3,4,1,2\n1,1,1,1,1", 20)

	res := press(g, platformcore.ActionRight)
	if !res.Moved || res.State.Steps != 1 || res.State.GameOver {
		t.Fatalf("first push: %+v", res)
	}

	res = press(g, platformcore.ActionRight)
	if !res.State.Won || !res.State.GameOver {
		t.Fatalf("second push should clear the level: %+v", res)
	}

	snap := g.Snapshot()
	if snap.Status != core.StatusCleared || snap.Steps != 2 || snap.BlocksOnGoal != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Board != "1,1,1,1,1\n1,1,1,3,6\n1,1,1,1,1" {
		t.Errorf("board = %q", snap.Board)
	}

	out, ok := g.LastOutcome()
	if !ok || out.Result != core.MovedPlayerAndPushedBlock {
		t.Errorf("last outcome = %+v, %v", out, ok)
	}
}

func TestRejectedMovesAreCounted(t *testing.T) {
	g := newGame(t, "3,4,2", 0)

	res := press(g, platformcore.ActionLeft)
	if res.Moved {
		t.Error("moving off the grid should not move")
	}
	if out, _ := g.LastOutcome(); out.Reason != core.ReasonOffGrid {
		t.Errorf("reason = %v, expected OffGrid", out.Reason)
	}

	press(g, platformcore.ActionRight)
	if !g.State().Won {
		t.Fatal("push onto the goal should clear")
	}

	press(g, platformcore.ActionRight)
	if out, _ := g.LastOutcome(); out.Reason != core.ReasonGameOver {
		t.Errorf("move after clear: reason = %v, expected GameOver", out.Reason)
	}
	if g.Rejected() != 1 {
		t.Errorf("Rejected() = %d, expected 1 (presses after the clear do not count)", g.Rejected())
	}
}

func TestStepLimit(t *testing.T) {
	g := newGame(t, "3,1,4,1,2", 1)

	res := press(g, platformcore.ActionRight)
	if !res.State.GameOver || res.State.Won {
		t.Fatalf("budget of one step should end the game: %+v", res.State)
	}
	if snap := g.Snapshot(); !snap.StepLimitHit || snap.Status != core.StatusStepLimitReached {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	screen := platformcore.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF STEPS") {
		t.Errorf("expected out of steps banner:\n%s", screen.String())
	}
}

func TestRestartReloadsLevel(t *testing.T) {
	g := newGame(t, "3,4,1,2", 10)
	before := g.Snapshot()

	press(g, platformcore.ActionRight)
	press(g, platformcore.ActionUp)
	if g.Snapshot().Steps != 1 {
		t.Fatalf("expected one accepted step, got %+v", g.Snapshot())
	}

	res := press(g, platformcore.ActionRestart)
	if res.State.Steps != 0 {
		t.Errorf("restart should zero the counter, got %d", res.State.Steps)
	}
	after := g.Snapshot()
	if after != before {
		t.Errorf("restart should restore the initial snapshot:\n got %+v\nwant %+v", after, before)
	}
	if _, ok := g.LastOutcome(); ok {
		t.Error("restart should clear the last outcome")
	}
}

func TestFrameWithSeveralMoves(t *testing.T) {
	g := newGame(t, "1,3,1", 0)

	// Applied in Up, Right, Down, Left order
	press(g, platformcore.ActionLeft, platformcore.ActionRight)
	snap := g.Snapshot()
	if snap.Steps != 2 || snap.Player != core.C(1, 0) || snap.Facing != core.DirLeft {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestBadLayout(t *testing.T) {
	g := New(Options{Level: levels.Level{ID: "bad", Layout: "3,3"}})
	g.Reset(platformcore.DefaultConfig())

	if !errors.Is(g.Err(), core.ErrMalformedLevel) {
		t.Fatalf("Err() = %v, expected malformed level", g.Err())
	}
	if !g.State().GameOver {
		t.Error("a level that failed to load should report game over")
	}
	if g.Engine() != nil {
		t.Error("Engine() should be nil without a level")
	}

	press(g, platformcore.ActionUp)

	screen := platformcore.NewScreen(60, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level failed to load") {
		t.Errorf("expected load error overlay:\n%s", screen.String())
	}
}

func TestRenderBoard(t *testing.T) {
	g := newGame(t, "0,0,0,0\n0,3,4,2\n0,0,0,0", 20)
	screen := platformcore.NewScreen(40, 20)
	g.Render(screen)

	if !strings.HasPrefix(strings.TrimSpace(screen.Row(0)), "SOKOBAN") {
		t.Errorf("row 0 = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "Steps: 0/20") {
		t.Errorf("row 1 = %q", screen.Row(1))
	}
	if !strings.Contains(screen.Row(1), "Goals: 0/1") {
		t.Errorf("row 1 = %q", screen.Row(1))
	}

	// 8x3 board centered in the 40x15 area below the HUD
	rows := []string{"########", `##\/[]()`, "########"}
	for i, want := range rows {
		got := screen.Row(9 + i)[16:24]
		if got != want {
			t.Errorf("board row %d = %q, expected %q", i, got, want)
		}
	}

	press(g, platformcore.ActionRight)
	g.Render(screen)
	if got := screen.Row(10)[16:24]; got != `## .@>[]` {
		t.Errorf("after push board row = %q", got)
	}
	if !strings.Contains(screen.String(), "CLEARED!") {
		t.Error("expected cleared banner")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, "3,4,2", 0)
	screen := platformcore.NewScreen(20, 5)
	g.Render(screen)

	if !strings.Contains(screen.Row(1), "Window too small") {
		t.Errorf("expected too-small overlay:\n%s", screen.String())
	}
}

func TestThemeFromConfig(t *testing.T) {
	tc := config.ThemeConfig{
		Block:  "X",
		Colors: config.ThemeColors{Block: "no-such-color", Goal: "red"},
	}
	theme := ThemeFromConfig(tc)

	if theme.Block.Runes != [2]rune{'X', ' '} {
		t.Errorf("single rune glyph should be padded, got %q", string(theme.Block.Runes[:]))
	}
	def := DefaultTheme()
	if theme.Block.Color != def.Block.Color {
		t.Errorf("unknown color should fall back to default")
	}
	if theme.Goal.Color != platformcore.ColorRed {
		t.Errorf("goal color = %v, expected red", theme.Goal.Color)
	}
	if theme.Wall != def.Wall {
		t.Errorf("empty wall glyph should use default")
	}
	if theme.Player[core.DirRight].Runes != [2]rune{'@', '>'} {
		t.Errorf("right-facing player = %q", string(theme.Player[core.DirRight].Runes[:]))
	}
}
