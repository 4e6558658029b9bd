package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fakeGame records the input it receives and ends when told to.
type fakeGame struct {
	resets  int
	steps   []core.InputFrame
	over    bool
	resized [2]int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.over = false
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: 128, MaxTile: 64, Moves: 12, GameOver: g.over}
}
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want core.Action
		quit bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"k", core.ActionUp, false},
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"h", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"j", core.ActionDown, false},
		{"enter", core.ActionConfirm, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, got, quit, tt.want, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"q":     MenuActionQuit,
		"x":     MenuActionNone,
	}
	for key, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})
	m.Init()

	next, _ := m.Update(keyMsg("left"))
	next, _ = next.Update(TickMsg{})
	next.Update(TickMsg{})

	if len(g.steps) != 2 {
		t.Fatalf("game stepped %d times, want 2", len(g.steps))
	}
	if !g.steps[0].Has(core.ActionLeft) {
		t.Error("first tick should carry the Left action")
	}
	if len(g.steps[1].Actions) != 0 {
		t.Errorf("input not cleared between ticks: %v", g.steps[1].Actions)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, nil, core.DefaultConfig())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key should return tea.Quit")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, core.DefaultConfig())
	m.Init()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("game resized to %v, want [100 30]", g.resized)
	}
}

func TestModelSavesScoreOnceAndRestarts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{}
	var m tea.Model = NewModel(g, store, nil, core.DefaultConfig())
	m.Init()

	g.over = true
	m, _ = m.Update(TickMsg{})
	m, _ = m.Update(TickMsg{})

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d results, want 1", len(scores))
	}
	if s := scores[0]; s.Score != 128 || s.MaxTile != 64 || s.Moves != 12 {
		t.Errorf("saved %+v", s)
	}

	m, _ = m.Update(keyMsg("r"))
	m.Update(TickMsg{})
	if g.resets != 2 {
		t.Errorf("restart after game over: %d resets, want 2", g.resets)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "2048", core.ColorBrightCyan)
	s.DrawText(5, 0, "score")

	out := RenderScreen(s)
	if !strings.Contains(out, "2048") || !strings.Contains(out, "score") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", n)
	}
}

func TestMenuSelection(t *testing.T) {
	registerOnce(t)

	var m tea.Model = NewMenuModel(80, 24)
	for _, k := range []string{"enter", "j", "j", "j", "enter"} {
		m, _ = m.Update(keyMsg(k))
	}

	sel := m.(MenuModel).Selected()
	if sel == nil {
		t.Fatal("menu should have a selection")
	}
	if sel.GameID == "" || sel.Difficulty != config.DifficultyHard {
		t.Errorf("selection = %+v, want hard difficulty", sel)
	}
}

func TestMenuBackAndQuit(t *testing.T) {
	registerOnce(t)

	var m tea.Model = NewMenuModel(80, 24)
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("esc"))
	if m.(MenuModel).inDiffStep {
		t.Error("esc should go back to the variant list")
	}

	m, _ = m.Update(keyMsg("q"))
	if m.(MenuModel).Selected() != nil {
		t.Error("quitting should leave no selection")
	}
}

func TestScoreboardShowsStoredResults(t *testing.T) {
	registerOnce(t)

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveResult(storage.Result{GameID: "fake", Score: 4096, MaxTile: 512, Moves: 300, Agent: "expectimax"})

	m := NewScoreboardModel(store, "fake", 100, 30)
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "4096", "expectimax", "1 games"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q", want)
		}
	}

	next, _ := m.Update(keyMsg("tab"))
	if next.(ScoreboardModel).gameCursor == m.gameCursor && len(m.games) > 1 {
		t.Error("tab should move to the next variant")
	}
}

var registered bool

// registerOnce registers the fake game for menu and scoreboard tests.
func registerOnce(t *testing.T) {
	t.Helper()
	if !registered {
		registry.Register("fake", func() registry.Game { return &fakeGame{} })
		registered = true
	}
}
