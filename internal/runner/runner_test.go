package runner

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/agent"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func fromGrid(t *testing.T, g board.Grid) *board.Board {
	t.Helper()
	b, err := board.FromGrid(g, newRNG(1), board.DefaultSpawnPolicy())
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	return b
}

// cycler returns Up, Right, Down, Left in turn regardless of the board.
type cycler struct{ n int }

func (c *cycler) Name() string { return "cycler" }

func (c *cycler) ChooseDirection(context.Context, *board.Board) (board.Direction, error) {
	d := board.Directions[c.n%len(board.Directions)]
	c.n++
	return d, nil
}

func TestConsoleRepromptsAndStopsAtEOF(t *testing.T) {
	b := fromGrid(t, board.Grid{{2, 2, 0, 0}})
	var out bytes.Buffer
	human := agent.NewHuman(strings.NewReader("bogus\n1\n4\n"), &out)

	res, err := Console(context.Background(), b, human, &out, Options{})
	if err != nil {
		t.Fatalf("Console() failed: %v", err)
	}

	if res.Finished {
		t.Error("game should not be finished at end of input")
	}
	if res.Score != 4 || res.Moves != 1 {
		t.Errorf("result = %+v, want score 4 after 1 move", res)
	}

	text := out.String()
	for _, want := range []string{"Please enter 1, 2, 3 or 4.", "Nothing moves up", "Score: 4"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestConsolePlaysToGameOver(t *testing.T) {
	b, err := board.New(newRNG(5), board.DefaultSpawnPolicy())
	if err != nil {
		t.Fatalf("board.New() failed: %v", err)
	}
	var out bytes.Buffer

	res, err := Console(context.Background(), b, &cycler{}, &out, Options{})
	if err != nil {
		t.Fatalf("Console() failed: %v", err)
	}
	if !res.Finished || !b.IsGameOver() {
		t.Error("cycling through all directions should end the game")
	}
	if !strings.Contains(out.String(), "Game over! Final score:") {
		t.Error("final banner not printed")
	}
	if res.Agent != "cycler" {
		t.Errorf("Agent = %q, want cycler", res.Agent)
	}
}

func TestAutoplayFinishes(t *testing.T) {
	rng := newRNG(21)
	b, _ := board.New(rng, board.DefaultSpawnPolicy())

	res, err := Autoplay(context.Background(), b, agent.NewRandom(rng), Options{})
	if err != nil {
		t.Fatalf("Autoplay() failed: %v", err)
	}
	if !res.Finished || !b.IsGameOver() {
		t.Error("Autoplay() returned before game over")
	}
	if res.Moves == 0 || res.MaxTile < 4 || res.Score != b.Score() {
		t.Errorf("result = %+v", res)
	}
}

func TestAutoplayCancelled(t *testing.T) {
	rng := newRNG(2)
	b, _ := board.New(rng, board.DefaultSpawnPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Autoplay(ctx, b, agent.NewRandom(rng), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDifficultyChangesSpawns(t *testing.T) {
	diff := config.NewDifficultyManager(config.DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1,
		Progression:  config.ProgressionConfig{Type: "none"},
		Scaling:      config.ScalingConfig{Spawn4Min: 0, Spawn4Max: 1},
	})
	b := fromGrid(t, board.Grid{{2, 0, 0, 0}})

	changed, err := turn(b, board.Right, diff)
	if err != nil || !changed {
		t.Fatalf("turn() = %v, %v", changed, err)
	}

	fours := 0
	for _, row := range b.Render() {
		for _, v := range row {
			if v == 4 {
				fours++
			}
		}
	}
	if fours != 1 {
		t.Errorf("expected the spawned tile to be a 4:\n%s", b)
	}
}

func randomGame(rng *rand.Rand) (*board.Board, agent.Agent, error) {
	b, err := board.New(rng, board.DefaultSpawnPolicy())
	if err != nil {
		return nil, nil, err
	}
	return b, agent.NewRandom(rng), nil
}

func TestBatchIsDeterministic(t *testing.T) {
	run := func() []Result {
		res, err := Batch(context.Background(), 4, 100, 2, randomGame, Options{})
		if err != nil {
			t.Fatalf("Batch() failed: %v", err)
		}
		return res
	}

	first, second := run(), run()
	if len(first) != 4 {
		t.Fatalf("Batch() returned %d results, want 4", len(first))
	}
	for i := range first {
		if first[i].Seed != 100+int64(i) {
			t.Errorf("game %d seed = %d, want %d", i, first[i].Seed, 100+i)
		}
		if first[i].Score != second[i].Score || first[i].Moves != second[i].Moves {
			t.Errorf("game %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBatchStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(*rand.Rand) (*board.Board, agent.Agent, error) {
		return nil, nil, boom
	}

	if _, err := Batch(context.Background(), 3, 1, 0, failing, Options{}); !errors.Is(err, boom) {
		t.Errorf("Batch() error = %v, want boom", err)
	}
}

func TestFormatRows(t *testing.T) {
	got := FormatRows([board.Size][board.Size]int{{0, 2, 0, 2048}})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != board.Size {
		t.Fatalf("FormatRows() has %d lines, want %d", len(lines), board.Size)
	}
	if lines[0] != "    0     2     0  2048" {
		t.Errorf("first row = %q", lines[0])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Score: 100, MaxTile: 64},
		{Score: 300, MaxTile: 256},
	})

	if s.Games != 2 || s.BestScore != 300 || s.MeanScore != 200 {
		t.Errorf("summary = %+v", s)
	}
	if s.Reached[64] != 2 || s.Reached[128] != 1 || s.Reached[512] != 0 {
		t.Errorf("Reached = %v", s.Reached)
	}

	if empty := Summarize(nil); empty.MeanScore != 0 {
		t.Errorf("empty summary mean = %v", empty.MeanScore)
	}
}
