package board

import (
	"errors"
	"math/rand"
	"testing"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mustFromGrid(t *testing.T, g Grid) *Board {
	t.Helper()
	b, err := FromGrid(g, newRNG(1), DefaultSpawnPolicy())
	if err != nil {
		t.Fatalf("FromGrid() failed: %v", err)
	}
	return b
}

func countTiles(g Grid) int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewBoard(t *testing.T) {
	b, err := New(newRNG(42), DefaultSpawnPolicy())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if n := countTiles(b.Grid()); n != 2 {
		t.Errorf("new board has %d tiles, want 2", n)
	}
	if b.Score() != 0 {
		t.Errorf("new board score = %d, want 0", b.Score())
	}
	if b.IsGameOver() {
		t.Error("new board should not be game over")
	}
	for _, row := range b.Render() {
		for _, v := range row {
			if v != 0 && v != 2 && v != 4 {
				t.Errorf("unexpected initial tile %d", v)
			}
		}
	}
}

func TestNewBoardRejectsBadPolicy(t *testing.T) {
	if _, err := New(newRNG(1), SpawnPolicy{}); err == nil {
		t.Error("New() with an empty policy should fail")
	}
}

func TestDeterministicSpawn(t *testing.T) {
	b1, _ := New(newRNG(12345), DefaultSpawnPolicy())
	b2, _ := New(newRNG(12345), DefaultSpawnPolicy())

	if b1.Grid() != b2.Grid() {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", b1.Grid(), b2.Grid())
	}
}

func TestFromGridRejectsNonPowerOfTwo(t *testing.T) {
	_, err := FromGrid(Grid{{3}}, newRNG(1), DefaultSpawnPolicy())
	if err == nil {
		t.Error("FromGrid() should reject a tile of 3")
	}
}

func TestApplyMove(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{0, 2, 2, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	changed, err := b.ApplyMove(Left)
	if err != nil {
		t.Fatalf("ApplyMove(Left) failed: %v", err)
	}
	if !changed {
		t.Fatal("ApplyMove(Left) should change the board")
	}
	if row := b.Render()[0]; row != [4]int{4, 4, 0, 0} {
		t.Errorf("row after Left = %v, want [4 4 0 0]", row)
	}
	if b.Score() != 4 {
		t.Errorf("score = %d, want 4", b.Score())
	}
	if b.Moves() != 1 {
		t.Errorf("moves = %d, want 1", b.Moves())
	}
	if n := countTiles(b.Grid()); n != 2 {
		t.Errorf("ApplyMove should not spawn, got %d tiles", n)
	}
}

func TestApplyMoveUnproductiveIsNoop(t *testing.T) {
	g := Grid{
		{4, 2, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	b := mustFromGrid(t, g)

	changed, err := b.ApplyMove(Left)
	if err != nil {
		t.Fatalf("ApplyMove(Left) failed: %v", err)
	}
	if changed {
		t.Error("ApplyMove(Left) on a left-aligned board should report no change")
	}
	if b.Grid() != g {
		t.Errorf("grid changed on an unproductive move:\n%v", b.Grid())
	}
	if b.Score() != 0 || b.Moves() != 0 {
		t.Errorf("score/moves changed on an unproductive move: %d/%d", b.Score(), b.Moves())
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	b := mustFromGrid(t, Grid{{2, 2}})

	for _, d := range []Direction{0, 5, -1} {
		_, err := b.ApplyMove(d)
		if !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("ApplyMove(%d) error = %v, want ErrInvalidDirection", d, err)
		}
	}
}

func TestScoreEqualsMergedValues(t *testing.T) {
	rng := newRNG(7)
	b, _ := New(rng, DefaultSpawnPolicy())

	for step := 0; step < 500 && !b.IsGameOver(); step++ {
		moves := b.ValidMoves()
		d := moves[rng.Intn(len(moves))]

		before := b.Grid()
		_, want, _ := before.Slide(d)
		prev := b.Score()

		changed, err := b.ApplyMove(d)
		if err != nil || !changed {
			t.Fatalf("valid move %v: changed=%v err=%v", d, changed, err)
		}
		if got := b.Score() - prev; got != want {
			t.Fatalf("score gained %d, want %d", got, want)
		}
		if got := b.Grid().Sum(); got != before.Sum() {
			t.Fatalf("tile sum changed from %d to %d by a move", before.Sum(), got)
		}
		if _, err := b.SpawnTile(); err != nil {
			t.Fatalf("SpawnTile() after a productive move failed: %v", err)
		}
	}
}

func TestSpawnTile(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	before := len(b.EmptyCells())
	cell, err := b.SpawnTile()
	if err != nil {
		t.Fatalf("SpawnTile() failed: %v", err)
	}
	if got := len(b.EmptyCells()); got != before-1 {
		t.Errorf("empty cells after spawn = %d, want %d", got, before-1)
	}
	if v := b.Grid()[cell.Row][cell.Col]; v != 2 && v != 4 {
		t.Errorf("spawned value = %d, want 2 or 4", v)
	}
}

func TestSpawnTileFullBoard(t *testing.T) {
	g := Grid{
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
	}
	b := mustFromGrid(t, g)

	_, err := b.SpawnTile()
	if !errors.Is(err, ErrIllegalState) {
		t.Errorf("SpawnTile() on a full board error = %v, want ErrIllegalState", err)
	}
	if b.Grid() != g {
		t.Error("failed SpawnTile() should not modify the grid")
	}
}

func TestGameOverAfterSpawn(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 0},
	})
	if b.IsGameOver() {
		t.Fatal("board with an empty cell should not be game over")
	}

	// Force the last spawn to be a 2, which leaves a checkerboard.
	b.policy = ClassicSpawnPolicy()
	if _, err := b.SpawnTile(); err != nil {
		t.Fatalf("SpawnTile() failed: %v", err)
	}
	if !b.IsGameOver() {
		t.Error("checkerboard after spawn should be game over")
	}
}

func TestCheckGameState(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if b.CheckGameState() {
		t.Error("full board with a pair should not be game over")
	}
}

func TestCanMoveDoesNotMutate(t *testing.T) {
	g := Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	b := mustFromGrid(t, g)

	if !b.CanMove(Left) {
		t.Error("CanMove(Left) should be true")
	}
	if b.CanMove(Up) {
		t.Error("CanMove(Up) should be false")
	}
	if b.Grid() != g || b.Score() != 0 {
		t.Error("CanMove should not modify the board")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := mustFromGrid(t, Grid{{2, 2, 0, 0}})
	c := b.Copy()

	if _, err := c.ApplyMove(Left); err != nil {
		t.Fatalf("ApplyMove on copy failed: %v", err)
	}
	if b.Grid()[0] != [4]int{2, 2, 0, 0} {
		t.Errorf("original changed after moving the copy: %v", b.Grid()[0])
	}
	if b.Score() != 0 {
		t.Errorf("original score changed: %d", b.Score())
	}
}

func TestSuccessors(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := b.Grid()

	var dirs []Direction
	for d, next := range b.Successors() {
		dirs = append(dirs, d)
		want, _, _ := before.Slide(d)
		if next.Grid() != want {
			t.Errorf("successor for %v =\n%v\nwant\n%v", d, next.Grid(), want)
		}
	}

	if len(dirs) != 2 || dirs[0] != Right || dirs[1] != Down {
		t.Errorf("successor directions = %v, want [Right Down]", dirs)
	}
	if b.Grid() != before {
		t.Error("Successors should not modify the board")
	}

	// The sequence is restartable.
	n := 0
	for range b.Successors() {
		n++
	}
	if n != 2 {
		t.Errorf("second pass yielded %d successors, want 2", n)
	}
}

func TestSuccessorsTerminal(t *testing.T) {
	b := mustFromGrid(t, Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	for d := range b.Successors() {
		t.Errorf("terminal board yielded successor %v", d)
	}
}

func TestSetPolicy(t *testing.T) {
	b := mustFromGrid(t, Grid{{2}})

	if err := b.SetPolicy(SpawnPolicy{}); err == nil {
		t.Error("SetPolicy() accepted an empty policy")
	}
	if err := b.SetPolicy(NewSpawnPolicy(1)); err != nil {
		t.Fatalf("SetPolicy() failed: %v", err)
	}
	for range 5 {
		cell, err := b.SpawnTile()
		if err != nil {
			t.Fatalf("SpawnTile() failed: %v", err)
		}
		if v := b.Grid()[cell.Row][cell.Col]; v != 4 {
			t.Errorf("spawned %d with an all-4 policy", v)
		}
	}
}
