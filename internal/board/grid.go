package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// Grid is the 4x4 tile matrix. 0 marks an empty cell.
// Grid is a value type: assigning it copies every cell.
type Grid [Size][Size]int

// Cell addresses a single grid position.
type Cell struct {
	Row, Col int
}

// line returns the coordinates of line idx for a move in dir, ordered from
// the cell on the target edge outward.
func line(dir Direction, idx int) [Size]Cell {
	var cells [Size]Cell
	for i := range Size {
		switch dir {
		case Left:
			cells[i] = Cell{idx, i}
		case Right:
			cells[i] = Cell{idx, Size - 1 - i}
		case Up:
			cells[i] = Cell{i, idx}
		case Down:
			cells[i] = Cell{Size - 1 - i, idx}
		}
	}
	return cells
}

// slideLine slides a line toward index 0 and merges equal neighbours.
// Tiles are taken from the edge outward; each one walks toward the edge
// through empty cells and merges into an equal tile unless that tile was
// itself produced by a merge in this pass. Returns the merged values' sum.
func slideLine(l *[Size]int) int {
	var merged [Size]bool
	gained := 0

	for i := 1; i < Size; i++ {
		v := l[i]
		if v == 0 {
			continue
		}

		for k := i - 1; k >= 0; k-- {
			if l[k] == 0 {
				l[k] = v
				l[k+1] = 0
				continue
			}
			if l[k] == v && !merged[k] {
				l[k] = 2 * v
				l[k+1] = 0
				merged[k] = true
				gained += 2 * v
			}
			break
		}
	}

	return gained
}

// Slide returns the grid after a move in dir, the score gained from merges,
// and whether any tile moved. The receiver is not modified.
func (g Grid) Slide(dir Direction) (Grid, int, bool) {
	if !dir.Valid() {
		return g, 0, false
	}

	out := g
	total := 0
	for idx := range Size {
		cells := line(dir, idx)

		var l [Size]int
		for i, c := range cells {
			l[i] = out[c.Row][c.Col]
		}
		total += slideLine(&l)
		for i, c := range cells {
			out[c.Row][c.Col] = l[i]
		}
	}

	return out, total, out != g
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{r, c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// ValidMoves returns the directions that would change the grid,
// in canonical order.
func (g Grid) ValidMoves() []Direction {
	moves := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if _, _, changed := g.Slide(d); changed {
			moves = append(moves, d)
		}
	}
	return moves
}

// Terminal reports whether the grid is full and no direction changes it.
func (g Grid) Terminal() bool {
	if g.HasEmptyCell() {
		return false
	}
	return len(g.ValidMoves()) == 0
}

// MaxTile returns the maximum tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// String formats the grid as four right-aligned rows, "." for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if g[r][c] != 0 {
				cell = strconv.Itoa(g[r][c])
			}
			fmt.Fprintf(&sb, "%*s", width, cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// isPowerOfTwo reports whether v is a power of two >= 2.
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
