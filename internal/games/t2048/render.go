package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 5 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 4
)

// tileColors maps tile values to colors; larger tiles use the last entry.
var tileColors = []struct {
	value int
	color core.Color
}{
	{2, core.ColorWhite},
	{4, core.ColorBrightWhite},
	{8, core.ColorYellow},
	{16, core.ColorOrange},
	{32, core.ColorRed},
	{64, core.ColorBrightRed},
	{128, core.ColorBrightYellow},
	{256, core.ColorGreen},
	{512, core.ColorBrightGreen},
	{1024, core.ColorCyan},
	{2048, core.ColorBrightCyan},
	{4096, core.ColorMagenta},
}

// TileColor returns the color used for a tile value.
func TileColor(v int) core.Color {
	for _, tc := range tileColors {
		if v <= tc.value {
			return tc.color
		}
	}
	return core.ColorBrightMagenta
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW := board.Size*cellWidth + 1  // +1 for right border
	boardH := board.Size*cellHeight + 1 // +1 for bottom border

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score, max tile and autopilot status.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.board.Score()))

	maxStr := fmt.Sprintf("Max: %d", g.board.MaxTile())
	dst.DrawText(max(boardX, boardX+boardW-len(maxStr)), 1, maxStr)

	dst.DrawTextColor(boardX, 2, fmt.Sprintf("Moves: %d", g.board.Moves()), core.ColorGray)

	if g.autopilot {
		status := "Autopilot: " + g.agent.Name()
		dst.DrawTextColor(boardX+(boardW-len(status))/2, 3, status, core.ColorBrightCyan)
	}
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	// Draw grid borders
	for y := range board.Size + 1 {
		for x := range board.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, junction(x, y), core.ColorGray)

			// Draw horizontal line to the right
			if x < board.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}

			// Draw vertical line down
			if y < board.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	// Draw tiles
	grid := g.board.Render()
	for y := range board.Size {
		for x := range board.Size {
			val := grid[y][x]
			if val == 0 {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			dst.DrawTextColor(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// junction returns the box-drawing rune for grid line crossing (x, y).
func junction(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == board.Size:
		return '┐'
	case y == board.Size && x == 0:
		return '└'
	case y == board.Size && x == board.Size:
		return '┘'
	case y == 0:
		return '┬'
	case y == board.Size:
		return '┴'
	case x == 0:
		return '├'
	case x == board.Size:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays over the board area.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	centerX, centerY := area.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.board.IsGameOver() {
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | Enter: Autopilot | P: Pause | R: Restart | Q: Quit"
}
