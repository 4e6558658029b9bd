package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Prompt is written before every read.
const Prompt = "Move (1=Up 2=Right 3=Down 4=Left): "

// Human reads one direction per line from a terminal.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHuman creates a human agent reading from r and prompting on w.
func NewHuman(r io.Reader, w io.Writer) *Human {
	return &Human{in: bufio.NewScanner(r), out: w}
}

// Name returns "human".
func (h *Human) Name() string {
	return "human"
}

// ChooseDirection prompts and reads a single line.
// Unparseable input yields board.ErrInvalidDirection so the driver can ask
// again; end of input yields io.EOF. The read itself cannot be interrupted,
// ctx is checked before prompting.
func (h *Human) ChooseDirection(ctx context.Context, b *board.Board) (board.Direction, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkPlayable(b); err != nil {
		return 0, err
	}

	fmt.Fprint(h.out, Prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return 0, fmt.Errorf("agent: read move: %w", err)
		}
		return 0, io.EOF
	}

	return board.ParseDirection(h.in.Text())
}
