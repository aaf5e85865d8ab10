package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/memoryxin/battlechess/internal/dependencies/random"
)

// BoardSize is the grid dimension of the battle chess board
const BoardSize = 6

// Color identifies a side
type Color string

// The two sides. Red always moves first.
const (
	ColorRed  Color = "red"
	ColorBlue Color = "blue"
)

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// PieceCounts is the number of pieces per level on a fresh board,
// indexed by level. Both sides together hold 36 pieces, one per cell.
var PieceCounts = [6]int{2, 2, 4, 4, 8, 16}

// Piece is a face-down stack piece. On the wire it is encoded the way the
// desktop client expects it: a two-element array ["red", 3].
type Piece struct {
	Color Color
	Level int
}

// MarshalJSON encodes the piece as [color, level]
func (p Piece) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Color, p.Level})
}

// UnmarshalJSON decodes the [color, level] wire form
func (p *Piece) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.Color); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &p.Level); err != nil {
		return err
	}
	if p.Color != ColorRed && p.Color != ColorBlue {
		return fmt.Errorf("invalid piece color %q", p.Color)
	}
	return nil
}

// Cell is one board square. Empty cells are encoded as the number 0 on the
// wire, occupied cells as the piece array.
type Cell struct {
	Piece *Piece
}

// MarshalJSON encodes an empty cell as 0 and an occupied cell as its piece
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Piece == nil {
		return []byte("0"), nil
	}
	return json.Marshal(c.Piece)
}

// UnmarshalJSON decodes 0 as empty and anything else as a piece
func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("0")) {
		c.Piece = nil
		return nil
	}
	var piece Piece
	if err := json.Unmarshal(data, &piece); err != nil {
		return err
	}
	c.Piece = &piece
	return nil
}

// Board is the shared 6x6 battle chess layout
type Board [BoardSize][BoardSize]Cell

// NewRandomBoard deals a fresh board: levels are dealt in ascending order
// with PieceCounts pieces per level, positions are drawn uniformly from the
// remaining cells, and draws alternate red/blue starting with red, so each
// side gets exactly half of every level band's random placements.
func NewRandomBoard(rnd random.Random) Board {
	open := make([][2]int, 0, BoardSize*BoardSize)
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			open = append(open, [2]int{x, y})
		}
	}

	var board Board
	remaining := PieceCounts
	level := 0
	for i := 0; i < BoardSize*BoardSize; i++ {
		pick := rnd.Intn(len(open))
		pos := open[pick]
		open = append(open[:pick], open[pick+1:]...)

		color := ColorRed
		if i%2 == 1 {
			color = ColorBlue
		}
		board[pos[0]][pos[1]] = Cell{Piece: &Piece{Color: color, Level: level}}

		remaining[level]--
		if remaining[level] <= 0 && level < len(remaining)-1 {
			level++
		}
	}
	return board
}
