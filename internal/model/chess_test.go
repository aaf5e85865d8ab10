package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoryxin/battlechess/internal/dependencies/random"
)

func TestNewRandomBoardDistribution(t *testing.T) {
	rnd := random.New()

	// The distribution invariant must hold for every deal
	for i := 0; i < 20; i++ {
		board := NewRandomBoard(rnd)

		var perLevel [6]int
		perColor := map[Color]int{}
		cells := 0
		for x := 0; x < BoardSize; x++ {
			for y := 0; y < BoardSize; y++ {
				piece := board[x][y].Piece
				require.NotNil(t, piece, "cell (%d,%d) must be occupied", x, y)
				require.GreaterOrEqual(t, piece.Level, 0)
				require.LessOrEqual(t, piece.Level, 5)
				perLevel[piece.Level]++
				perColor[piece.Color]++
				cells++
			}
		}

		assert.Equal(t, BoardSize*BoardSize, cells)
		assert.Equal(t, PieceCounts, perLevel)
		assert.Equal(t, 18, perColor[ColorRed])
		assert.Equal(t, 18, perColor[ColorBlue])
	}
}

func TestNewRandomBoardColorsAlternateWithinLevels(t *testing.T) {
	// Each level band is dealt in consecutive draws alternating red/blue,
	// so every level splits evenly between the sides
	board := NewRandomBoard(random.New())

	perLevelColor := map[int]map[Color]int{}
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			p := board[x][y].Piece
			if perLevelColor[p.Level] == nil {
				perLevelColor[p.Level] = map[Color]int{}
			}
			perLevelColor[p.Level][p.Color]++
		}
	}

	for level, count := range PieceCounts {
		assert.Equal(t, count/2, perLevelColor[level][ColorRed], "level %d red", level)
		assert.Equal(t, count/2, perLevelColor[level][ColorBlue], "level %d blue", level)
	}
}

func TestBoardWireFormat(t *testing.T) {
	var board Board
	board[0][0] = Cell{Piece: &Piece{Color: ColorRed, Level: 3}}
	board[5][5] = Cell{Piece: &Piece{Color: ColorBlue, Level: 0}}

	data, err := json.Marshal(board)
	require.NoError(t, err)

	// Empty cells are the number 0, pieces are [color, level] arrays
	assert.Contains(t, string(data), `["red",3]`)
	assert.Contains(t, string(data), `["blue",0]`)
	assert.Contains(t, string(data), `0,0,0`)

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded)
}

func TestBoardJSONRoundTrip(t *testing.T) {
	board := NewRandomBoard(random.New())

	data, err := json.Marshal(board)
	require.NoError(t, err)

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded)
}

func TestCellUnmarshalRejectsBadColor(t *testing.T) {
	var cell Cell
	err := json.Unmarshal([]byte(`["green",2]`), &cell)
	assert.Error(t, err)
}

func TestColorOpponent(t *testing.T) {
	assert.Equal(t, ColorBlue, ColorRed.Opponent())
	assert.Equal(t, ColorRed, ColorBlue.Opponent())
}
