package connectfour

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

var errKeyboardUnplugged = errors.New("keyboard unplugged")

type mockInput struct {
	mock.Mock
}

func (that *mockInput) ReadLine() (string, error) {
	args := that.Called()
	return args.String(0), args.Error(1)
}

// script - queues the given lines, one ReadLine call each.
func (that *mockInput) script(lines ...string) *mockInput {
	for _, line := range lines {
		that.On("ReadLine").Return(line, nil).Once()
	}

	return that
}

type fakeScreen struct {
	messages []string
	renders  int
}

func (that *fakeScreen) Say(message string) {
	that.messages = append(that.messages, message)
}

func (that *fakeScreen) Render(*entity.Board) {
	that.renders++
}

func newTestGame(t *testing.T, board *entity.Board, lines ...string) (*Game, *mockInput, *fakeScreen) {
	t.Helper()

	input := (&mockInput{}).script(lines...)
	screen := &fakeScreen{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	game := NewGame(logger, input, screen, board, entity.NewPlayer("Ann"), entity.NewPlayer("Bob"))
	game.assignColors()

	return game, input, screen
}

func occupied(board *entity.Board) int {
	count := 0
	for _, row := range board.Rows() {
		for _, slot := range row {
			if !slot.IsEmpty() {
				count++
			}
		}
	}

	return count
}

func TestNewGame(t *testing.T) {
	// Given/When: a game created without a board or players
	game := NewGame(slog.Default(), &mockInput{}, &fakeScreen{}, nil, nil, nil)

	// Then: defaults are used
	one, two := game.Players()
	require.NotNil(t, game.Board())
	assert.Equal(t, entity.DefaultPlayerOneName, one.Name)
	assert.Equal(t, entity.DefaultPlayerTwoName, two.Name)
	assert.Equal(t, entity.StatusOngoing, game.Outcome().Status)
}

func TestGame_ValidColumn(t *testing.T) {
	full := entity.NewBoard()
	for i := 0; i < entity.Rows; i++ {
		full.DropPiece(2, entity.Red)
	}
	game, _, _ := newTestGame(t, full)

	tests := []struct {
		input string
		valid bool
	}{
		{"0", true},
		{"6", true},
		{"3", true},
		{"2", false},
		{"7", false},
		{"9", false},
		{"11", false},
		{"-1", false},
		{"a", false},
		{"", false},
		{" 3", false},
		{"3 ", false},
		{"\t3", false},
		{" 3\n", false},
		{"3\r\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, game.ValidColumn(tt.input))
		})
	}
}

func TestGame_ParseColumn(t *testing.T) {
	full := entity.NewBoard()
	for i := 0; i < entity.Rows; i++ {
		full.DropPiece(0, entity.Yellow)
	}
	game, _, _ := newTestGame(t, full)

	t.Run("Strips the line ending", func(t *testing.T) {
		column, err := game.ParseColumn("4\n")

		require.NoError(t, err)
		assert.Equal(t, 4, column)
	})

	t.Run("Rejects padded input", func(t *testing.T) {
		_, err := game.ParseColumn(" 4")

		assert.ErrorIs(t, err, apperror.ErrInvalidColumn)
	})

	t.Run("Rejects a column that does not exist", func(t *testing.T) {
		_, err := game.ParseColumn("8")

		assert.ErrorIs(t, err, apperror.ErrInvalidColumn)
	})

	t.Run("Rejects a full column", func(t *testing.T) {
		_, err := game.ParseColumn("0")

		assert.ErrorIs(t, err, apperror.ErrColumnFull)
	})
}

func TestGame_PlayTurn(t *testing.T) {
	t.Run("Invalid input does not touch the board", func(t *testing.T) {
		// Given: a player who first types "11" and then "0"
		game, input, screen := newTestGame(t, nil, "11", "0")
		one, _ := game.Players()

		// When: the player takes a turn
		err := game.PlayTurn(one)

		// Then: exactly one piece is placed, in column 0
		require.NoError(t, err)
		assert.Equal(t, 1, occupied(game.Board()))
		assert.Equal(t, entity.Red, game.Board().Grid[entity.Rows-1][0].Color)
		assert.Equal(t, 1, screen.renders)
		assert.Contains(t, screen.messages, "That column is either full or does not exist. Please choose a different column (0 - 6):")
		input.AssertNumberOfCalls(t, "ReadLine", 2)
	})

	t.Run("Full column is asked again", func(t *testing.T) {
		board := entity.NewBoard()
		for i := 0; i < entity.Rows; i++ {
			board.DropPiece(5, entity.Yellow)
		}
		game, input, _ := newTestGame(t, board, "5", "4")
		one, _ := game.Players()

		err := game.PlayTurn(one)

		require.NoError(t, err)
		assert.Equal(t, entity.Red, board.Grid[entity.Rows-1][4].Color)
		input.AssertExpectations(t)
	})

	t.Run("Closed input ends the turn", func(t *testing.T) {
		game, input, _ := newTestGame(t, nil)
		input.On("ReadLine").Return("", io.EOF).Once()
		one, _ := game.Players()

		err := game.PlayTurn(one)

		require.ErrorIs(t, err, apperror.ErrInputClosed)
		assert.Equal(t, 0, occupied(game.Board()))
	})

	t.Run("Read errors are passed on", func(t *testing.T) {
		game, input, _ := newTestGame(t, nil)
		input.On("ReadLine").Return("", errKeyboardUnplugged).Once()
		_, two := game.Players()

		err := game.PlayTurn(two)

		require.ErrorIs(t, err, errKeyboardUnplugged)
	})

	t.Run("No turns after the game is over", func(t *testing.T) {
		board := entity.NewBoard()
		for i := 0; i < entity.WinLength; i++ {
			board.DropPiece(0, entity.Red)
		}
		game, input, _ := newTestGame(t, board)
		_, two := game.Players()

		err := game.PlayTurn(two)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		input.AssertNotCalled(t, "ReadLine")
	})
}

func TestGame_PlayRound(t *testing.T) {
	t.Run("Both players move", func(t *testing.T) {
		game, input, _ := newTestGame(t, nil, "3", "3")

		err := game.PlayRound(context.Background())

		require.NoError(t, err)
		assert.Equal(t, entity.Red, game.Board().Grid[5][3].Color)
		assert.Equal(t, entity.Yellow, game.Board().Grid[4][3].Color)
		input.AssertExpectations(t)
	})

	t.Run("Win by player one stops player two", func(t *testing.T) {
		// Given: red has three in the bottom row
		board := entity.NewBoard()
		for col := 0; col < 3; col++ {
			board.DropPiece(col, entity.Red)
		}
		game, input, _ := newTestGame(t, board, "3")

		// When: red completes the row
		err := game.PlayRound(context.Background())

		// Then: yellow is never asked for a column
		require.NoError(t, err)
		assert.True(t, board.Winner())
		input.AssertNumberOfCalls(t, "ReadLine", 1)
	})

	t.Run("Canceled context stops before the next turn", func(t *testing.T) {
		game, input, _ := newTestGame(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := game.PlayRound(ctx)

		require.ErrorIs(t, err, apperror.ErrGameInterrupted)
		require.ErrorIs(t, err, context.Canceled)
		input.AssertNotCalled(t, "ReadLine")
	})
}

func TestGame_Start(t *testing.T) {
	t.Run("Player one wins with a column", func(t *testing.T) {
		// Given: red keeps playing column 0 and yellow column 1
		game, input, screen := newTestGame(t, nil, "0", "1", "0", "1", "0", "1", "0")

		// When: the game is played to the end
		outcome, err := game.Start(context.Background())

		// Then: Ann wins with red after seven moves
		require.NoError(t, err)
		assert.Equal(t, &entity.Outcome{
			Status:       entity.StatusWon,
			Winner:       "Ann",
			WinningColor: entity.Red,
			Players: []*entity.Player{
				{Name: "Ann", Color: entity.Red},
				{Name: "Bob", Color: entity.Yellow},
			},
			Moves: 7,
		}, outcome)
		assert.Equal(t, "Ann will be red and Bob will be yellow.\n", screen.messages[0])
		assert.Equal(t, "Congrats Ann! You won!", screen.messages[len(screen.messages)-1])
		input.AssertExpectations(t)
	})

	t.Run("Player two wins with a row", func(t *testing.T) {
		game, _, screen := newTestGame(t, nil, "0", "1", "0", "2", "6", "3", "6", "4")

		outcome, err := game.Start(context.Background())

		require.NoError(t, err)
		assert.True(t, outcome.IsWon())
		assert.Equal(t, "Bob", outcome.Winner)
		assert.Equal(t, entity.Yellow, outcome.WinningColor)
		assert.Equal(t, "Congrats Bob! You won!", screen.messages[len(screen.messages)-1])
	})

	t.Run("Last piece fills the board without a winner", func(t *testing.T) {
		// Given: a board one piece short of a stalemate
		board := entity.NewBoard()
		for row := 0; row < entity.Rows; row++ {
			for col := 0; col < entity.Columns; col++ {
				color := entity.Yellow
				if (col < 3 || col == 6) == (row%2 == 1) {
					color = entity.Red
				}
				board.Grid[row][col] = entity.Slot{Color: color}
			}
		}
		board.Grid[0][3] = entity.Slot{}
		game, _, screen := newTestGame(t, board, "3")

		// When: the game is started
		outcome, err := game.Start(context.Background())

		// Then: it ends in a stalemate
		require.NoError(t, err)
		assert.True(t, outcome.IsStalemate())
		assert.Empty(t, outcome.Winner)
		assert.Equal(t, "Looks like the game ended in a stalemate this time!", screen.messages[len(screen.messages)-1])
	})

	t.Run("Closed input interrupts the game", func(t *testing.T) {
		game, input, _ := newTestGame(t, nil, "0")
		input.On("ReadLine").Return("", io.EOF).Once()

		outcome, err := game.Start(context.Background())

		require.ErrorIs(t, err, apperror.ErrInputClosed)
		assert.Equal(t, entity.StatusOngoing, outcome.Status)
		assert.Equal(t, 1, outcome.Moves)
	})
}
