package connectfour

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
	"github.com/rocketscienceinc/connectfour/internal/entity"
)

// InputProvider - source of raw column choices, one line per call.
type InputProvider interface {
	ReadLine() (string, error)
}

// Screen - shows messages and the board to the players.
type Screen interface {
	Say(message string)
	Render(board *entity.Board)
}

type Game struct {
	logger *slog.Logger

	board     *entity.Board
	playerOne *entity.Player
	playerTwo *entity.Player

	input  InputProvider
	screen Screen

	moves int
}

// NewGame - creates a game. A nil board or player is replaced with a fresh default one.
func NewGame(logger *slog.Logger, input InputProvider, screen Screen, board *entity.Board, playerOne, playerTwo *entity.Player) *Game {
	if board == nil {
		board = entity.NewBoard()
	}

	if playerOne == nil {
		playerOne = entity.NewPlayer(entity.DefaultPlayerOneName)
	}

	if playerTwo == nil {
		playerTwo = entity.NewPlayer(entity.DefaultPlayerTwoName)
	}

	return &Game{
		logger:    logger.With("component", "connectfour"),
		board:     board,
		playerOne: playerOne,
		playerTwo: playerTwo,
		input:     input,
		screen:    screen,
	}
}

func (that *Game) Board() *entity.Board {
	return that.board
}

func (that *Game) Players() (*entity.Player, *entity.Player) {
	return that.playerOne, that.playerTwo
}

// Start - plays rounds until the board is over and reports the outcome.
func (that *Game) Start(ctx context.Context) (*entity.Outcome, error) {
	that.assignColors()
	that.screen.Say(that.startMessage())

	for !that.board.GameOver() {
		if err := that.PlayRound(ctx); err != nil {
			return that.Outcome(), err
		}
	}

	outcome := that.Outcome()
	that.screen.Say(gameoverMessage(outcome))

	that.logger.Info("game over", "status", outcome.Status, "winner", outcome.Winner, "moves", outcome.Moves)

	return outcome, nil
}

// PlayRound - player one moves, then player two. The board is checked before each
// turn, so a win by player one ends the round.
func (that *Game) PlayRound(ctx context.Context) error {
	for _, player := range []*entity.Player{that.playerOne, that.playerTwo} {
		if that.board.GameOver() {
			break
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", apperror.ErrGameInterrupted, err)
		}

		if err := that.PlayTurn(player); err != nil {
			return err
		}
	}

	return nil
}

// PlayTurn - asks the player for a valid column and drops their piece into it.
func (that *Game) PlayTurn(player *entity.Player) error {
	if that.board.GameOver() {
		return apperror.ErrGameFinished
	}

	column, err := that.NextColumn(player)
	if err != nil {
		return fmt.Errorf("failed to get column for %s: %w", player.Name, err)
	}

	_, row := that.board.DropPiece(column, player.Color)
	that.moves++

	that.logger.Debug("piece dropped", "player", player.Name, "color", player.Color.String(), "column", column, "row", row)

	that.screen.Say("\nHere's what the board looks like now:")
	that.screen.Render(that.board)

	return nil
}

// NextColumn - reads input until it names a column that can take a piece.
// Invalid input never reaches the board.
func (that *Game) NextColumn(player *entity.Player) (int, error) {
	that.screen.Say(fmt.Sprintf("%s, please enter a column to drop a piece in (0 - %d):", player.Name, entity.Columns-1))

	for {
		line, err := that.input.ReadLine()
		if errors.Is(err, io.EOF) {
			return -1, apperror.ErrInputClosed
		}

		if err != nil {
			return -1, fmt.Errorf("failed to read column: %w", err)
		}

		column, err := that.ParseColumn(line)
		if err == nil {
			return column, nil
		}

		that.logger.Debug("column rejected", "player", player.Name, "input", line, "error", err)
		that.screen.Say(fmt.Sprintf("That column is either full or does not exist. Please choose a different column (0 - %d):", entity.Columns-1))
	}
}

// ValidColumn - true when the input is a single digit naming a column that is not full.
// Only a trailing line ending is ignored, any other whitespace makes the input invalid.
func (that *Game) ValidColumn(input string) bool {
	_, err := that.ParseColumn(input)
	return err == nil
}

func (that *Game) ParseColumn(input string) (int, error) {
	input = strings.TrimSuffix(strings.TrimSuffix(input, "\n"), "\r")

	if len(input) != 1 || input[0] < '0' || input[0] > '9' {
		return -1, fmt.Errorf("%w: %q", apperror.ErrInvalidColumn, input)
	}

	column := int(input[0] - '0')
	if !columnExists(column) {
		return -1, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	if that.board.IsColumnFull(column) {
		return -1, fmt.Errorf("%w: %d", apperror.ErrColumnFull, column)
	}

	return column, nil
}

// Outcome - the current status of the game derived from the board.
func (that *Game) Outcome() *entity.Outcome {
	outcome := &entity.Outcome{
		Status:  entity.StatusOngoing,
		Players: []*entity.Player{that.playerOne, that.playerTwo},
		Moves:   that.moves,
	}

	switch color := that.board.WinningColor(); {
	case color != entity.NoColor:
		outcome.Status = entity.StatusWon
		outcome.WinningColor = color
		if winner := that.playerByColor(color); winner != nil {
			outcome.Winner = winner.Name
		}
	case that.board.Stalemate():
		outcome.Status = entity.StatusStalemate
	}

	return outcome
}

func (that *Game) assignColors() {
	that.playerOne.Color = entity.Red
	that.playerTwo.Color = entity.Yellow
}

func (that *Game) playerByColor(color entity.Color) *entity.Player {
	for _, player := range []*entity.Player{that.playerOne, that.playerTwo} {
		if player.HasColor(color) {
			return player
		}
	}

	return nil
}

func (that *Game) startMessage() string {
	return fmt.Sprintf("%s will be %s and %s will be %s.\n",
		that.playerOne.Name, that.playerOne.Color, that.playerTwo.Name, that.playerTwo.Color)
}

func gameoverMessage(outcome *entity.Outcome) string {
	if outcome.IsWon() {
		return fmt.Sprintf("Congrats %s! You won!", outcome.Winner)
	}

	return "Looks like the game ended in a stalemate this time!"
}

func columnExists(n int) bool {
	return n >= 0 && n < entity.Columns
}
