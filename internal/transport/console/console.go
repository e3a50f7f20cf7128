package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

const (
	redSymbol    = " ♈ "
	yellowSymbol = " ♌ "
	emptySymbol  = " ⚫ "
)

// Console - reads player input line by line and writes messages and the board as text.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadLine - returns the next line without its line ending, io.EOF once input is exhausted.
func (that *Console) ReadLine() (string, error) {
	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read line: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimRight(that.scanner.Text(), "\r"), nil
}

func (that *Console) Say(message string) {
	fmt.Fprintln(that.out, message)
}

func (that *Console) Render(board *entity.Board) {
	fmt.Fprintln(that.out, Show(board))
}

// AskName - prompts for a player name, an empty answer keeps the fallback.
func (that *Console) AskName(label, fallback string) (string, error) {
	that.Say(fmt.Sprintf("%s, please enter your name:", label))

	name, err := that.ReadLine()
	if err != nil {
		return "", err
	}

	if name = strings.TrimSpace(name); name == "" {
		return fallback, nil
	}

	return name, nil
}

// Show - the board as text, one line per row from the top.
func Show(board *entity.Board) string {
	var sb strings.Builder

	for _, row := range board.Rows() {
		for _, slot := range row {
			sb.WriteString(symbol(slot))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func symbol(slot entity.Slot) string {
	switch slot.Color {
	case entity.Red:
		return redSymbol
	case entity.Yellow:
		return yellowSymbol
	default:
		return emptySymbol
	}
}
