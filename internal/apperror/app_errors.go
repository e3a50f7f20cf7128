package apperror

import "errors"

var (
	ErrColumnFull      = errors.New("column is full")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrGameFinished    = errors.New("game is already finished")
	ErrInputClosed     = errors.New("input is closed")
	ErrGameInterrupted = errors.New("game was interrupted")
)
