package entity

const (
	StatusOngoing   = "ongoing"
	StatusWon       = "won"
	StatusStalemate = "stalemate"
)

// Outcome - the result of a game, computed from the board on demand.
type Outcome struct {
	ID           string    `json:"id,omitempty"`
	Status       string    `json:"status"`
	Winner       string    `json:"winner,omitempty"`
	WinningColor Color     `json:"winning_color,omitempty"`
	Players      []*Player `json:"players,omitempty"`
	Moves        int       `json:"moves"`
}

func (that *Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusStalemate
}

func (that *Outcome) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Outcome) IsStalemate() bool {
	return that.Status == StatusStalemate
}

// Score - number of games won by a player.
type Score struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}
