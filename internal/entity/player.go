package entity

const (
	DefaultPlayerOneName = "Player one"
	DefaultPlayerTwoName = "Player two"
)

type Player struct {
	Name  string `json:"name"`
	Color Color  `json:"color,omitempty"`
}

func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

func (that *Player) HasColor(color Color) bool {
	return color != NoColor && that.Color == color
}
