package entity

import "fmt"

// Color - color of a piece. NoColor marks an empty slot.
type Color int

const (
	NoColor Color = iota
	Red
	Yellow
)

const (
	colorRed    = "red"
	colorYellow = "yellow"
)

// String - the lowercase color name, empty for NoColor.
func (that Color) String() string {
	switch that {
	case Red:
		return colorRed
	case Yellow:
		return colorYellow
	default:
		return ""
	}
}

// MarshalText - stores a color by its name, so saved results stay readable.
func (that Color) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case colorRed:
		*that = Red
	case colorYellow:
		*that = Yellow
	case "":
		*that = NoColor
	default:
		return fmt.Errorf("unknown color %q", text)
	}

	return nil
}

// Slot - a single cell of the board. The zero value is an empty slot.
type Slot struct {
	Color Color `json:"color,omitempty"`
}

// IsEmpty - true when no piece occupies the slot.
func (that Slot) IsEmpty() bool {
	return that.Color == NoColor
}
