package entities

import "fmt"

// Direction is the price movement since the previous tick.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionUp
	DirectionDown
)

const (
	wireUp   = "moneyUp"
	wireDown = "moneyDown"
)

// ParseDirection maps the yon field. Anything but moneyUp/moneyDown is flat.
func ParseDirection(yon string) Direction {
	switch yon {
	case wireUp:
		return DirectionUp
	case wireDown:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

func (d Direction) String() string {
	if !d.valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return [...]string{"flat", "up", "down"}[d]
}

// Arrow is the glyph the console and web displays use for the direction.
func (d Direction) Arrow() string {
	if !d.valid() {
		return "?"
	}
	return [...]string{"→", "↗", "↘"}[d]
}

func (d Direction) valid() bool {
	return d >= DirectionFlat && d <= DirectionDown
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "flat", "":
		*d = DirectionFlat
	case "up":
		*d = DirectionUp
	case "down":
		*d = DirectionDown
	default:
		return fmt.Errorf("invalid direction %q", text)
	}
	return nil
}
