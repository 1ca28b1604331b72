package board

// Direction is a bit flag of one of the four slide directions.
type Direction uint8

// Directions.
const (
	North Direction = 1 << iota
	East
	South
	West
)

// Directions lists all slide directions.
var Directions = [4]Direction{North, East, South, West}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "invalid"
	}
}
