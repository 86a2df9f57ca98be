package game

import "fmt"

// Move places a stone from hand (From == NoPoint) or slides/flies a stone
// from From to To, then optionally removes the opponent stone at Remove.
// Moves are comparable and safe to use as map keys.
type Move struct {
	From   Point
	To     Point
	Remove Point
}

// DefaultMove is emitted when no legal move exists at all.
var DefaultMove = Move{From: NoPoint, To: A1, Remove: NoPoint}

func Place(to Point) Move {
	return Move{From: NoPoint, To: to, Remove: NoPoint}
}

func Slide(from, to Point) Move {
	return Move{From: from, To: to, Remove: NoPoint}
}

// WithRemoval returns a copy of m that captures the stone at p.
func (m Move) WithRemoval(p Point) Move {
	m.Remove = p
	return m
}

func (m Move) IsPlacement() bool {
	return m.From == NoPoint
}

func (m Move) IsCapture() bool {
	return m.Remove != NoPoint
}

func (m Move) String() string {
	from := "hand"
	if !m.IsPlacement() {
		from = m.From.String()
	}
	if m.IsCapture() {
		return fmt.Sprintf("%s-%s x%s", from, m.To, m.Remove)
	}
	return fmt.Sprintf("%s-%s", from, m.To)
}
