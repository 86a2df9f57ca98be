package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Board holds the occupant of every point.
type Board [NUM_POINTS]Color

// State is a full game position. It is a plain value: assigning or passing a
// State copies it, and Play never mutates its receiver.
type State struct {
	Board Board  // Occupant per point
	Turn  Color  // Side to move
	hand  [2]int // Stones in reserve per side
}

// NewState returns the initial position: empty board, full hands, Blue to move.
func NewState() State {
	return State{
		Turn: Blue,
		hand: [2]int{STONES_PER_SIDE, STONES_PER_SIDE},
	}
}

// NewPosition builds an arbitrary position, checking the stone budget of each side.
func NewPosition(turn Color, blueHand, orangeHand int, stones map[Point]Color) (State, error) {
	if turn != Blue && turn != Orange {
		return State{}, fmt.Errorf("side to move must be blue or orange, got %v", turn)
	}
	s := State{Turn: turn, hand: [2]int{blueHand, orangeHand}}
	for p, c := range stones {
		if !p.Valid() {
			return State{}, fmt.Errorf("invalid point %d", p)
		}
		s.Board[p] = c
	}
	for _, c := range []Color{Blue, Orange} {
		if s.Hand(c) < 0 {
			return State{}, fmt.Errorf("%v hand is negative", c)
		}
		if s.Stones(c) > STONES_PER_SIDE {
			return State{}, fmt.Errorf("%v has %d stones, more than %d", c, s.Stones(c), STONES_PER_SIDE)
		}
	}
	return s, nil
}

// Hand returns the number of stones c still has in reserve.
func (s State) Hand(c Color) int {
	return s.hand[c.index()]
}

// OnBoard counts the stones c has on the board.
func (s State) OnBoard(c Color) int {
	return countStones(&s.Board, c)
}

// Stones counts all stones c has left, on the board and in hand.
func (s State) Stones(c Color) int {
	return s.OnBoard(c) + s.Hand(c)
}

// WithTurn returns a copy of s with c to move.
func (s State) WithTurn(c Color) State {
	if c != Blue && c != Orange {
		panic(fmt.Sprintf("color %v cannot move", c))
	}
	s.Turn = c
	return s
}

// Play applies m for the side to move and returns the resulting state.
// It panics when m does not fit the position (a stone missing, a target
// occupied); legality beyond that is checked by LegalMoves.
func (s State) Play(m Move) State {
	mover := s.Turn
	opponent := mover.Opponent()

	if m.IsPlacement() {
		if s.hand[mover.index()] == 0 {
			panic(fmt.Sprintf("play %v: %v has no stones in hand", m, mover))
		}
		s.hand[mover.index()]--
	} else {
		if !m.From.Valid() || s.Board[m.From] != mover {
			panic(fmt.Sprintf("play %v: no %v stone at source", m, mover))
		}
		s.Board[m.From] = None
	}

	if !m.To.Valid() || s.Board[m.To] != None {
		panic(fmt.Sprintf("play %v: target is not empty", m))
	}
	s.Board[m.To] = mover

	if m.IsCapture() {
		if !m.Remove.Valid() || s.Board[m.Remove] != opponent {
			panic(fmt.Sprintf("play %v: no %v stone to remove", m, opponent))
		}
		s.Board[m.Remove] = None
	}

	s.Turn = opponent
	return s
}

func (s State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, uint8(s.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(s.hand[0]))
	binary.Write(hasher, binary.LittleEndian, int64(s.hand[1]))
	for _, c := range s.Board {
		binary.Write(hasher, binary.LittleEndian, uint8(c))
	}

	return StateHash(hasher.Sum64())
}

// String renders the board as a 7x7 grid with g7 in the top-right corner.
func (s State) String() string {
	var sb strings.Builder
	for row := 7; row >= 1; row-- {
		for col := 'a'; col <= 'g'; col++ {
			p, err := ParsePoint(fmt.Sprintf("%c%d", col, row))
			switch {
			case err != nil:
				sb.WriteString(" ")
			case s.Board[p] == Blue:
				sb.WriteString("B")
			case s.Board[p] == Orange:
				sb.WriteString("O")
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "hand blue=%d orange=%d, %v to move\n", s.Hand(Blue), s.Hand(Orange), s.Turn)
	return sb.String()
}

func countStones(board *Board, c Color) int {
	n := 0
	for _, occupant := range board {
		if occupant == c {
			n++
		}
	}
	return n
}
