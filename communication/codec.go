package communication

import (
	"errors"
	"fmt"
	"morris/game"
	"strings"
)

var ErrMalformed = errors.New("malformed move")

const (
	BlueHand   = "h1"
	OrangeHand = "h2"
	NoRemoval  = "r0"
)

// FormatMove renders a move as "<source> <target> <removal>". Stones placed
// from hand use the hand marker of mover.
func FormatMove(move game.Move, mover game.Color) string {
	source := move.From.String()
	if move.IsPlacement() {
		source = BlueHand
		if mover == game.Orange {
			source = OrangeHand
		}
	}
	removal := NoRemoval
	if move.IsCapture() {
		removal = move.Remove.String()
	}
	return fmt.Sprintf("%s %s %s", source, move.To, removal)
}

// ParseMove reads a line of exactly three whitespace-separated tokens. Either
// hand marker means a placement; whether it is legal is left to the caller.
func ParseMove(line string) (game.Move, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return game.Move{}, fmt.Errorf("%w: want 3 tokens, got %d in %q", ErrMalformed, len(tokens), line)
	}

	from := game.NoPoint
	if tokens[0] != BlueHand && tokens[0] != OrangeHand {
		p, err := game.ParsePoint(tokens[0])
		if err != nil {
			return game.Move{}, fmt.Errorf("%w: source: %v", ErrMalformed, err)
		}
		from = p
	}

	to, err := game.ParsePoint(tokens[1])
	if err != nil {
		return game.Move{}, fmt.Errorf("%w: target: %v", ErrMalformed, err)
	}

	remove := game.NoPoint
	if tokens[2] != NoRemoval {
		p, err := game.ParsePoint(tokens[2])
		if err != nil {
			return game.Move{}, fmt.Errorf("%w: removal: %v", ErrMalformed, err)
		}
		remove = p
	}

	return game.Move{From: from, To: to, Remove: remove}, nil
}
