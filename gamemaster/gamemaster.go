package gamemaster

import (
	"errors"
	"fmt"
	"morris/game"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// Reason explains how a game ended.
type Reason int

const (
	Ongoing    Reason = iota
	Reduced           // A side has no stones in hand and two on the board
	Blocked           // The side to move has no legal move
	Repetition        // Draw
	TurnLimit         // Draw
)

func (r Reason) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Reduced:
		return "reduced"
	case Blocked:
		return "blocked"
	case Repetition:
		return "repetition"
	case TurnLimit:
		return "turn limit"
	default:
		return "unknown"
	}
}

// Update records one applied move.
type Update struct {
	Move   game.Move
	Player game.Color
	Hash   game.StateHash // Of the resulting state
}

type Option func(r *Referee)

// WithMaxTurns declares a draw after n moves. Zero means no limit.
func WithMaxTurns(n int) Option {
	return func(r *Referee) {
		if n >= 0 {
			r.maxTurns = n
		}
	}
}

// WithRepetitionLimit declares a draw once a position occurs n times. Zero
// disables the rule.
func WithRepetitionLimit(n int) Option {
	return func(r *Referee) {
		if n >= 0 {
			r.repetitions = n
		}
	}
}

// WithPosition starts from state instead of the initial position.
func WithPosition(state game.State) Option {
	return func(r *Referee) {
		r.state = state
	}
}

// Referee owns the authoritative game state. It only applies legal moves and
// decides when and how the game ends.
type Referee struct {
	state       game.State
	history     []Update
	seen        map[game.StateHash]int
	maxTurns    int
	repetitions int
	reason      Reason
	winner      game.Color
}

func NewReferee(options ...Option) *Referee {
	r := &Referee{ // Default values
		state:       game.NewState(),
		seen:        make(map[game.StateHash]int),
		repetitions: 3,
	}
	for _, option := range options {
		option(r)
	}
	r.seen[r.state.Hash()]++
	r.judge()
	return r
}

// State returns a copy of the current position.
func (r *Referee) State() game.State {
	return r.state
}

// Play validates move against the legal moves of the side to move and applies it.
func (r *Referee) Play(move game.Move) error {
	if r.IsOver() {
		return ErrGameOver
	}
	if !game.IsLegal(r.state, move) {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, move, r.state.Turn)
	}

	mover := r.state.Turn
	r.state = r.state.Play(move)
	hash := r.state.Hash()
	r.history = append(r.history, Update{Move: move, Player: mover, Hash: hash})
	r.seen[hash]++
	r.judge()
	return nil
}

// ForceTurn hands the move to c without playing a move, as when an opponent
// line had to be ignored.
func (r *Referee) ForceTurn(c game.Color) {
	if r.state.Turn == c {
		return
	}
	r.state = r.state.WithTurn(c)
	r.judge()
}

func (r *Referee) IsOver() bool {
	return r.reason != Ongoing
}

// Winner returns the winning side, or game.None while the game goes on or
// after a draw.
func (r *Referee) Winner() game.Color {
	return r.winner
}

func (r *Referee) Reason() Reason {
	return r.reason
}

// History returns the applied moves in order.
func (r *Referee) History() []Update {
	return append([]Update(nil), r.history...)
}

func (r *Referee) Turns() int {
	return len(r.history)
}

func (r *Referee) judge() {
	r.reason, r.winner = Ongoing, game.None
	switch {
	case game.IsReduced(r.state, game.Blue) || game.IsReduced(r.state, game.Orange):
		r.reason, r.winner = Reduced, game.Winner(r.state)
	case !game.HasLegalMove(r.state):
		r.reason, r.winner = Blocked, game.Winner(r.state)
	case r.repetitions > 0 && r.seen[r.state.Hash()] >= r.repetitions:
		r.reason = Repetition
	case r.maxTurns > 0 && len(r.history) >= r.maxTurns:
		r.reason = TurnLimit
	}
}
