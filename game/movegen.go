package game

// LegalMoves returns all legal moves for the side to move. A move that closes
// a mill always carries a removal; there is one move per removable stone.
func (s State) LegalMoves() []Move {
	moves := []Move{}
	generateMoves(&s, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasLegalMove reports whether the side to move can play at all.
func HasLegalMove(s State) bool {
	found := false
	generateMoves(&s, func(Move) bool {
		found = true
		return false
	})
	return found
}

// IsLegal checks m against the moves available to the side to move.
func IsLegal(s State, m Move) bool {
	legal := false
	generateMoves(&s, func(candidate Move) bool {
		legal = candidate == m
		return !legal
	})
	return legal
}

// generateMoves feeds every legal move to yield until yield returns false.
// Stones are tentatively moved on a private copy of the board and put back
// before the next candidate, so s is never observably changed.
func generateMoves(s *State, yield func(Move) bool) {
	mover := s.Turn
	opponent := mover.Opponent()
	board := s.Board

	// Capturing never changes which opponent stones are in mills, so the
	// removal set is the same for every candidate.
	var removable []Point
	removableReady := false
	expand := func(m Move) bool {
		if !IsInMill(&board, m.To, mover) {
			return yield(m)
		}
		if !removableReady {
			removable = Removable(&board, opponent)
			removableReady = true
		}
		for _, r := range removable {
			if !yield(m.WithRemoval(r)) {
				return false
			}
		}
		return true
	}

	if s.Hand(mover) > 0 {
		for i := range board {
			to := Point(i)
			if board[to] != None {
				continue
			}
			board[to] = mover
			more := expand(Place(to))
			board[to] = None
			if !more {
				return
			}
		}
		return
	}

	flying := countStones(&board, mover) == 3
	for i := range board {
		from := Point(i)
		if board[from] != mover {
			continue
		}
		targets := adjacencyData[from]
		if flying {
			targets = Points
		}
		for _, to := range targets {
			if board[to] != None {
				continue
			}
			board[from] = None
			board[to] = mover
			more := expand(Slide(from, to))
			board[to] = None
			board[from] = mover
			if !more {
				return
			}
		}
	}
}

// Mobility counts the destinations c could reach if it were to move, without
// expanding removals. It is a cheap stand-in for the number of legal moves.
func Mobility(s *State, c Color) int {
	empty := 0
	for _, occupant := range s.Board {
		if occupant == None {
			empty++
		}
	}
	if s.Hand(c) > 0 {
		return empty
	}
	stones := 0
	reach := 0
	for i, occupant := range s.Board {
		if occupant != c {
			continue
		}
		stones++
		for _, n := range adjacencyData[i] {
			if s.Board[n] == None {
				reach++
			}
		}
	}
	if stones == 3 {
		return stones * empty
	}
	return reach
}
