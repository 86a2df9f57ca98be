package game

// Weights tunes the heuristic terms of Evaluate.
type Weights struct {
	Piece    int `yaml:"piece"`
	Mobility int `yaml:"mobility"`
	Mill     int `yaml:"mill"`
	Position int `yaml:"position"`
}

var DefaultWeights = Weights{
	Piece:    100,
	Mobility: 4,
	Mill:     12,
	Position: 3,
}

// positionWeights favours junctions (four neighbors) over edges and corners.
var positionWeights = func() [NUM_POINTS]int {
	var weights [NUM_POINTS]int
	for p := range weights {
		weights[p] = Degree(Point(p))
	}
	return weights
}()

// EvaluateDefault scores s with DefaultWeights.
func EvaluateDefault(s State) int {
	return DefaultWeights.Evaluate(s)
}

// Evaluate scores a non-terminal state from the side to move's perspective:
// material, mobility, stones in mills and point quality, each taken as the
// difference between the side to move and its opponent.
func (w Weights) Evaluate(s State) int {
	current := s.Turn
	opponent := current.Opponent()

	pieceScore := s.Stones(current) - s.Stones(opponent)
	mobilityScore := Mobility(&s, current) - Mobility(&s, opponent)
	millScore, positionScore := s.calculateBoardScores(current)

	return w.Piece*pieceScore +
		w.Mobility*mobilityScore +
		w.Mill*millScore +
		w.Position*positionScore
}

// calculateBoardScores tallies stones in mills and point weights, own minus
// opponent, in one pass over the board.
func (s *State) calculateBoardScores(current Color) (millScore, positionScore int) {
	for i, occupant := range s.Board {
		if occupant == None {
			continue
		}
		sign := 1
		if occupant != current {
			sign = -1
		}
		p := Point(i)
		positionScore += sign * positionWeights[p]
		if IsInMill(&s.Board, p, occupant) {
			millScore += sign
		}
	}
	return millScore, positionScore
}

// Evaluator returns w as an Evaluate function.
func (w Weights) Evaluator() Evaluate {
	return w.Evaluate
}
