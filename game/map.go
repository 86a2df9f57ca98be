package game

import "fmt"

// Point is one of the 24 legal locations on the board.
type Point uint8

const NUM_POINTS = 24

// NoPoint marks an absent point: the source of a move placed from hand, or
// the removal of a move that captures nothing.
const NoPoint Point = 0xFF

const (
	A1 Point = iota
	A4
	A7
	B2
	B4
	B6
	C3
	C4
	C5
	D1
	D2
	D3
	D5
	D6
	D7
	E3
	E4
	E5
	F2
	F4
	F6
	G1
	G4
	G7
)

var pointLabels = [NUM_POINTS]string{
	"a1", "a4", "a7", "b2", "b4", "b6", "c3", "c4", "c5", "d1", "d2", "d3",
	"d5", "d6", "d7", "e3", "e4", "e5", "f2", "f4", "f6", "g1", "g4", "g7",
}

var pointIDMap = func() map[string]Point {
	m := make(map[string]Point, NUM_POINTS)
	for i, label := range pointLabels {
		m[label] = Point(i)
	}
	return m
}()

// Points lists every legal point in index order.
var Points = func() []Point {
	points := make([]Point, NUM_POINTS)
	for i := range points {
		points[i] = Point(i)
	}
	return points
}()

func (p Point) Valid() bool {
	return p < NUM_POINTS
}

func (p Point) String() string {
	if !p.Valid() {
		return "-"
	}
	return pointLabels[p]
}

// ParsePoint converts a label such as "d5" into a Point.
func ParsePoint(label string) (Point, error) {
	p, ok := pointIDMap[label]
	if !ok {
		return NoPoint, fmt.Errorf("unknown point %q", label)
	}
	return p, nil
}

// Adjacency data: the points a stone may slide to from each point.
var adjacencyData = [NUM_POINTS][]Point{
	A1: {A4, D1},
	A4: {A1, A7, B4},
	A7: {A4, D7},
	B2: {B4, D2},
	B4: {B2, B6, A4, C4},
	B6: {B4, D6},
	C3: {C4, D3},
	C4: {C3, C5, B4},
	C5: {C4, D5},
	D1: {A1, G1, D2},
	D2: {D1, B2, D3, F2},
	D3: {D2, C3, E3},
	D5: {C5, D6, E5},
	D6: {B6, D5, D7, F6},
	D7: {A7, D6, G7},
	E3: {D3, E4},
	E4: {E3, E5, F4},
	E5: {D5, E4},
	F2: {D2, F4},
	F4: {E4, F2, F6, G4},
	F6: {D6, F4},
	G1: {D1, G4},
	G4: {G1, F4, G7},
	G7: {D7, G4},
}

// Mill is a line of three points.
type Mill [3]Point

// IsFormedBy reports whether all three points of the line hold c stones.
func (m Mill) IsFormedBy(board *Board, c Color) bool {
	return board[m[0]] == c && board[m[1]] == c && board[m[2]] == c
}

// Mills lists the 16 lines of the board.
var Mills = [16]Mill{
	// Columns
	{A1, A4, A7},
	{B2, B4, B6},
	{C3, C4, C5},
	{D1, D2, D3},
	{D5, D6, D7},
	{E3, E4, E5},
	{F2, F4, F6},
	{G1, G4, G7},
	// Rows
	{A1, D1, G1},
	{B2, D2, F2},
	{C3, D3, E3},
	{A4, B4, C4},
	{E4, F4, G4},
	{C5, D5, E5},
	{B6, D6, F6},
	{A7, D7, G7},
}

// millsByPoint holds the (exactly two) lines through each point.
var millsByPoint = func() [NUM_POINTS][]Mill {
	var byPoint [NUM_POINTS][]Mill
	for _, mill := range Mills {
		for _, p := range mill {
			byPoint[p] = append(byPoint[p], mill)
		}
	}
	return byPoint
}()

// Neighbors returns the points adjacent to p. The slice must not be modified.
func Neighbors(p Point) []Point {
	return adjacencyData[p]
}

// MillsOf returns the lines that contain p.
func MillsOf(p Point) []Mill {
	return millsByPoint[p]
}

// Degree is the number of neighbors of p: 4 for junctions, 2 for corners.
func Degree(p Point) int {
	return len(adjacencyData[p])
}

// AreAdjacent checks if a stone may slide from p to q.
func AreAdjacent(p, q Point) bool {
	for _, n := range adjacencyData[p] {
		if n == q {
			return true
		}
	}
	return false
}
