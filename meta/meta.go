// meta/meta.go
package meta

import "time"

// TIME_BUDGET is the wall-clock time allowed for choosing one move.
const TIME_BUDGET = 1 * time.Second

// MAX_DEPTH caps iterative deepening.
const MAX_DEPTH = 32

// MAX_TURNS ends a self-play game in a draw.
const MAX_TURNS = 300

// REPETITIONS of one position end a self-play game in a draw.
const REPETITIONS = 3

// GAMES defines the number of self-play games per match up.
const GAMES = 10

// PARALLEL_GAMES defines how many self-play games run at once.
const PARALLEL_GAMES = 4

// OPENING_PLIES are played at random at the start of each self-play game.
const OPENING_PLIES = 2

const ADVISOR_MODEL = "gpt-4o-mini"

const ADVISOR_RETRIES = 2

const ADVISOR_TIMEOUT = 10 * time.Second
