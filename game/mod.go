package game

import "errors"

// NoPlayer marks the absence of a player id: no winner yet, or a drawn game.
const NoPlayer = 0

// ErrInvalidMove is returned by State.Apply for a move that is not
// currently legal. The searcher only ever draws from LegalMoves, so this
// error must never originate inside a search.
var ErrInvalidMove = errors.New("invalid move")

// Move is one action a player can take. Implementations must be
// comparable so moves can key maps and statistics.
type Move interface {
	String() string
}

// State is the contract between the searcher and a rules module. A State
// is a board plus the player to move, with value semantics: Clone returns
// a fully independent copy and Apply mutates in place. The searcher never
// applies moves to the caller's state, only to its own clones.
type State interface {
	Clone() State
	// Player returns the id of the player to move.
	Player() int
	// LegalMoves returns the currently legal moves in a stable order.
	LegalMoves() []Move
	// Apply plays a move for the current player and advances the turn.
	// The state is unchanged if the move is illegal.
	Apply(Move) error
	// Winner returns the winning player id, or NoPlayer.
	Winner() int
	Full() bool
	// Terminal reports whether a winner exists or no legal moves remain.
	Terminal() bool
}
