package searcher

import "connectfour/game"

// ImmediateTacticalMove detects one-ply tactics without building a
// tree: a move that wins immediately for the mover, or failing that,
// the block that removes the opponent's only immediately winning reply.
// It returns nil when no tactic applies. Usable standalone for
// fast-path tactical correctness regardless of any iteration budget.
func ImmediateTacticalMove(state game.State) game.Move {
	if state.Terminal() {
		return nil
	}

	if wins := immediateWins(state); len(wins) > 0 {
		return wins[0]
	}

	threats := standingThreats(state)
	if len(threats) != 1 {
		// No threat, or two and more: no single block helps.
		return nil
	}
	block := threats[0]

	// Occupying the threatened column removes the reply, unless the
	// mover's own piece props up a fresh win on the cell above.
	after := state.Clone()
	if err := after.Apply(block); err != nil {
		return nil
	}
	if len(immediateWins(after)) > 0 {
		return nil
	}
	return block
}

// immediateWins returns the legal moves that end the game in the
// mover's favor, in legal-move order.
func immediateWins(state game.State) []game.Move {
	mover := state.Player()
	var wins []game.Move
	for _, move := range state.LegalMoves() {
		probe := state.Clone()
		if err := probe.Apply(move); err != nil {
			continue
		}
		if probe.Winner() == mover {
			wins = append(wins, move)
		}
	}
	return wins
}

// standingThreats finds the opponent replies that win for them no
// matter which move the mover picks: the one-ply forced losses the
// mover must answer now.
func standingThreats(state game.State) []game.Move {
	moves := state.LegalMoves()
	if len(moves) < 2 {
		return nil
	}

	counts := make(map[game.Move]int)
	for _, move := range moves {
		after := state.Clone()
		if err := after.Apply(move); err != nil {
			continue
		}
		if after.Terminal() {
			continue
		}
		for _, reply := range immediateWins(after) {
			counts[reply]++
		}
	}

	// A standing threat wins after every mover move except playing the
	// threat itself (and possibly even then, if stacking re-creates it).
	var threats []game.Move
	for _, move := range moves {
		if counts[move] >= len(moves)-1 {
			threats = append(threats, move)
		}
	}
	return threats
}
