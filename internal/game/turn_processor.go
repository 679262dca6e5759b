package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
)

// TurnResult describes one call to ApplyMoves.
type TurnResult struct {
	Mover       core.Occupant
	Applied     bool
	Relocations []core.Relocation
	// Ejected lists the relocations whose destination is off the board.
	Ejected []core.Relocation
	// WinnerDecided is true only for the call that first set a winner.
	WinnerDecided bool
}

// ApplyMoves commits a relocation list. Every source cell is emptied first,
// then each marble lands on its destination or, if that is off the board,
// scores a point for the opponent of its colour. The turn always passes to
// the other side, also after a win. An empty list changes nothing.
func (s State) ApplyMoves(moves []core.Relocation, wc *rules.WinConditionChecker) (State, TurnResult) {
	result := TurnResult{Mover: s.Turn}
	if len(moves) == 0 {
		return s, result
	}

	board := s.Board.Clone()
	for _, m := range moves {
		board.Set(m.From, core.Empty)
	}

	scores := s.Scores
	winner := s.Winner
	for _, m := range moves {
		if board.Set(m.To, m.Occupant) {
			continue
		}
		scores = scores.Add(m.Occupant.Opponent())
		winner = wc.CheckWinner(winner, scores)
		result.Ejected = append(result.Ejected, m)
	}

	result.Applied = true
	result.Relocations = moves
	result.WinnerDecided = s.Winner == core.Empty && winner != core.Empty

	s.Board = board
	s.Scores = scores
	s.Winner = winner
	s.Turn = s.Turn.Opponent()
	s.Selection = core.Selection{}
	s.MoveCount++
	return s, result
}

// TurnProcessor applies moves to a state and logs the outcome
type TurnProcessor struct {
	winCondition *rules.WinConditionChecker
	logger       zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(winCondition *rules.WinConditionChecker, logger zerolog.Logger) *TurnProcessor {
	return &TurnProcessor{
		winCondition: winCondition,
		logger:       logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// ProcessTurn applies moves to s.
func (tp *TurnProcessor) ProcessTurn(s State, moves []core.Relocation) (State, TurnResult) {
	if len(moves) == 0 {
		tp.logger.Warn().
			Str("turn", s.Turn.Label()).
			Int("move", s.MoveCount).
			Msg("Empty move list, nothing applied")
		return s.ApplyMoves(moves, tp.winCondition)
	}

	next, result := s.ApplyMoves(moves, tp.winCondition)

	turnLogger := tp.logger.With().
		Str("player", result.Mover.Label()).
		Int("move", next.MoveCount).
		Logger()

	turnLogger.Info().
		Int("relocations", len(moves)).
		Int("ejected", len(result.Ejected)).
		Int("white_score", next.Scores.White).
		Int("black_score", next.Scores.Black).
		Str("next_turn", next.Turn.Label()).
		Msg("Move applied")

	for _, m := range result.Ejected {
		turnLogger.Info().
			Str("marble", m.Occupant.Label()).
			Stringer("from", m.From).
			Msg("Marble pushed off the board")
	}

	if result.WinnerDecided {
		turnLogger.Info().Str("winner", next.Winner.Label()).Msg("Game won")
	}
	return next, result
}
