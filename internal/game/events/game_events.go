package events

import (
	"github.com/mitchelldurbincs/abalone/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted       = "game.started"
	TypeGameReset         = "game.reset"
	TypeSelectionChanged  = "selection.changed"
	TypeSelectionRejected = "selection.rejected"
	TypeMoveApplied       = "move.applied"
	TypeMarbleEjected     = "marble.ejected"
	TypePlayerWon         = "player.won"
	TypeStateTransition   = "state.transition"
)

// GameStartedEvent is published when the board is set up for a new game
type GameStartedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	FirstPlayer string
	WhitePieces int
	BlackPieces int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, firstPlayer core.Occupant, whitePieces, blackPieces int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		Metadata:    EventMetadata{Player: firstPlayer.Label()},
		FirstPlayer: firstPlayer.Label(),
		WhitePieces: whitePieces,
		BlackPieces: blackPieces,
	}
}

// GameResetEvent is published when a finished or running game is thrown away
type GameResetEvent struct {
	BaseEvent
	Metadata       EventMetadata
	PreviousWinner string
	MovesPlayed    int
}

// NewGameResetEvent creates a new GameResetEvent
func NewGameResetEvent(gameID string, previousWinner core.Occupant, movesPlayed int) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent:      newBase(TypeGameReset, gameID),
		Metadata:       EventMetadata{Move: movesPlayed},
		PreviousWinner: previousWinner.Label(),
		MovesPlayed:    movesPlayed,
	}
}

// SelectionChangedEvent is published when a toggle adds, removes or clears marbles
type SelectionChangedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Clicked   core.Coordinate
	Outcome   string
	Selection []core.Coordinate
}

// NewSelectionChangedEvent creates a new SelectionChangedEvent
func NewSelectionChangedEvent(gameID string, turn core.Occupant, move int, clicked core.Coordinate, outcome string, selection []core.Coordinate) *SelectionChangedEvent {
	return &SelectionChangedEvent{
		BaseEvent: newBase(TypeSelectionChanged, gameID),
		Metadata:  EventMetadata{Player: turn.Label(), Move: move},
		Clicked:   clicked,
		Outcome:   outcome,
		Selection: selection,
	}
}

// SelectionRejectedEvent is published when a toggle leaves the selection unchanged
type SelectionRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Clicked  core.Coordinate
	Reason   string
	Message  string
}

// NewSelectionRejectedEvent creates a new SelectionRejectedEvent
func NewSelectionRejectedEvent(gameID string, turn core.Occupant, move int, clicked core.Coordinate, reason, message string) *SelectionRejectedEvent {
	return &SelectionRejectedEvent{
		BaseEvent: newBase(TypeSelectionRejected, gameID),
		Metadata:  EventMetadata{Player: turn.Label(), Move: move},
		Clicked:   clicked,
		Reason:    reason,
		Message:   message,
	}
}

// MoveAppliedEvent is published after a list of relocations has been applied
type MoveAppliedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Relocations []core.Relocation
	Ejected     int
	NextTurn    string
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(gameID string, mover core.Occupant, move int, relocations []core.Relocation, ejected int, nextTurn core.Occupant) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent:   newBase(TypeMoveApplied, gameID),
		Metadata:    EventMetadata{Player: mover.Label(), Move: move},
		Relocations: relocations,
		Ejected:     ejected,
		NextTurn:    nextTurn.Label(),
	}
}

// MarbleEjectedEvent is published for each marble that leaves the board
type MarbleEjectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Marble   string
	From     core.Coordinate
	ScoredBy string
	Score    int
}

// NewMarbleEjectedEvent creates a new MarbleEjectedEvent
func NewMarbleEjectedEvent(gameID string, mover core.Occupant, move int, marble core.Occupant, from core.Coordinate, score int) *MarbleEjectedEvent {
	return &MarbleEjectedEvent{
		BaseEvent: newBase(TypeMarbleEjected, gameID),
		Metadata:  EventMetadata{Player: mover.Label(), Move: move},
		Marble:    marble.Label(),
		From:      from,
		ScoredBy:  marble.Opponent().Label(),
		Score:     score,
	}
}

// PlayerWonEvent is published once, when a player first reaches the winning score
type PlayerWonEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Winner     string
	WhiteScore int
	BlackScore int
}

// NewPlayerWonEvent creates a new PlayerWonEvent
func NewPlayerWonEvent(gameID string, winner core.Occupant, move, whiteScore, blackScore int) *PlayerWonEvent {
	return &PlayerWonEvent{
		BaseEvent:  newBase(TypePlayerWon, gameID),
		Metadata:   EventMetadata{Player: winner.Label(), Move: move},
		Winner:     winner.Label(),
		WhiteScore: whiteScore,
		BlackScore: blackScore,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
