package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/game/events"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
	"github.com/mitchelldurbincs/abalone/internal/game/states"
)

// MetaMarblesEjected is the game-context metadata key counting marbles
// that left the board since the last setup.
const MetaMarblesEjected = "marbles_ejected"

// Engine owns one game. It serialises input, swaps in the State each
// transition returns and reports what happened on its event bus. Events are
// published after the engine lock is released, so handlers may call back in.
type Engine struct {
	mu sync.RWMutex
	gs State

	// transitions buffers the phase machine's events until e.mu is released
	transitions *eventQueue

	gameID        string
	logger        zerolog.Logger
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	turnProcessor *TurnProcessor
	legalMoves    *rules.LegalMoveCalculator
	render        RenderOptions
}

// NewEngine creates a game engine with the opening position set up
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// SetupBoard puts the opening position on the board, White to move, with
// scores, winner, selection and message cleared.
func (e *Engine) SetupBoard() error {
	e.mu.Lock()
	if err := e.stateMachine.Reset("New game requested"); err != nil {
		e.mu.Unlock()
		e.flushTransitions()
		return err
	}
	e.gs = NewState()
	if err := e.stateMachine.TransitionTo(states.PhaseRunning, "Board set up"); err != nil {
		e.mu.Unlock()
		e.flushTransitions()
		return err
	}
	gs := e.gs
	e.mu.Unlock()
	e.flushTransitions()

	e.logger.Info().
		Str("first_player", gs.Turn.Label()).
		Int("white_pieces", gs.Board.Count(core.White)).
		Int("black_pieces", gs.Board.Count(core.Black)).
		Msg("Board set up")

	e.eventBus.Publish(events.NewGameStartedEvent(
		e.gameID,
		gs.Turn,
		gs.Board.Count(core.White),
		gs.Board.Count(core.Black),
	))
	return nil
}

// PlayAgain throws the current game away and sets up a new one.
func (e *Engine) PlayAgain() error {
	e.mu.RLock()
	previousWinner := e.gs.Winner
	movesPlayed := e.gs.MoveCount
	e.mu.RUnlock()

	e.logger.Info().
		Str("previous_winner", previousWinner.Label()).
		Int("moves_played", movesPlayed).
		Msg("Play again requested")
	e.eventBus.Publish(events.NewGameResetEvent(e.gameID, previousWinner, movesPlayed))

	return e.SetupBoard()
}

// ToggleMarbleSelection applies a click on c to the selection of the player
// to move. Only the overflow case sets the advisory message.
func (e *Engine) ToggleMarbleSelection(c core.Coordinate) rules.ToggleOutcome {
	e.mu.Lock()
	e.noteLateInput("toggle")
	next, outcome := e.gs.ToggleSelection(c)
	e.gs = next
	e.mu.Unlock()

	e.logger.Debug().
		Str("player", next.Turn.Label()).
		Stringer("clicked", c).
		Str("outcome", outcome.String()).
		Stringer("selection", next.Selection).
		Msg("Selection toggled")

	switch outcome {
	case rules.ToggleIgnored, rules.ToggleOverflow:
		e.eventBus.Publish(events.NewSelectionRejectedEvent(
			e.gameID, next.Turn, next.MoveCount, c, outcome.String(), next.Message))
	default:
		e.eventBus.Publish(events.NewSelectionChangedEvent(
			e.gameID, next.Turn, next.MoveCount, c, outcome.String(), next.Selection.Coords()))
	}
	return outcome
}

// ClearSelection empties the selection
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	e.gs = e.gs.ClearSelection()
	e.mu.Unlock()
}

// ComputeValidMoveDirections lists the directions the selection may move in,
// in the order move arrows are drawn.
func (e *Engine) ComputeValidMoveDirections() []core.Coordinate {
	e.mu.RLock()
	gs := e.gs
	e.mu.RUnlock()

	dirs := gs.ValidMoveDirections()
	e.logger.Debug().
		Stringer("selection", gs.Selection).
		Int("directions", len(dirs)).
		Msg("Computed valid move directions")
	return dirs
}

// CalculateSingleMarbleMove resolves a step of the only selected marble to to
func (e *Engine) CalculateSingleMarbleMove(to core.Coordinate) []core.Relocation {
	return e.snapshot().SingleMarbleMove(to)
}

// CalculateInLineMove resolves a push of the selected line into to
func (e *Engine) CalculateInLineMove(to core.Coordinate) []core.Relocation {
	return e.snapshot().InLineMove(to)
}

// CalculateBroadsideMove resolves a sideways shift of the selection by dir
func (e *Engine) CalculateBroadsideMove(dir core.Coordinate) []core.Relocation {
	return e.snapshot().BroadsideMove(dir)
}

// MovesForCell resolves a click on a destination cell without touching the
// selection. ClickCell also clears the selection when nothing resolves.
func (e *Engine) MovesForCell(cell core.Coordinate) []core.Relocation {
	return e.snapshot().MovesForCell(cell)
}

// ClickCell handles a click on a board cell. With no selection it does
// nothing. A click that resolves to no move clears the selection; otherwise
// the relocations are returned for ApplyMoves.
func (e *Engine) ClickCell(cell core.Coordinate) []core.Relocation {
	e.mu.Lock()
	if e.gs.Selection.IsEmpty() {
		e.mu.Unlock()
		return nil
	}
	moves := e.gs.MovesForCell(cell)
	if len(moves) == 0 {
		e.gs = e.gs.ClearSelection()
	}
	e.mu.Unlock()

	if len(moves) == 0 {
		e.logger.Debug().Stringer("clicked", cell).Msg("Click resolved to no move, selection cleared")
	}
	return moves
}

// MovesForDirection resolves a click on a move arrow
func (e *Engine) MovesForDirection(dir core.Coordinate) []core.Relocation {
	return e.snapshot().MovesForDirection(dir)
}

// ApplyMoves commits a relocation list produced by one of the calculators.
func (e *Engine) ApplyMoves(moves []core.Relocation) TurnResult {
	e.mu.Lock()
	e.noteLateInput("apply")
	before := e.gs
	next, result := e.turnProcessor.ProcessTurn(before, moves)
	e.gs = next

	if result.Applied {
		gc := e.stateMachine.GetContext()
		gc.MovesPlayed = next.MoveCount
		if len(result.Ejected) > 0 {
			total, _ := gc.GetMetadata(MetaMarblesEjected)
			n, _ := total.(int)
			gc.SetMetadata(MetaMarblesEjected, n+len(result.Ejected))
		}
		if result.WinnerDecided {
			gc.Winner = next.Winner
			if err := e.stateMachine.TransitionTo(states.PhaseEnded, next.Winner.Label()+" reached the winning score"); err != nil {
				e.logger.Error().Err(err).Msg("Failed to transition to Ended state")
			}
		}
	}
	e.mu.Unlock()

	if !result.Applied {
		return result
	}

	e.eventBus.Publish(events.NewMoveAppliedEvent(
		e.gameID, result.Mover, next.MoveCount, result.Relocations, len(result.Ejected), next.Turn))

	scores := before.Scores
	for _, m := range result.Ejected {
		scorer := m.Occupant.Opponent()
		scores = scores.Add(scorer)
		e.eventBus.Publish(events.NewMarbleEjectedEvent(
			e.gameID, result.Mover, next.MoveCount, m.Occupant, m.From, scores.Of(scorer)))
	}

	if result.WinnerDecided {
		e.eventBus.Publish(events.NewPlayerWonEvent(
			e.gameID, next.Winner, next.MoveCount, next.Scores.White, next.Scores.Black))
	}
	e.flushTransitions()
	return result
}

func (e *Engine) flushTransitions() {
	for _, ev := range e.transitions.drain() {
		e.eventBus.Publish(ev)
	}
}

// eventQueue is an events.Publisher that holds events until drained.
type eventQueue struct {
	mu      sync.Mutex
	pending []events.Event
}

func (q *eventQueue) Publish(ev events.Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

func (q *eventQueue) drain() []events.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// noteLateInput logs input that arrives after the game was decided. The
// input is still processed. Callers hold e.mu.
func (e *Engine) noteLateInput(op string) {
	if phase := e.stateMachine.CurrentPhase(); !phase.CanReceiveActions() {
		e.logger.Debug().
			Str("phase", phase.String()).
			Str("op", op).
			Msg("Input received outside the running phase")
	}
}

// LegalMoves enumerates every move available to the player to move
func (e *Engine) LegalMoves() []rules.Move {
	gs := e.snapshot()
	return e.legalMoves.LegalMoves(gs.Board, gs.Turn)
}

// HasLegalMove reports whether the player to move can move at all
func (e *Engine) HasLegalMove() bool {
	gs := e.snapshot()
	return e.legalMoves.HasLegalMove(gs.Board, gs.Turn)
}

// Message returns the advisory message, if any
func (e *Engine) Message() string {
	return e.snapshot().Message
}

// ClearMessage clears the advisory message after it has been shown
func (e *Engine) ClearMessage() {
	e.mu.Lock()
	e.gs = e.gs.ClearMessage()
	e.mu.Unlock()
}

func (e *Engine) snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gs
}

// Public accessors
func (e *Engine) State() State                 { return e.snapshot() }
func (e *Engine) Turn() core.Occupant          { return e.snapshot().Turn }
func (e *Engine) Scores() rules.Scores         { return e.snapshot().Scores }
func (e *Engine) Winner() core.Occupant        { return e.snapshot().Winner }
func (e *Engine) Selection() core.Selection    { return e.snapshot().Selection }
func (e *Engine) MoveCount() int               { return e.snapshot().MoveCount }
func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) EventBus() *events.EventBus   { return e.eventBus }
func (e *Engine) Phase() states.GamePhase      { return e.stateMachine.CurrentPhase() }
func (e *Engine) IsGameOver() bool             { return e.snapshot().HasWinner() }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

// MarblesEjected counts marbles of either colour pushed off since setup
func (e *Engine) MarblesEjected() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total, _ := e.stateMachine.GetContext().GetMetadata(MetaMarblesEjected)
	n, _ := total.(int)
	return n
}

// WinnerLabel returns "White", "Black" or "" while undecided
func (e *Engine) WinnerLabel() string {
	return e.snapshot().Winner.Label()
}
