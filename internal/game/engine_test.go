package game

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/abalone/internal/game/core"
	"github.com/mitchelldurbincs/abalone/internal/game/events"
	"github.com/mitchelldurbincs/abalone/internal/game/rules"
	"github.com/mitchelldurbincs/abalone/internal/game/states"
	"github.com/mitchelldurbincs/abalone/internal/testutil"
)

var c = testutil.C

// eventRecorder keeps the type of every event it sees
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) ID() string                 { return "recorder" }
func (r *eventRecorder) InterestedIn(_ string) bool { return true }
func (r *eventRecorder) HandleEvent(ev events.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}
func (r *eventRecorder) reset() { r.mu.Lock(); r.events = nil; r.mu.Unlock() }
func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type()
	}
	return out
}

func newTestEngine(t *testing.T) (*Engine, *eventRecorder) {
	t.Helper()
	bus := events.NewEventBusWithLogger(testutil.NopLogger())
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	e, err := NewEngine(context.Background(), GameConfig{
		GameID:   "test-game",
		Logger:   testutil.NopLogger(),
		EventBus: bus,
		Render:   &RenderOptions{},
	})
	require.NoError(t, err)
	return e, rec
}

// loadPosition replaces the board, side to move and scores of a running game
func loadPosition(t *testing.T, e *Engine, pieces testutil.Pieces, turn core.Occupant, scores rules.Scores) {
	t.Helper()
	b := testutil.CreateTestBoard(t, pieces)
	e.mu.Lock()
	e.gs.Board = b
	e.gs.Turn = turn
	e.gs.Scores = scores
	e.gs.Selection = core.Selection{}
	e.mu.Unlock()
}

func selectAll(t *testing.T, e *Engine, coords ...core.Coordinate) {
	t.Helper()
	for _, coord := range coords {
		require.Equal(t, rules.ToggleAdded, e.ToggleMarbleSelection(coord), "selecting %s", coord)
	}
}

func TestNewEngine(t *testing.T) {
	e, rec := newTestEngine(t)

	assert.Equal(t, "test-game", e.GameID())
	assert.Equal(t, core.White, e.Turn())
	assert.Equal(t, 0, e.MoveCount())
	assert.Equal(t, rules.Scores{}, e.Scores())
	assert.Equal(t, core.Empty, e.Winner())
	assert.Equal(t, "", e.WinnerLabel())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.True(t, e.State().Board.Equal(core.NewBoard()))

	history := e.History()
	require.NotEmpty(t, history)
	assert.Equal(t, states.PhaseRunning, history[len(history)-1].To)

	assert.Equal(t, []string{events.TypeStateTransition, events.TypeGameStarted}, rec.types())
}

func TestNewEngine_GeneratesGameID(t *testing.T) {
	e, err := NewEngine(context.Background(), GameConfig{Logger: testutil.NopLogger(), Render: &RenderOptions{}})
	require.NoError(t, err)
	assert.NotEmpty(t, e.GameID())
	assert.NotNil(t, e.EventBus())
}

func TestNewEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, err := NewEngine(ctx, GameConfig{Logger: testutil.NopLogger(), Render: &RenderOptions{}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, e)
}

func TestEngine_SingleMarbleMove(t *testing.T) {
	e, rec := newTestEngine(t)
	rec.reset()

	assert.Equal(t, rules.ToggleAdded, e.ToggleMarbleSelection(c(0, -2)))
	assert.Contains(t, e.ComputeValidMoveDirections(), c(0, 1))

	moves := e.CalculateSingleMarbleMove(c(0, -1))
	require.Equal(t, []core.Relocation{{From: c(0, -2), To: c(0, -1), Occupant: core.White}}, moves)

	result := e.ApplyMoves(moves)
	assert.True(t, result.Applied)
	assert.Equal(t, core.White, result.Mover)
	assert.Empty(t, result.Ejected)
	assert.False(t, result.WinnerDecided)

	gs := e.State()
	assert.Equal(t, core.White, gs.Board.At(c(0, -1)))
	assert.Equal(t, core.Empty, gs.Board.At(c(0, -2)))
	assert.Equal(t, core.Black, gs.Turn)
	assert.Equal(t, 1, gs.MoveCount)
	assert.True(t, gs.Selection.IsEmpty(), "selection is cleared after a move")
	assert.Equal(t, core.PiecesPerSide, gs.Board.Count(core.White))

	assert.Equal(t, []string{events.TypeSelectionChanged, events.TypeMoveApplied}, rec.types())
}

func TestEngine_ApplyMovesKeepsPublishedBoard(t *testing.T) {
	e, _ := newTestEngine(t)
	before := e.State().Board

	e.ToggleMarbleSelection(c(0, -2))
	e.ApplyMoves(e.CalculateSingleMarbleMove(c(0, -1)))

	assert.True(t, before.Equal(core.NewBoard()), "a snapshot taken before the move is unchanged")
	assert.False(t, e.State().Board.Equal(before))
}

func TestEngine_PushEjectsMarble(t *testing.T) {
	e, rec := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.White, c(0, 0), c(0, 1), c(0, 2)).
		Add(core.Black, c(0, 3), c(0, 4)), core.White, rules.Scores{})
	rec.reset()

	selectAll(t, e, c(0, 0), c(0, 1), c(0, 2))
	moves := e.CalculateInLineMove(c(0, 3))
	assert.ElementsMatch(t, []core.Relocation{
		{From: c(0, 0), To: c(0, 1), Occupant: core.White},
		{From: c(0, 1), To: c(0, 2), Occupant: core.White},
		{From: c(0, 2), To: c(0, 3), Occupant: core.White},
		{From: c(0, 3), To: c(0, 4), Occupant: core.Black},
		{From: c(0, 4), To: c(0, 5), Occupant: core.Black},
	}, moves)

	result := e.ApplyMoves(moves)
	require.Len(t, result.Ejected, 1)
	assert.Equal(t, c(0, 4), result.Ejected[0].From)

	gs := e.State()
	assert.Equal(t, rules.Scores{White: 1}, gs.Scores)
	assert.Equal(t, core.Black, gs.Turn)
	assert.Equal(t, 1, gs.Board.Count(core.Black))
	assert.Equal(t, 3, gs.Board.Count(core.White))
	assert.Equal(t, core.Black, gs.Board.At(c(0, 4)))
	assert.Equal(t, core.Empty, gs.Board.At(c(0, 0)))
	assert.False(t, e.IsGameOver())

	types := rec.types()
	assert.Contains(t, types, events.TypeMoveApplied)
	assert.Contains(t, types, events.TypeMarbleEjected)
	assert.NotContains(t, types, events.TypePlayerWon)
}

func TestEngine_WinnerIsFinalAndTurnStillFlips(t *testing.T) {
	e, rec := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.Black, c(0, 0), c(0, -1), c(0, -2)).
		Add(core.White, c(0, -3), c(0, -4)), core.Black, rules.Scores{Black: 5})
	rec.reset()

	selectAll(t, e, c(0, 0), c(0, -1), c(0, -2))
	result := e.ApplyMoves(e.MovesForCell(c(0, -3)))

	require.True(t, result.Applied)
	assert.True(t, result.WinnerDecided)
	assert.Equal(t, core.Black, e.Winner())
	assert.Equal(t, "Black", e.WinnerLabel())
	assert.Equal(t, 6, e.Scores().Black)
	assert.Equal(t, core.White, e.Turn(), "turn passes even after a win")
	assert.Equal(t, states.PhaseEnded, e.Phase())
	assert.True(t, e.IsGameOver())

	tail := rec.types()
	assert.Equal(t, []string{
		events.TypeMoveApplied,
		events.TypeMarbleEjected,
		events.TypePlayerWon,
		events.TypeStateTransition,
	}, tail[len(tail)-4:])

	// Input after the win is still accepted
	selectAll(t, e, c(0, -4))
	late := e.ApplyMoves(e.CalculateSingleMarbleMove(c(1, -4)))
	assert.True(t, late.Applied)
	assert.False(t, late.WinnerDecided)
	assert.Equal(t, core.Black, e.Winner(), "winner never changes")
	assert.Equal(t, core.Black, e.Turn())
	assert.Equal(t, states.PhaseEnded, e.Phase())
}

func TestEngine_PlayAgain(t *testing.T) {
	e, rec := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.Black, c(0, 0), c(0, -1), c(0, -2)).
		Add(core.White, c(0, -3), c(0, -4)), core.Black, rules.Scores{Black: 5})
	selectAll(t, e, c(0, 0), c(0, -1), c(0, -2))
	e.ApplyMoves(e.MovesForCell(c(0, -3)))
	require.Equal(t, states.PhaseEnded, e.Phase())
	rec.reset()

	require.NoError(t, e.PlayAgain())

	gs := e.State()
	assert.True(t, gs.Board.Equal(core.NewBoard()))
	assert.Equal(t, core.White, gs.Turn)
	assert.Equal(t, rules.Scores{}, gs.Scores)
	assert.Equal(t, core.Empty, gs.Winner)
	assert.Equal(t, 0, gs.MoveCount)
	assert.True(t, gs.Selection.IsEmpty())
	assert.Empty(t, gs.Message)
	assert.Equal(t, states.PhaseRunning, e.Phase())

	types := rec.types()
	require.NotEmpty(t, types)
	assert.Equal(t, events.TypeGameReset, types[0])
	assert.Equal(t, events.TypeGameStarted, types[len(types)-1])
}

func TestEngine_PlayAgainFromRunning(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ToggleMarbleSelection(c(0, -2))
	e.ApplyMoves(e.CalculateSingleMarbleMove(c(0, -1)))

	require.NoError(t, e.PlayAgain())
	assert.Equal(t, 0, e.MoveCount())
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.True(t, e.State().Board.Equal(core.NewBoard()))
}

func TestEngine_SelectionOverflowMessage(t *testing.T) {
	e, rec := newTestEngine(t)
	rec.reset()

	selectAll(t, e, c(-1, -3), c(0, -3), c(1, -3))
	assert.Equal(t, rules.ToggleOverflow, e.ToggleMarbleSelection(c(2, -3)))
	assert.Equal(t, rules.OverflowMessage, e.Message())
	assert.Equal(t, 3, e.Selection().Len())

	types := rec.types()
	assert.Equal(t, events.TypeSelectionRejected, types[len(types)-1])

	e.ClearMessage()
	assert.Empty(t, e.Message())
	assert.Equal(t, 3, e.Selection().Len(), "clearing the message keeps the selection")
}

func TestEngine_ToggleOpponentClearsSelection(t *testing.T) {
	e, _ := newTestEngine(t)
	selectAll(t, e, c(0, -2))

	assert.Equal(t, rules.ToggleCleared, e.ToggleMarbleSelection(c(0, 2)))
	assert.True(t, e.Selection().IsEmpty())

	selectAll(t, e, c(0, -2))
	e.ClearSelection()
	assert.True(t, e.Selection().IsEmpty())
}

func TestEngine_EmptyApplyMovesIsNoOp(t *testing.T) {
	e, rec := newTestEngine(t)
	selectAll(t, e, c(0, -2))
	rec.reset()

	// Resolving a click on an own marble yields nothing and leaves the
	// selection alone; ClickCell is the caller that clears it
	moves := e.MovesForCell(c(1, -2))
	require.Empty(t, moves)

	result := e.ApplyMoves(moves)
	assert.False(t, result.Applied)
	assert.Equal(t, core.White, e.Turn())
	assert.Equal(t, 0, e.MoveCount())
	assert.Equal(t, 1, e.Selection().Len(), "selection survives a rejected move")
	assert.Empty(t, rec.types())
}

func TestEngine_MovesForDirection(t *testing.T) {
	e, _ := newTestEngine(t)
	selectAll(t, e, c(0, -2), c(1, -2))

	// Sideways shift of the pair one row up
	moves := e.MovesForDirection(c(0, 1))
	assert.ElementsMatch(t, []core.Relocation{
		{From: c(0, -2), To: c(0, -1), Occupant: core.White},
		{From: c(1, -2), To: c(1, -1), Occupant: core.White},
	}, moves)
	assert.Equal(t, moves, e.CalculateBroadsideMove(c(0, 1)))
}

func TestEngine_LegalMoves(t *testing.T) {
	e, _ := newTestEngine(t)

	moves := e.LegalMoves()
	require.NotEmpty(t, moves)
	assert.True(t, e.HasLegalMove())
	for _, m := range moves {
		assert.NotEmpty(t, m.Relocations)
		for _, r := range m.Relocations {
			assert.Equal(t, core.White, r.Occupant, "no opening move touches black")
		}
	}
}

func TestEngine_Stats(t *testing.T) {
	e, _ := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.White, c(0, 0), c(0, 1), c(0, 2)).
		Add(core.Black, c(0, 3), c(0, 4)), core.White, rules.Scores{White: 2, Black: 1})

	selectAll(t, e, c(0, 0), c(0, 1), c(0, 2))
	e.ApplyMoves(e.CalculateInLineMove(c(0, 3)))

	stats := e.Stats()
	assert.Equal(t, 1, stats.MoveCount)
	assert.Equal(t, core.Black, stats.Turn)
	assert.Equal(t, PlayerStats{Player: core.White, OnBoard: 3, Lost: 1, Score: 3}, stats.White)
	assert.Equal(t, PlayerStats{Player: core.Black, OnBoard: 1, Lost: 3, Score: 1}, stats.Black)
}

func TestEngine_Board(t *testing.T) {
	e, _ := newTestEngine(t)
	selectAll(t, e, c(0, -2))

	out := e.Board()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 9)

	assert.Equal(t, "    B B B B B ", lines[0])
	assert.Equal(t, "· · · · · · · · · ", lines[4])
	assert.Equal(t, "  · · w W W · · ", lines[6])
	assert.Equal(t, "    W W W W W ", lines[8])
	assert.Contains(t, out, "White to play")
	assert.NotContains(t, out, ColorReset)
}

func TestRenderBoard_Options(t *testing.T) {
	b := core.NewBoard()

	colored := RenderBoard(b, core.Selection{}, RenderOptions{Color: true})
	assert.Contains(t, colored, ColorReset)
	assert.Contains(t, colored, ColorYellow)

	withCoords := RenderBoard(b, core.Selection{}, RenderOptions{ShowCoordinates: true})
	lines := strings.Split(withCoords, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "r= 4 "))
	assert.True(t, strings.HasPrefix(lines[8], "r=-4 "))
	assert.Contains(t, lines[0], "q=-4..0")
}

// Every legal move conserves marbles and costs the opponent at most one.
func TestEngine_RandomPlayoutInvariants(t *testing.T) {
	e, _ := newTestEngine(t)
	rng := testutil.NewTestRNG(7)

	for i := 0; i < 300 && !e.IsGameOver(); i++ {
		before := e.State()
		move, ok := RandomMove(e, rng)
		require.True(t, ok)

		result := e.ApplyMoves(move.Relocations)
		require.True(t, result.Applied)
		after := e.State()

		mover := before.Turn
		opponent := mover.Opponent()
		assert.Equal(t, opponent, after.Turn)
		assert.Equal(t, before.MoveCount+1, after.MoveCount)
		assert.LessOrEqual(t, before.Board.Count(opponent)-after.Board.Count(opponent), 1)
		if move.Kind == core.MoveBroadside {
			assert.Equal(t, before.Board.Count(opponent), after.Board.Count(opponent), "broadside never touches the opponent")
		}

		for _, p := range []core.Occupant{core.White, core.Black} {
			assert.Equal(t, core.PiecesPerSide, after.Board.Count(p)+after.Scores.Of(p.Opponent()),
				"%s marbles on board plus lost", p.Label())
		}
	}
}

func TestEngine_BroadsideOffBoardScoresForOpponent(t *testing.T) {
	e, _ := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.White, c(-4, 4), c(-3, 4)).
		Add(core.Black, c(2, -2)), core.White, rules.Scores{})

	selectAll(t, e, c(-4, 4), c(-3, 4))
	require.Contains(t, e.ComputeValidMoveDirections(), c(0, 1))

	moves := e.MovesForDirection(c(0, 1))
	assert.ElementsMatch(t, []core.Relocation{
		{From: c(-4, 4), To: c(-4, 5), Occupant: core.White},
		{From: c(-3, 4), To: c(-3, 5), Occupant: core.White},
	}, moves)

	result := e.ApplyMoves(moves)
	require.True(t, result.Applied)
	assert.Len(t, result.Ejected, 2)
	assert.Equal(t, rules.Scores{Black: 2}, e.Scores())
	assert.Equal(t, 0, e.State().Board.Count(core.White))
	assert.Equal(t, core.Black, e.Turn())
	assert.Equal(t, 2, e.MarblesEjected())
}

func TestEngine_InLineSelfEjectionScoresForOpponent(t *testing.T) {
	e, rec := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.White, c(0, 3), c(0, 4)).
		Add(core.Black, c(2, -2)), core.White, rules.Scores{})
	rec.reset()

	selectAll(t, e, c(0, 3), c(0, 4))
	require.Contains(t, e.ComputeValidMoveDirections(), c(0, 1))

	moves := e.ClickCell(c(0, 5))
	assert.ElementsMatch(t, []core.Relocation{
		{From: c(0, 4), To: c(0, 5), Occupant: core.White},
		{From: c(0, 3), To: c(0, 4), Occupant: core.White},
	}, moves)

	result := e.ApplyMoves(moves)
	require.Len(t, result.Ejected, 1)
	assert.Equal(t, core.White, result.Ejected[0].Occupant)

	gs := e.State()
	assert.Equal(t, rules.Scores{Black: 1}, gs.Scores)
	assert.Equal(t, core.Black, gs.Turn)
	assert.Equal(t, core.White, gs.Board.At(c(0, 4)))
	assert.Equal(t, core.Empty, gs.Board.At(c(0, 3)))
	assert.Equal(t, 1, gs.Board.Count(core.White))

	ejected := rec.events[len(rec.events)-1]
	require.IsType(t, &events.MarbleEjectedEvent{}, ejected)
	assert.Equal(t, "Black", ejected.(*events.MarbleEjectedEvent).ScoredBy)
	assert.Equal(t, 1, ejected.(*events.MarbleEjectedEvent).Score)
}

func TestEngine_MarblesEjectedClearedOnPlayAgain(t *testing.T) {
	e, _ := newTestEngine(t)
	loadPosition(t, e, testutil.NewPieces().
		Add(core.White, c(0, 0), c(0, 1), c(0, 2)).
		Add(core.Black, c(0, 3), c(0, 4)), core.White, rules.Scores{})
	assert.Equal(t, 0, e.MarblesEjected())

	selectAll(t, e, c(0, 0), c(0, 1), c(0, 2))
	e.ApplyMoves(e.CalculateInLineMove(c(0, 3)))
	assert.Equal(t, 1, e.MarblesEjected())

	require.NoError(t, e.PlayAgain())
	assert.Equal(t, 0, e.MarblesEjected())
}

func TestEngine_ClickCell(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		e, _ := newTestEngine(t)
		assert.Nil(t, e.ClickCell(c(0, -1)))
		assert.True(t, e.Selection().IsEmpty())
	})

	t.Run("valid step keeps selection until applied", func(t *testing.T) {
		e, _ := newTestEngine(t)
		selectAll(t, e, c(0, -2))

		moves := e.ClickCell(c(0, -1))
		assert.Equal(t, []core.Relocation{{From: c(0, -2), To: c(0, -1), Occupant: core.White}}, moves)
		assert.Equal(t, 1, e.Selection().Len())

		e.ApplyMoves(moves)
		assert.True(t, e.Selection().IsEmpty())
	})

	t.Run("invalid click clears selection", func(t *testing.T) {
		e, _ := newTestEngine(t)
		selectAll(t, e, c(0, -2))

		assert.Empty(t, e.ClickCell(c(3, 0)), "not a neighbour")
		assert.True(t, e.Selection().IsEmpty())
		assert.Equal(t, core.White, e.Turn())
		assert.Equal(t, 0, e.MoveCount())
	})

	t.Run("line clicked beside its ends clears selection", func(t *testing.T) {
		e, _ := newTestEngine(t)
		selectAll(t, e, c(0, -2), c(1, -2))

		assert.Empty(t, e.ClickCell(c(0, -1)))
		assert.True(t, e.Selection().IsEmpty())
	})
}
