package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/abalone/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel || ls.logLevel == zerolog.Disabled {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("first_player", e.FirstPlayer).
			Int("white_pieces", e.WhitePieces).
			Int("black_pieces", e.BlackPieces)

	case *events.GameResetEvent:
		logEvent.
			Str("previous_winner", e.PreviousWinner).
			Int("moves_played", e.MovesPlayed)

	case *events.SelectionChangedEvent:
		logEvent.
			Str("player", e.Metadata.Player).
			Stringer("clicked", e.Clicked).
			Str("outcome", e.Outcome).
			Int("selected", len(e.Selection))

	case *events.SelectionRejectedEvent:
		logEvent.
			Str("player", e.Metadata.Player).
			Stringer("clicked", e.Clicked).
			Str("reason", e.Reason)
		if e.Message != "" {
			logEvent.Str("advice", e.Message)
		}

	case *events.MoveAppliedEvent:
		logEvent.
			Str("player", e.Metadata.Player).
			Int("move", e.Metadata.Move).
			Int("relocations", len(e.Relocations)).
			Int("ejected", e.Ejected).
			Str("next_turn", e.NextTurn)

	case *events.MarbleEjectedEvent:
		logEvent.
			Str("marble", e.Marble).
			Stringer("from", e.From).
			Str("scored_by", e.ScoredBy).
			Int("score", e.Score)

	case *events.PlayerWonEvent:
		logEvent.
			Str("winner", e.Winner).
			Int("move", e.Metadata.Move).
			Int("white_score", e.WhiteScore).
			Int("black_score", e.BlackScore)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
