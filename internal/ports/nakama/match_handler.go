package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tripeaks/internal/app"
	"tripeaks/internal/config"
	"tripeaks/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Seconds a match waits for its owner to join before closing.
const joinTimeoutSeconds = 30

// Error codes sent with OpGameError.
const (
	errCodeBadRequest   = 400
	errCodeNoCoins      = 402
	errCodeInvalidState = 409
	errCodeInternal     = 500
)

// MatchState holds the authoritative runtime state of one solo match.
type MatchState struct {
	Owner    string           // user id of the only player allowed in
	Presence runtime.Presence // nil until the owner joins
	Level    config.Level     // level entry being played
	Engine   *app.Engine      // round engine with the owner's store
	Signer   *app.ResultSigner
	TickRate int
	Tick     int64
	Started  bool
}

type matchHandler struct {
	rules  config.GameConfig
	levels config.LevelList
}

func newMatchHandler(rules config.GameConfig, levels config.LevelList) *matchHandler {
	return &matchHandler{rules: rules, levels: levels}
}

// MatchInit is called when the match is created. params carry the owner
// and the requested level.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	owner, _ := params["owner"].(string)
	if owner == "" {
		logger.Error("MatchInit: Missing owner param.")
		return nil, 0, ""
	}

	level := mh.findLevel(intParam(params, "level"))
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	tickRate := DefaultTickRate
	if val, ok := env[EnvTickRate]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= 1 && i <= 60 {
			tickRate = i
		}
	}

	var signer *app.ResultSigner
	if secret := env[EnvReceiptSecret]; secret != "" {
		signer = app.NewResultSigner(secret)
	} else {
		logger.Warn("MatchInit: %s not set, round results will not carry receipts.", EnvReceiptSecret)
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	store := NewNakamaScoreStore(nk, owner, map[string]interface{}{
		"match_id": matchID,
		"reason":   "tripeaks_round",
	})

	state := &MatchState{
		Owner:    owner,
		Level:    level,
		Engine:   app.NewEngine(mh.rules, store, nil),
		Signer:   signer,
		TickRate: tickRate,
	}

	label, err := encodeLabel(owner, level.Level, state.Engine.Phase())
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	logger.Debug("MatchInit: Solo match for %s at level %d round %d.", owner, level.Level, level.Round)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if presence.GetUserId() != matchState.Owner {
		return state, false, "Match is private"
	}
	if matchState.Presence != nil {
		return state, false, "Already joined"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.Owner {
			matchState.Presence = p
		}
	}
	if matchState.Presence == nil {
		return matchState
	}

	if !matchState.Started {
		events, err := matchState.Engine.Start(ctx, matchState.Level)
		if err != nil {
			logger.Error("MatchJoin: Failed to start level %d: %v", matchState.Level.Level, err)
			mh.sendError(matchState, dispatcher, logger, errCodeInternal, err.Error())
			return matchState
		}
		matchState.Started = true
		mh.broadcastEvents(matchState, dispatcher, logger, events)
		mh.updateLabel(matchState, dispatcher, logger)
		logger.Info("MatchJoin: Started level %d round %d for %s.", matchState.Level.Level, matchState.Level.Round, matchState.Owner)
	}

	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave ends the match when the owner leaves.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.Owner {
			logger.Info("MatchLeave: Owner %s left, terminating match.", matchState.Owner)
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	if !matchState.Started {
		if tick >= int64(joinTimeoutSeconds*matchState.TickRate) {
			logger.Info("MatchLoop: Owner %s never joined, terminating match.", matchState.Owner)
			return nil
		}
		return matchState
	}

	for _, msg := range messages {
		if msg.GetUserId() != matchState.Owner {
			logger.Warn("MatchLoop: Ignoring message from non-owner %s.", msg.GetUserId())
			continue
		}
		mh.handleCommand(ctx, matchState, dispatcher, logger, msg)
	}

	result, err := matchState.Engine.Tick(ctx, 1/float64(matchState.TickRate))
	if err != nil {
		// The engine retries every tick; report once a second.
		if tick%int64(matchState.TickRate) == 0 {
			logger.Error("MatchLoop: Failed to finish round: %v", err)
		}
		return matchState
	}
	if result != nil {
		mh.handleRoundEnded(matchState, dispatcher, logger, *result)
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	} else if tick%int64(matchState.TickRate) == 0 {
		// Once a second so the client clock stays in step.
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	args, err := decodeArgs(msg.GetData())
	if err != nil {
		logger.Warn("handleCommand: Bad payload for opcode %d: %v", msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, errCodeBadRequest, err.Error())
		return
	}

	engine := state.Engine
	var (
		events []app.Event
		result *app.RoundResult
	)

	switch msg.GetOpCode() {
	case OpRevealNextCard:
		events, err = engine.RevealNextCard()
	case OpAttemptMatch:
		slot, ok := intArg(args, "slot")
		if !ok {
			err = fmt.Errorf("%w: slot is required", domain.ErrUnknownSlot)
			break
		}
		events, err = engine.AttemptMatch(slot)
	case OpUndo:
		events, err = engine.Undo()
	case OpShuffleBoard:
		events, err = engine.ShuffleBoard()
	case OpWildCard:
		events, err = engine.GenerateWildCard()
	case OpExtraCards:
		events, err = engine.AddExtraCards(mh.rules.ExtraCardsPowerup)
	case OpExtraTime:
		events, err = engine.AddExtraTime(mh.rules.ExtraTimePowerup)
	case OpRestart:
		events, err = mh.restart(ctx, state)
	case OpPause:
		paused, ok := boolArg(args, "paused")
		if !ok {
			paused = !engine.State().Paused
		}
		err = engine.SetPaused(paused)
	case OpEndRound:
		result, err = engine.EndRound(ctx)
	default:
		logger.Warn("handleCommand: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		logger.Debug("handleCommand: Opcode %d rejected for %s: %v", msg.GetOpCode(), state.Owner, err)
		mh.sendError(state, dispatcher, logger, errorCode(err), err.Error())
		return
	}

	mh.broadcastEvents(state, dispatcher, logger, events)
	if result != nil {
		mh.handleRoundEnded(state, dispatcher, logger, *result)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)
}

// restart moves to the level entry of the round the engine will deal next.
func (mh *matchHandler) restart(ctx context.Context, state *MatchState) ([]app.Event, error) {
	engine := state.Engine
	if engine.Phase() != app.PhaseRoundEnd {
		return engine.Restart(ctx)
	}
	if next, ok := mh.levels.Find(state.Level.Level, engine.NextRound()); ok {
		if err := engine.SetLevel(next); err != nil {
			return nil, err
		}
		state.Level = next
	}
	return engine.Restart(ctx)
}

func (mh *matchHandler) handleRoundEnded(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, result app.RoundResult) {
	receipt := ""
	if state.Signer != nil {
		token, err := state.Signer.Sign(state.Owner, result)
		if err != nil {
			logger.Error("handleRoundEnded: Failed to sign result: %v", err)
		} else {
			receipt = token
		}
	}

	data, err := encodeRoundEnded(result, receipt)
	if err != nil {
		logger.Error("handleRoundEnded: Failed to marshal result: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpRoundEnded, data)
	mh.updateLabel(state, dispatcher, logger)

	logger.Info("handleRoundEnded: %s round %d won=%t score=%d coins=%d", state.Owner, result.Round, result.Won, result.TotalScore, result.TotalCoins)
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	if len(events) == 0 {
		return
	}
	data, err := encodeEvents(events)
	if err != nil {
		logger.Error("broadcastEvents: Failed to marshal events: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpEvents, data)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := encodeSnapshot(state.Level.Level, state.Engine.Snapshot())
	if err != nil {
		logger.Error("broadcastSnapshot: Failed to marshal snapshot: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpSnapshot, data)
}

// sendError sends an error message to the owner.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	data, err := encodeError(code, message)
	if err != nil {
		logger.Error("Failed to marshal error: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, OpGameError, data)
}

func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, data []byte) {
	if state.Presence == nil {
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{state.Presence}, nil, true); err != nil {
		logger.Error("Failed to send opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.Owner, state.Level.Level, state.Engine.Phase())
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

// MatchSignal answers "snapshot" with the current snapshot document.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != "snapshot" {
		return state, ""
	}
	snap, err := encodeSnapshot(matchState.Level.Level, matchState.Engine.Snapshot())
	if err != nil {
		logger.Error("MatchSignal: Failed to marshal snapshot: %v", err)
		return state, ""
	}
	return state, string(snap)
}

func (mh *matchHandler) findLevel(level int) config.Level {
	if lv, ok := mh.levels.First(level); ok {
		return lv
	}
	if len(mh.levels.Levels) > 0 {
		return mh.levels.Levels[0]
	}
	return config.DefaultLevel()
}

func intParam(params map[string]interface{}, name string) int {
	switch v := params[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientCurrency):
		return errCodeNoCoins
	case errors.Is(err, domain.ErrInvalidState):
		return errCodeInvalidState
	case errors.Is(err, domain.ErrIllegalMove),
		errors.Is(err, domain.ErrUnknownSlot),
		errors.Is(err, domain.ErrSlotEmpty),
		errors.Is(err, domain.ErrSlotOccupied),
		errors.Is(err, domain.ErrWasteEmpty),
		errors.Is(err, domain.ErrDeckEmpty),
		errors.Is(err, domain.ErrInvalidAmount):
		return errCodeBadRequest
	default:
		return errCodeInternal
	}
}
