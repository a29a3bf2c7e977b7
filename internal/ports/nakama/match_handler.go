package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"fivetakes/internal/app"
	"fivetakes/internal/bot"
	"fivetakes/internal/config"
	"fivetakes/internal/domain"
	"fivetakes/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MaxSeats is the table size; the rules cap the playable player count
// below this when configured tighter.
const MaxSeats = 10

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [MaxSeats]string            `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil while in lobby

	BotsEnabled         bool  `json:"bots_enabled"`
	BotMinDelay         int   `json:"bot_min_delay"`       // min seconds a bot waits before acting
	BotMaxDelay         int   `json:"bot_max_delay"`       // max seconds a bot waits before acting
	BotAutoFillDelay    int   `json:"bot_auto_fill_delay"` // seconds before short lobbies fill with bots
	BotWaitUntil        int64 `json:"bot_wait_until"`
	LastShortHandedTick int64 `json:"last_short_handed_tick"`

	Bots    map[string]*bot.Agent `json:"-"` // bot-controlled user IDs, including abandoned humans
	Economy ports.EconomyPort     `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !ms.isBotControlled(seat) {
			count++
		}
	}
	return count
}

// isBotControlled reports whether the given seat occupant plays without a
// human: either a provisioned bot identity or a departed human handed to
// an agent mid-game.
func (ms *MatchState) isBotControlled(userID string) bool {
	if bot.IsBot(userID) {
		return true
	}
	_, ok := ms.Bots[userID]
	return ok
}

// isHumanSeat reports whether the seat index belongs to a connected human.
func (ms *MatchState) isHumanSeat(seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(ms.Seats) {
		return false
	}
	userID := ms.Seats[seatIndex]
	return userID != "" && !ms.isBotControlled(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or
// -1 if none exist.
func (ms *MatchState) findFirstHumanSeat() int {
	for i := range ms.Seats {
		if ms.isHumanSeat(i) {
			return i
		}
	}
	return -1
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: initializing match handler")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["fivetakes_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["fivetakes_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["fivetakes_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["fivetakes_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		if cfg := config.GetGameConfig(); cfg != nil && cfg.BotAutoFillDelaySeconds > 0 {
			state.BotAutoFillDelay = cfg.BotAutoFillDelaySeconds
		} else {
			state.BotAutoFillDelay = 5
		}
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "fivetakes",
		Phase: string(domain.PhaseLobby),
	})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join when there is an empty seat, or a bot to displace while
	// still in the lobby.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
			for _, seat := range matchState.Seats {
				if matchState.isBotControlled(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "match full"
		}
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
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		// A returning player already holds a seat; hand control back if an
		// autopilot agent was covering for them.
		if seat := mh.senderSeat(matchState, userID); seat >= 0 {
			if _, autopilot := matchState.Bots[userID]; autopilot && !bot.IsBot(userID) {
				delete(matchState.Bots, userID)
				logger.Info("MatchJoin: user %s rejoined seat %d, autopilot disengaged", userID, seat)
			}
			mh.announceJoin(matchState, dispatcher, logger, userID, seat)
			continue
		}

		assigned := -1
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = userID
				assigned = i
				break
			}
		}

		if assigned < 0 && matchState.Game == nil {
			for i, seatUserID := range matchState.Seats {
				if matchState.isBotControlled(seatUserID) {
					logger.Info("MatchJoin: replacing bot %s with human %s in seat %d", seatUserID, userID, i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = userID
					assigned = i
					break
				}
			}
		}

		if assigned < 0 {
			logger.Warn("MatchJoin: user %s joined but no seat was available", userID)
			continue
		}
		mh.announceJoin(matchState, dispatcher, logger, userID, assigned)
	}

	if !matchState.isHumanSeat(matchState.OwnerSeat) {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: owner set to human seat %d", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave frees lobby seats; mid-game, the departed player's hand is
// handed to a bot agent so the remaining players can finish the round.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserID := range matchState.Seats {
			if seatUserID != p.GetUserId() {
				continue
			}

			autopilot := false
			if matchState.Game != nil && matchState.Game.Phase == domain.PhasePlaying {
				agent, err := bot.NewAgent(seatUserID)
				if err != nil {
					logger.Error("MatchLeave: failed to create autopilot agent for %s: %v", seatUserID, err)
				} else {
					matchState.Bots[seatUserID] = agent
					autopilot = true
					logger.Info("MatchLeave: user %s left mid-game, seat %d on autopilot", seatUserID, i)
				}
			} else {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: user %s left, seat %d freed", seatUserID, i)
			}
			mh.announceLeave(matchState, dispatcher, logger, seatUserID, i, autopilot)
			break
		}
	}

	if newOwnerSeat := matchState.findFirstHumanSeat(); newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
	}

	if matchState.findFirstHumanSeat() == -1 {
		logger.Info("MatchLeave: terminating match with no humans")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpSelectCard:
			mh.handleSelectCard(ctx, matchState, dispatcher, logger, msg)
		case OpChooseRow:
			mh.handleChooseRow(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processBots(ctx, matchState, dispatcher, logger)

	return matchState
}

// processBots drives every bot-controlled seat. Lobby auto-fill only runs
// when bots are enabled; in-game decisions are pumped regardless, because
// autopilot seats for departed humans exist even in bot-free matches and a
// simultaneous turn cannot resolve without them.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		if state.BotsEnabled {
			mh.autoFillLobby(state, dispatcher, logger)
		}
		return
	}

	if state.Game.Phase != domain.PhasePlaying {
		return
	}

	// With simultaneous selection there may be several bot decisions
	// queued; take one per tick window so play stays watchable.
	actorID, pendingChoice := mh.nextBotDecision(state)
	if actorID == "" {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[actorID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(actorID)
		if err != nil {
			logger.Error("processBots: failed to create fallback agent: %v", err)
			return
		}
		state.Bots[actorID] = agent
	}

	if pendingChoice {
		row, err := agent.ChooseRow(state.Game)
		if err != nil {
			logger.Error("processBots: bot %s failed to choose a row: %v", actorID, err)
			return
		}
		events, err := state.App.ChooseRow(state.Game, actorID, row)
		if err != nil {
			logger.Error("processBots: bot %s row choice rejected: %v", actorID, err)
			return
		}
		for _, ev := range events {
			mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
		}
		return
	}

	card, err := agent.SelectCard(state.Game)
	if err != nil {
		logger.Error("processBots: bot %s failed to select a card: %v", actorID, err)
		return
	}
	events, err := state.App.SelectCard(state.Game, actorID, card.Value)
	if err != nil {
		logger.Error("processBots: bot %s selection rejected: %v", actorID, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// autoFillLobby adds bots after a grace period so a lone human can still
// get a table.
func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	humanCount := state.GetHumanPlayerCount()
	occupied := state.GetOccupiedSeatCount()
	if humanCount < 1 || occupied >= app.MinPlayersToStartGame {
		state.LastShortHandedTick = 0
		return
	}

	if state.LastShortHandedTick == 0 {
		state.LastShortHandedTick = state.Tick
		logger.Debug("autoFillLobby: short-handed lobby, starting auto-fill timer")
		return
	}
	if state.Tick-state.LastShortHandedTick < int64(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if occupied >= app.MinPlayersToStartGame {
			break
		}
		if seat != "" {
			continue
		}

		identity := bot.GetBotIdentity(i)
		botID := identity.UserID
		state.Seats[i] = botID
		occupied++

		agent, err := bot.NewAgent(botID)
		if err != nil {
			logger.Error("autoFillLobby: failed to create bot agent for %s: %v", botID, err)
		} else {
			state.Bots[botID] = agent
		}

		logger.Info("autoFillLobby: added bot %s to seat %d", botID, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
	state.LastShortHandedTick = 0
}

// nextBotDecision returns the bot-controlled player whose input the game is
// waiting on. A pending forced row choice takes priority over selections.
func (mh *matchHandler) nextBotDecision(state *MatchState) (userID string, pendingChoice bool) {
	g := state.Game
	if g.Resolution != nil {
		req := g.Resolution.Pending()
		if req != nil && state.isBotControlled(req.UserID) {
			return req.UserID, true
		}
		return "", false
	}

	for _, id := range g.SeatOrder {
		p := g.Players[id]
		if len(p.Hand) > 0 && p.Selected == nil && state.isBotControlled(id) {
			return id, false
		}
	}
	return "", false
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []playerStateWire
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userID); name != "" {
			displayName = name
		}

		cardsRemaining := 0
		if state.Game != nil {
			if p, ok := state.Game.Players[userID]; ok {
				cardsRemaining = len(p.Hand)
			}
		}

		playerStates = append(playerStates, playerStateWire{
			UserID:         userID,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          state.isBotControlled(userID),
			DisplayName:    displayName,
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := matchStateWire{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: marshal failed: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true)
}

func (mh *matchHandler) announceJoin(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, seat int) {
	data, err := json.Marshal(playerJoinedWire{UserID: userID, Seat: seat})
	if err != nil {
		logger.Error("announceJoin: marshal failed: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerJoined, data, nil, nil, true)
}

func (mh *matchHandler) announceLeave(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, seat int, autopilot bool) {
	data, err := json.Marshal(playerLeftWire{UserID: userID, Seat: seat, Autopilot: autopilot})
	if err != nil {
		logger.Error("announceLeave: marshal failed: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerLeft, data, nil, nil, true)
}

func (mh *matchHandler) senderSeat(state *MatchState, userID string) int {
	for i, seatUserID := range state.Seats {
		if seatUserID == userID {
			return i
		}
	}
	return -1
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := mh.senderSeat(state, senderID)

	logger.Info("StartGame: request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: game already in progress")
		mh.sendError(state, dispatcher, logger, senderID, 409, "game already in progress")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: user %s is not the owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the owner can start the game")
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: cannot start with %d players, need at least %d", activeCount, app.MinPlayersToStartGame)
		mh.sendError(state, dispatcher, logger, senderID, 400, "not enough players")
		return
	}

	rules := config.GetGameConfig().Rules()
	baseBet := config.GetBaseBet()

	game, events, err := state.App.StartGame(state.Seats[:], rules, baseBet)
	if err != nil {
		logger.Error("StartGame: failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Game = game
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: game started with %d players", activeCount)
}

func (mh *matchHandler) handleSelectCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handleSelectCard: game not started")
		mh.sendError(state, dispatcher, logger, senderID, 400, "game not started")
		return
	}

	var req selectCardMessage
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleSelectCard: invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.SelectCard(state.Game, senderID, req.Card)
	if err != nil {
		logger.Warn("handleSelectCard: user %s failed to select card %d: %v", senderID, req.Card, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleChooseRow(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		logger.Warn("handleChooseRow: game not started")
		mh.sendError(state, dispatcher, logger, senderID, 400, "game not started")
		return
	}

	var req chooseRowMessage
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleChooseRow: invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid payload")
		return
	}

	events, err := state.App.ChooseRow(state.Game, senderID, req.Row)
	if err != nil {
		logger.Warn("handleChooseRow: user %s failed to choose row %d: %v", senderID, req.Row, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event to its wire form and dispatches it.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload interface{}

	switch ev.Kind {
	case app.EventGameStarted:
		opCode = OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		payload = gameStartedWire{Phase: string(p.Phase), Players: p.Players}
	case app.EventRoundStarted:
		opCode = OpRoundStarted
		p := ev.Payload.(app.RoundStartedPayload)
		payload = roundStartedWire{Round: p.Round, Rows: p.Rows}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = handDealtWire{Hand: p.Hand}
	case app.EventSelectionMade:
		opCode = OpCardSelected
		p := ev.Payload.(app.SelectionMadePayload)
		payload = cardSelectedWire{UserID: p.UserID, Remaining: p.Remaining}
	case app.EventRowChoiceRequired:
		opCode = OpRowChoiceRequired
		p := ev.Payload.(app.RowChoiceRequiredPayload)
		payload = rowChoiceRequiredWire{Card: p.Card, Rows: p.Rows}
	case app.EventTurnResolved:
		opCode = OpTurnResolved
		p := ev.Payload.(app.TurnResolvedPayload)
		payload = turnResolvedWire{Turn: p.Turn, Placements: p.Placements, Rows: p.Rows, Scores: p.Scores}
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		p := ev.Payload.(app.RoundEndedPayload)
		payload = roundEndedWire{Round: p.Round, Scores: p.Scores}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = gameEndedWire{WinnerUserID: p.WinnerUserID, Ranking: p.Ranking, BalanceChanges: p.BalanceChanges}

		mh.settleBalances(ctx, state, logger, p.BalanceChanges)

		// Back to the lobby; bot-controlled departed seats are released.
		state.Game = nil
		for i, seatUserID := range state.Seats {
			if seatUserID == "" {
				continue
			}
			if _, autopilot := state.Bots[seatUserID]; autopilot && !bot.IsBot(seatUserID) {
				delete(state.Bots, seatUserID)
				state.Seats[i] = ""
			}
		}
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("broadcastEvent: unknown event kind: %v", ev.Kind)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %v: %v", ev.Kind, err)
		return
	}

	// Default to broadcast; targeted events go only to connected
	// recipients. An event targeted solely at bots is dropped rather than
	// leaked to the table.
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

// settleBalances applies the end-of-game coin changes to human wallets.
func (mh *matchHandler) settleBalances(ctx context.Context, state *MatchState, logger runtime.Logger, changes map[string]int64) {
	if state.Economy == nil || len(changes) == 0 {
		return
	}

	updates := make([]ports.WalletUpdate, 0, len(changes))
	for userID, amount := range changes {
		if bot.IsBot(userID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"reason":   "game_settlement",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settleBalances: failed to update balances: %v", err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	data, err := json.Marshal(gameErrorWire{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: marshal failed: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendError: presence for %s not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := domain.PhaseLobby
	if state.Game != nil {
		phase = domain.PhasePlaying
	}

	labelBytes, err := json.Marshal(MatchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "fivetakes",
		Phase: string(phase),
	})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
