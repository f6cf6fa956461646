// Package room implements the authoritative session coordinator. One
// goroutine owns each room; every inbound event, timer tick, and grace-period
// expiry arrives as an inbox message, so all mutation of a room's state is
// serialized.
package room

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/content"
	"github.com/spotit-game/spotit-backend/internal/game"
	"github.com/spotit-game/spotit-backend/pkg/types"
)

type Status string

const (
	StatusLobby   Status = "LOBBY"
	StatusPlaying Status = "PLAYING"
	StatusResults Status = "RESULTS"
)

// Player is one controller participant. ConnID changes across reconnects;
// PersistentID is the stable reconnection key handed back to the client.
type Player struct {
	Conn         Conn
	ConnID       string
	PersistentID string
	Name         string
	IsLeader     bool
	IsReady      bool
	Connected    bool
	Score        int
	Cursor       game.Point
}

type Config struct {
	LevelTime    int           // countdown start, in ticks
	TickInterval time.Duration // wall time per tick
	PointsPerHit int
	GracePeriod  time.Duration // display/leader reconnection window
}

func DefaultConfig() Config {
	return Config{
		LevelTime:    30,
		TickInterval: time.Second,
		PointsPerHit: 20,
		GracePeriod:  10 * time.Second,
	}
}

type Room struct {
	inbox chan Msg

	id    string
	token string

	display  Conn
	players  []*Player // join order
	teamName string
	status   Status

	level        game.Level
	hotspotIndex int
	timeLeft     int

	// round timer; gen guards against stale ticks after a restart
	timerGen  int
	timerStop chan struct{}

	displayGrace *graceTimer
	leaderGrace  *graceTimer

	selector game.Selector
	cfg      Config
	log      *zap.Logger
	onClose  func(id string)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewRoom creates a room owned by display and starts its goroutine. onClose
// is invoked exactly once when the room tears itself down.
func NewRoom(parent context.Context, id, token string, display Conn, selector game.Selector, cfg Config, log *zap.Logger, onClose func(id string)) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:    make(chan Msg, 64),
		id:       id,
		token:    token,
		display:  display,
		status:   StatusLobby,
		timeLeft: cfg.LevelTime,
		selector: selector,
		cfg:      cfg,
		log:      log,
		onClose:  onClose,
		ctx:      ctx,
		cancel:   cancel,
	}

	go r.loop()
	return r
}

func (r *Room) ID() string    { return r.id }
func (r *Room) Token() string { return r.token }

// Done closes when the room's goroutine has stopped accepting messages.
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

// Post delivers a message unless the room is already gone. Callers waiting on
// a Reply channel must also select on Done.
func (r *Room) Post(m Msg) bool {
	select {
	case r.inbox <- m:
		return true
	case <-r.ctx.Done():
		return false
	}
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				r.handleJoin(msg)

			case RecoverDisplay:
				r.handleRecoverDisplay(msg)

			case SetReady:
				r.handleSetReady(msg)

			case StartGame:
				r.handleStartGame(msg)

			case CursorUpdate:
				r.handleCursorUpdate(msg)

			case SpotObject:
				r.handleSpotObject(msg)

			case timerTick:
				r.handleTimerTick(msg)

			case Exit:
				if r.handleExit(msg) {
					r.teardown()
					return
				}

			case Disconnected:
				r.handleDisconnected(msg)

			case graceExpired:
				if r.handleGraceExpired(msg) {
					r.teardown()
					return
				}

			case GetInfo:
				msg.Reply <- Info{TeamName: r.teamName, Status: r.status}

			case GetState:
				msg.Reply <- r.view()

			case Shutdown:
				r.stopRoundTimer()
				r.displayGrace.cancel()
				r.leaderGrace.cancel()
				r.cancel()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) {
	if msg.Token != r.token {
		msg.Conn.Send(types.ServerEvent{Type: types.EvtJoinResponse, Data: types.JoinResponse{
			Success: false,
			Error:   "Invalid Room",
		}})
		msg.Reply <- false
		return
	}

	// A successful join cancels any pending leader teardown.
	r.leaderGrace.cancel()

	if msg.PersistentID != "" {
		if p := r.playerByPersistentID(msg.PersistentID); p != nil {
			r.reattach(p, msg.Conn)
			msg.Reply <- true
			return
		}
	}

	isLeader := len(r.players) == 0
	p := &Player{
		Conn:         msg.Conn,
		ConnID:       msg.Conn.ID(),
		PersistentID: uuid.NewString(),
		IsLeader:     isLeader,
		IsReady:      isLeader, // leader is implicitly ready
		Connected:    true,
		Cursor:       game.Point{X: 50, Y: 50},
	}

	if isLeader {
		if msg.TeamName != "" {
			r.teamName = msg.TeamName
			r.sendToDisplay(types.ServerEvent{Type: types.EvtTeamUpdated, Data: types.TeamUpdated{TeamName: r.teamName}})
		}
		p.Name = r.teamName
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("Member %d", len(r.players)+1)
	}
	r.players = append(r.players, p)

	resp := types.JoinResponse{
		Success:      true,
		IsLeader:     isLeader,
		TeamName:     r.teamName,
		PersistentID: p.PersistentID,
		Name:         p.Name,
		Snapshot:     r.roundSnapshot(p),
	}
	p.Conn.Send(types.ServerEvent{Type: types.EvtJoinResponse, Data: resp})

	r.sendToDisplay(types.ServerEvent{Type: types.EvtPlayerJoined, Data: types.PlayerJoined{
		ID:        p.ConnID,
		Name:      p.Name,
		IsLeader:  p.IsLeader,
		Connected: true,
	}})
	r.broadcastLobby()

	r.log.Info("player joined",
		zap.String("conn", p.ConnID),
		zap.String("name", p.Name),
		zap.Bool("leader", isLeader))
	msg.Reply <- true
}

// reattach binds a returning player to its new connection; score and identity
// survive the disconnect.
func (r *Room) reattach(p *Player, conn Conn) {
	p.Conn = conn
	p.ConnID = conn.ID()
	p.Connected = true

	resp := types.JoinResponse{
		Success:      true,
		IsLeader:     p.IsLeader,
		TeamName:     r.teamName,
		PersistentID: p.PersistentID,
		Name:         p.Name,
		Snapshot:     r.roundSnapshot(p),
	}
	p.Conn.Send(types.ServerEvent{Type: types.EvtJoinResponse, Data: resp})

	r.sendToDisplay(types.ServerEvent{Type: types.EvtPlayerJoined, Data: types.PlayerJoined{
		ID:        p.ConnID,
		Name:      p.Name,
		IsLeader:  p.IsLeader,
		Connected: true,
	}})
	r.broadcastLobby()

	r.log.Info("player reattached", zap.String("conn", p.ConnID), zap.String("name", p.Name))
}

// roundSnapshot is non-nil only mid-round; a controller joining during
// PLAYING must always receive it.
func (r *Room) roundSnapshot(p *Player) *types.RoundSnapshot {
	if r.status != StatusPlaying {
		return nil
	}
	return &types.RoundSnapshot{
		Score:    p.Score,
		Clue:     r.activeClue(),
		TimeLeft: r.timeLeft,
		Image:    types.ImageRef{URL: r.level.Image.URL},
	}
}

func (r *Room) handleRecoverDisplay(msg RecoverDisplay) {
	if msg.Token != r.token {
		msg.Conn.Send(types.ServerEvent{Type: types.EvtRoomRecovered, Data: types.RoomRecovered{
			Success: false,
			Error:   "Invalid Room",
		}})
		msg.Reply <- false
		return
	}

	r.display = msg.Conn
	r.displayGrace.cancel()

	state := types.RoomState{
		RoomID:   r.id,
		TeamName: r.teamName,
		Status:   string(r.status),
		TimeLeft: r.timeLeft,
	}
	for _, p := range r.players {
		state.Players = append(state.Players, types.PlayerInfo{
			ID:        p.ConnID,
			Name:      p.Name,
			IsLeader:  p.IsLeader,
			IsReady:   p.IsReady,
			Connected: p.Connected,
			Score:     p.Score,
		})
	}
	if r.status == StatusPlaying {
		state.Clue = r.activeClue()
		state.Image = &types.ImageRef{URL: r.level.Image.URL}
	}

	msg.Conn.Send(types.ServerEvent{Type: types.EvtRoomRecovered, Data: types.RoomRecovered{
		Success: true,
		State:   &state,
	}})

	r.log.Info("display recovered", zap.String("conn", msg.Conn.ID()))
	msg.Reply <- true
}

func (r *Room) handleSetReady(msg SetReady) {
	p := r.playerByConnID(msg.ConnID)
	if p == nil {
		return
	}
	p.IsReady = true
	r.broadcastLobby()
}

func (r *Room) handleStartGame(msg StartGame) {
	p := r.playerByConnID(msg.ConnID)
	if p == nil || !p.IsLeader {
		r.log.Debug("startGame ignored", zap.String("conn", msg.ConnID))
		return
	}
	if r.status == StatusPlaying {
		return
	}

	for _, pl := range r.players {
		pl.Score = 0
	}
	r.status = StatusPlaying
	r.selectLevel()

	started := types.GameStarted{
		Clue:  r.activeClue(),
		Image: types.ImageRef{URL: r.level.Image.URL},
	}
	r.broadcastAll(types.ServerEvent{Type: types.EvtGameStarted, Data: started})
	r.startRoundTimer()

	r.log.Info("game started", zap.String("image", r.level.Image.ID), zap.Int("hotspots", len(r.level.Hotspots)))
}

func (r *Room) handleCursorUpdate(msg CursorUpdate) {
	if r.status != StatusPlaying {
		return
	}
	p := r.playerByConnID(msg.ConnID)
	if p == nil {
		return
	}
	p.Cursor = game.Point{X: msg.X, Y: msg.Y}
	if r.display != nil {
		r.display.SendUnreliable(types.ServerEvent{Type: types.EvtCursorMoved, Data: types.CursorMoved{
			PlayerID: p.ConnID,
			X:        msg.X,
			Y:        msg.Y,
		}})
	}
}

func (r *Room) handleSpotObject(msg SpotObject) {
	if r.status != StatusPlaying {
		return
	}
	p := r.playerByConnID(msg.ConnID)
	if p == nil {
		return
	}

	if !game.IsHit(p.Cursor, r.activeHotspot()) {
		r.sendToDisplay(types.ServerEvent{Type: types.EvtSpotFeedback, Data: types.SpotFeedback{
			Type:     types.SpotMiss,
			PlayerID: p.ConnID,
			X:        p.Cursor.X,
			Y:        p.Cursor.Y,
		}})
		p.Conn.Send(types.ServerEvent{Type: types.EvtSpotResult, Data: types.SpotMissResult{Success: false}})
		return
	}

	p.Score += r.cfg.PointsPerHit
	r.hotspotIndex++

	// Clue exhaustion never ends the round: reselect and restart the clock.
	levelDone := r.hotspotIndex >= len(r.level.Hotspots)
	if levelDone {
		r.selectLevel()
	}

	feedback := types.SpotFeedback{
		Type:     types.SpotHit,
		PlayerID: p.ConnID,
		X:        p.Cursor.X,
		Y:        p.Cursor.Y,
		NewScore: p.Score,
		NextClue: r.activeClue(),
	}
	if levelDone {
		feedback.NewImage = &types.ImageRef{URL: r.level.Image.URL}
	}

	r.sendToDisplay(types.ServerEvent{Type: types.EvtSpotFeedback, Data: feedback})
	for _, pl := range r.players {
		if pl.Connected {
			pl.Conn.Send(types.ServerEvent{Type: types.EvtSpotResult, Data: feedback})
		}
	}

	if levelDone {
		r.startRoundTimer()
	}
}

func (r *Room) handleTimerTick(msg timerTick) {
	if msg.gen != r.timerGen || r.status != StatusPlaying {
		return
	}

	r.timeLeft--
	if r.timeLeft < 0 {
		r.timeLeft = 0
	}
	r.broadcastAll(types.ServerEvent{Type: types.EvtTimerUpdate, Data: types.TimerUpdate{TimeLeft: r.timeLeft}})

	if r.timeLeft == 0 {
		r.stopRoundTimer()
		r.endRound()
	}
}

func (r *Room) endRound() {
	r.status = StatusResults
	results := types.GameOver{
		Reason:     "TIME_UP",
		TeamName:   r.teamName,
		TotalScore: r.teamScore(),
		Players:    r.playerScores(),
		TimeLeft:   0,
	}
	r.broadcastAll(types.ServerEvent{Type: types.EvtGameOver, Data: results})
	r.log.Info("round over", zap.Int("totalScore", results.TotalScore))
}

// handleExit reports whether the exit tears the whole room down.
func (r *Room) handleExit(msg Exit) bool {
	if r.display != nil && msg.ConnID == r.display.ID() {
		return true
	}

	p := r.playerByConnID(msg.ConnID)
	if p == nil {
		return false
	}
	if p.IsLeader {
		return true
	}

	r.removePlayer(p)
	r.sendToDisplay(types.ServerEvent{Type: types.EvtPlayerLeft, Data: types.PlayerLeft{ID: p.ConnID}})
	r.broadcastLobby()
	p.Conn.Send(types.ServerEvent{Type: types.EvtExited})
	return false
}

func (r *Room) handleDisconnected(msg Disconnected) {
	if r.display != nil && msg.ConnID == r.display.ID() {
		// Not an immediate teardown: the display gets a grace window to
		// recover the room.
		r.display = nil
		r.displayGrace = r.startGrace(graceDisplay, r.displayGrace)
		r.log.Info("display disconnected, grace started", zap.Duration("grace", r.cfg.GracePeriod))
		return
	}

	p := r.playerByConnID(msg.ConnID)
	if p == nil {
		return
	}

	if p.IsLeader {
		p.Connected = false
		r.sendToDisplay(types.ServerEvent{Type: types.EvtPlayerLeft, Data: types.PlayerLeft{ID: p.ConnID}})
		r.broadcastLobby()
		r.leaderGrace = r.startGrace(graceLeader, r.leaderGrace)
		r.log.Info("leader disconnected, grace started", zap.String("conn", p.ConnID))
		return
	}

	// Non-leaders are not required for the room to continue.
	r.removePlayer(p)
	r.sendToDisplay(types.ServerEvent{Type: types.EvtPlayerLeft, Data: types.PlayerLeft{ID: p.ConnID}})
	r.broadcastLobby()
}

// handleGraceExpired reports whether the grace window lapsed without
// recovery, which tears the room down.
func (r *Room) handleGraceExpired(msg graceExpired) bool {
	switch msg.kind {
	case graceDisplay:
		if !r.displayGrace.matches(msg.gen) {
			return false
		}
		return r.display == nil

	case graceLeader:
		if !r.leaderGrace.matches(msg.gen) {
			return false
		}
		leader := r.leader()
		return leader != nil && !leader.Connected
	}
	return false
}

// teardown broadcasts the final scores as a room reset, tells everyone to
// leave, and removes the room from the registry.
func (r *Room) teardown() {
	r.stopRoundTimer()
	r.displayGrace.cancel()
	r.leaderGrace.cancel()

	r.sendToDisplay(types.ServerEvent{Type: types.EvtRoomReset, Data: types.RoomReset{
		TeamName:   r.teamName,
		TotalScore: r.teamScore(),
		Players:    r.playerScores(),
		TimeLeft:   r.timeLeft,
	}})
	for _, p := range r.players {
		if p.Connected {
			p.Conn.Send(types.ServerEvent{Type: types.EvtExited})
		}
	}

	r.cancel()
	if r.onClose != nil {
		r.onClose(r.id)
	}
	r.log.Info("room torn down")
}

func (r *Room) selectLevel() {
	prev := r.level.Image.ID
	r.level = r.selector.Select(r.teamScore(), prev)
	r.hotspotIndex = 0
}

// broadcastLobby recomputes readiness over connected players and sends the
// same payload to the display and every connected controller.
func (r *Room) broadcastLobby() {
	ready := 0
	total := 0
	allReady := true
	for _, p := range r.players {
		if !p.Connected {
			continue
		}
		total++
		if p.IsReady {
			ready++
		} else {
			allReady = false
		}
	}

	update := types.LobbyUpdate{
		AllReady:     total > 0 && allReady,
		ReadyCount:   ready,
		TotalPlayers: total,
		TeamName:     r.teamName,
		Status:       string(r.status),
	}
	r.broadcastAll(types.ServerEvent{Type: types.EvtLobbyUpdate, Data: update})
}

func (r *Room) broadcastAll(ev types.ServerEvent) {
	r.sendToDisplay(ev)
	for _, p := range r.players {
		if p.Connected {
			p.Conn.Send(ev)
		}
	}
}

func (r *Room) sendToDisplay(ev types.ServerEvent) {
	if r.display != nil {
		r.display.Send(ev)
	}
}

func (r *Room) activeHotspot() *content.Hotspot {
	if r.hotspotIndex >= len(r.level.Hotspots) {
		return nil
	}
	return &r.level.Hotspots[r.hotspotIndex]
}

func (r *Room) activeClue() string {
	if h := r.activeHotspot(); h != nil {
		return h.Clue
	}
	return ""
}

func (r *Room) teamScore() int {
	total := 0
	for _, p := range r.players {
		total += p.Score
	}
	return total
}

func (r *Room) playerScores() []types.PlayerScore {
	scores := make([]types.PlayerScore, 0, len(r.players))
	for _, p := range r.players {
		scores = append(scores, types.PlayerScore{Name: p.Name, Score: p.Score})
	}
	return scores
}

func (r *Room) playerByConnID(connID string) *Player {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) playerByPersistentID(id string) *Player {
	for _, p := range r.players {
		if p.PersistentID == id {
			return p
		}
	}
	return nil
}

func (r *Room) leader() *Player {
	for _, p := range r.players {
		if p.IsLeader {
			return p
		}
	}
	return nil
}

func (r *Room) removePlayer(p *Player) {
	for i, pl := range r.players {
		if pl == p {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return
		}
	}
}

func (r *Room) view() View {
	v := View{
		ID:           r.id,
		Status:       r.status,
		TeamName:     r.teamName,
		TimeLeft:     r.timeLeft,
		HasDisplay:   r.display != nil,
		ImageID:      r.level.Image.ID,
		HotspotCount: len(r.level.Hotspots),
		ActiveIndex:  r.hotspotIndex,
	}
	for _, p := range r.players {
		v.Players = append(v.Players, PlayerView{
			ConnID:       p.ConnID,
			PersistentID: p.PersistentID,
			Name:         p.Name,
			IsLeader:     p.IsLeader,
			IsReady:      p.IsReady,
			Connected:    p.Connected,
			Score:        p.Score,
		})
	}
	return v
}
