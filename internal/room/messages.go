package room

import "github.com/spotit-game/spotit-backend/pkg/types"

// Conn is one transport connection the room emits events to. The ws session
// implements it; tests use a channel-backed fake.
type Conn interface {
	ID() string
	// Send queues a reliable, ordered event.
	Send(ev types.ServerEvent)
	// SendUnreliable queues a best-effort event; stale values may be dropped.
	SendUnreliable(ev types.ServerEvent)
}

type Msg interface{ isRoomMsg() }

// Join is a controller joining (or, with a PersistentID match, rejoining).
// Reply receives true when the join was accepted.
type Join struct {
	Conn         Conn
	Token        string
	TeamName     string
	PersistentID string
	Reply        chan bool
}

// RecoverDisplay reattaches a connection as the room's display after a drop.
type RecoverDisplay struct {
	Conn  Conn
	Token string
	Reply chan bool
}

type SetReady struct{ ConnID string }

type StartGame struct{ ConnID string }

type CursorUpdate struct {
	ConnID string
	X, Y   float64
}

type SpotObject struct{ ConnID string }

type Exit struct{ ConnID string }

// Disconnected is posted by the transport when a connection drops without an
// explicit exit.
type Disconnected struct{ ConnID string }

// GetInfo answers probeRoom.
type GetInfo struct{ Reply chan Info }

// GetState reflects internal state without data races; test-only.
type GetState struct{ Reply chan View }

type Shutdown struct{}

// timerTick and graceExpired are self-posted so timer mutation goes through
// the same serialization as external events. Stale generations are ignored.
type timerTick struct{ gen int }

type graceKind int

const (
	graceDisplay graceKind = iota
	graceLeader
)

type graceExpired struct {
	kind graceKind
	gen  int
}

func (Join) isRoomMsg()           {}
func (RecoverDisplay) isRoomMsg() {}
func (SetReady) isRoomMsg()       {}
func (StartGame) isRoomMsg()      {}
func (CursorUpdate) isRoomMsg()   {}
func (SpotObject) isRoomMsg()     {}
func (Exit) isRoomMsg()           {}
func (Disconnected) isRoomMsg()   {}
func (GetInfo) isRoomMsg()        {}
func (GetState) isRoomMsg()       {}
func (Shutdown) isRoomMsg()       {}
func (timerTick) isRoomMsg()      {}
func (graceExpired) isRoomMsg()   {}

type Info struct {
	TeamName string
	Status   Status
}

// View is a copy of the room's state for tests and probes.
type View struct {
	ID           string
	Status       Status
	TeamName     string
	TimeLeft     int
	HasDisplay   bool
	ImageID      string
	HotspotCount int
	ActiveIndex  int
	Players      []PlayerView
}

type PlayerView struct {
	ConnID       string
	PersistentID string
	Name         string
	IsLeader     bool
	IsReady      bool
	Connected    bool
	Score        int
}
