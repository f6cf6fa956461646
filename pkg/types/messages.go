package types

// Client -> Server
// probeRoom:
//   roomId: string
//
// createRoom: {}        (sent by the display; the connection becomes the screen)
//
// recoverRoom:
//   roomId: string
//   token: string
//
// joinRoom:
//   roomId: string
//   token: string
//   teamName: string     (optional; first joiner names the team)
//   persistentId: string (optional; reconnection key)
//
// setReady: {}
// startGame: {}          (leader only)
// cursorUpdate: { x, y } (best effort, 0-100 normalized space)
// spotObject: {}
// exitRoom: {}

const (
	MsgProbeRoom    = "probeRoom"
	MsgCreateRoom   = "createRoom"
	MsgRecoverRoom  = "recoverRoom"
	MsgJoinRoom     = "joinRoom"
	MsgSetReady     = "setReady"
	MsgStartGame    = "startGame"
	MsgCursorUpdate = "cursorUpdate"
	MsgSpotObject   = "spotObject"
	MsgExitRoom     = "exitRoom"
)

// ClientMessage is the flat decode target for every inbound message; fields
// not used by a given type are simply left zero.
type ClientMessage struct {
	Type         string  `json:"type"`
	RoomID       string  `json:"roomId,omitempty"`
	Token        string  `json:"token,omitempty"`
	TeamName     string  `json:"teamName,omitempty"`
	PersistentID string  `json:"persistentId,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// ServerEvent is the outbound envelope. Data holds one of the payload types
// in events.go and marshals as {"type":..., "data":{...}}.
type ServerEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
