package types

// Server -> Client event names. spotFeedback goes to the display, spotResult
// to controllers; cursorMoved rides the unreliable channel.
const (
	EvtRoomInfo      = "roomInfo"
	EvtRoomCreated   = "roomCreated"
	EvtRoomRecovered = "roomRecovered"
	EvtJoinResponse  = "joinResponse"
	EvtLobbyUpdate   = "lobbyUpdate"
	EvtTeamUpdated   = "teamUpdated"
	EvtPlayerJoined  = "playerJoined"
	EvtPlayerLeft    = "playerLeft"
	EvtGameStarted   = "gameStarted"
	EvtTimerUpdate   = "timerUpdate"
	EvtSpotFeedback  = "spotFeedback"
	EvtSpotResult    = "spotResult"
	EvtCursorMoved   = "cursorMoved"
	EvtGameOver      = "gameOver"
	EvtRoomReset     = "roomReset"
	EvtExited        = "exited"
	EvtError         = "error"
)

const (
	SpotHit  = "HIT"
	SpotMiss = "MISS"
)

type ImageRef struct {
	URL string `json:"url"`
}

type RoomInfo struct {
	TeamName string `json:"teamName"`
	Status   string `json:"status"`
}

type RoomCreated struct {
	RoomID string `json:"roomId"`
	Token  string `json:"token"`
}

// RoundSnapshot lets a controller that joins (or rejoins) mid-round resume
// exactly where the room is.
type RoundSnapshot struct {
	Score    int      `json:"score"`
	Clue     string   `json:"clue"`
	TimeLeft int      `json:"timeLeft"`
	Image    ImageRef `json:"image"`
}

type JoinResponse struct {
	Success      bool           `json:"success"`
	Error        string         `json:"error,omitempty"`
	IsLeader     bool           `json:"isLeader,omitempty"`
	TeamName     string         `json:"teamName,omitempty"`
	PersistentID string         `json:"persistentId,omitempty"`
	Name         string         `json:"name,omitempty"`
	Snapshot     *RoundSnapshot `json:"snapshot,omitempty"`
}

type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsLeader  bool   `json:"isLeader"`
	IsReady   bool   `json:"isReady"`
	Connected bool   `json:"connected"`
	Score     int    `json:"score"`
}

// RoomState is the full replay sent to a display that recovers a room.
type RoomState struct {
	RoomID   string       `json:"roomId"`
	TeamName string       `json:"teamName"`
	Status   string       `json:"status"`
	TimeLeft int          `json:"timeLeft"`
	Players  []PlayerInfo `json:"players"`
	Clue     string       `json:"clue,omitempty"`
	Image    *ImageRef    `json:"image,omitempty"`
}

type RoomRecovered struct {
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	State   *RoomState `json:"state,omitempty"`
}

type LobbyUpdate struct {
	AllReady     bool   `json:"allReady"`
	ReadyCount   int    `json:"readyCount"`
	TotalPlayers int    `json:"totalPlayers"`
	TeamName     string `json:"teamName"`
	Status       string `json:"status"`
}

type TeamUpdated struct {
	TeamName string `json:"teamName"`
}

type PlayerJoined struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsLeader  bool   `json:"isLeader"`
	Connected bool   `json:"connected"`
}

type PlayerLeft struct {
	ID string `json:"id"`
}

type GameStarted struct {
	Clue  string   `json:"clue"`
	Image ImageRef `json:"image"`
}

type TimerUpdate struct {
	TimeLeft int `json:"timeLeft"`
}

// SpotFeedback doubles as the hit-side spotResult payload: NextClue is always
// present on a hit, NewImage only when the hit completed the level.
type SpotFeedback struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	NewScore int       `json:"newScore,omitempty"`
	NextClue string    `json:"nextClue,omitempty"`
	NewImage *ImageRef `json:"newImage,omitempty"`
}

// SpotMissResult is sent only to the player whose attempt missed.
type SpotMissResult struct {
	Success bool `json:"success"`
}

type CursorMoved struct {
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type PlayerScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GameOver struct {
	Reason     string        `json:"reason"`
	TeamName   string        `json:"teamName"`
	TotalScore int           `json:"totalScore"`
	Players    []PlayerScore `json:"players"`
	TimeLeft   int           `json:"timeLeft"`
}

// RoomReset is the display-facing farewell when a room is torn down rather
// than finished: same scores as GameOver but framed as a reset.
type RoomReset struct {
	TeamName   string        `json:"teamName"`
	TotalScore int           `json:"totalScore"`
	Players    []PlayerScore `json:"players"`
	TimeLeft   int           `json:"timeLeft"`
}

type Error struct {
	Message string `json:"message"`
}
