package ws

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/registry"
	"github.com/spotit-game/spotit-backend/internal/room"
	"github.com/spotit-game/spotit-backend/pkg/types"
)

// Handler upgrades the connection and runs its read loop. Each message is
// routed to the registry or the room the session is bound to; the room does
// all the thinking.
func Handler(reg *registry.Registry, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		s := newSession(conn, log)
		go s.writeLoop(r.Context())
		defer s.close()

		var bound *room.Room
		defer func() {
			if bound != nil {
				bound.Post(room.Disconnected{ConnID: s.id})
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				s.Send(types.ServerEvent{Type: types.EvtError, Data: types.Error{Message: "bad json"}})
				continue
			}

			switch cm.Type {
			case types.MsgProbeRoom:
				if rm := lookup(reg, cm.RoomID); rm != nil {
					reply := make(chan room.Info, 1)
					if rm.Post(room.GetInfo{Reply: reply}) {
						select {
						case info := <-reply:
							s.Send(types.ServerEvent{Type: types.EvtRoomInfo, Data: types.RoomInfo{
								TeamName: info.TeamName,
								Status:   string(info.Status),
							}})
						case <-rm.Done():
						}
					}
				}
				// Unknown rooms get silence, not an error.

			case types.MsgCreateRoom:
				if bound != nil {
					continue
				}
				reply := make(chan registry.Created, 1)
				reg.Inbox() <- registry.Create{Display: s, Reply: reply}
				created := <-reply
				bound = created.Room
				s.Send(types.ServerEvent{Type: types.EvtRoomCreated, Data: types.RoomCreated{
					RoomID: created.ID,
					Token:  created.Token,
				}})

			case types.MsgRecoverRoom:
				if bound != nil {
					continue
				}
				rm := lookup(reg, cm.RoomID)
				if rm == nil {
					s.Send(types.ServerEvent{Type: types.EvtRoomRecovered, Data: types.RoomRecovered{
						Success: false,
						Error:   "Invalid Room",
					}})
					continue
				}
				reply := make(chan bool, 1)
				if rm.Post(room.RecoverDisplay{Conn: s, Token: cm.Token, Reply: reply}) {
					select {
					case ok := <-reply:
						if ok {
							bound = rm
						}
					case <-rm.Done():
					}
				}

			case types.MsgJoinRoom:
				if bound != nil {
					continue
				}
				rm := lookup(reg, cm.RoomID)
				if rm == nil {
					s.Send(types.ServerEvent{Type: types.EvtJoinResponse, Data: types.JoinResponse{
						Success: false,
						Error:   "Invalid Room",
					}})
					continue
				}
				reply := make(chan bool, 1)
				if rm.Post(room.Join{
					Conn:         s,
					Token:        cm.Token,
					TeamName:     cm.TeamName,
					PersistentID: cm.PersistentID,
					Reply:        reply,
				}) {
					select {
					case ok := <-reply:
						if ok {
							bound = rm
						}
					case <-rm.Done():
					}
				}

			case types.MsgSetReady:
				if bound != nil {
					bound.Post(room.SetReady{ConnID: s.id})
				}

			case types.MsgStartGame:
				if bound != nil {
					bound.Post(room.StartGame{ConnID: s.id})
				}

			case types.MsgCursorUpdate:
				if bound != nil {
					bound.Post(room.CursorUpdate{ConnID: s.id, X: cm.X, Y: cm.Y})
				}

			case types.MsgSpotObject:
				if bound != nil {
					bound.Post(room.SpotObject{ConnID: s.id})
				}

			case types.MsgExitRoom:
				if bound != nil {
					bound.Post(room.Exit{ConnID: s.id})
					bound = nil
				}

			default:
				s.Send(types.ServerEvent{Type: types.EvtError, Data: types.Error{Message: "unknown type"}})
			}
		}
	}
}

func lookup(reg *registry.Registry, roomID string) *room.Room {
	if roomID == "" {
		return nil
	}
	reply := make(chan *room.Room, 1)
	reg.Inbox() <- registry.Get{ID: roomID, Reply: reply}
	return <-reply
}
