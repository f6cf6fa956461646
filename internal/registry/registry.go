// Package registry owns the id -> room lookup table. Like each room, it is a
// single goroutine fed by a typed inbox, so creation, lookup, and removal
// need no other synchronization.
package registry

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/content"
	"github.com/spotit-game/spotit-backend/internal/game"
	"github.com/spotit-game/spotit-backend/internal/room"
)

type Msg interface{ isRegistryMsg() }

// Create makes a room owned by the requesting display connection.
type Create struct {
	Display room.Conn
	Reply   chan Created
}

type Created struct {
	ID    string
	Token string
	Room  *room.Room
}

type Get struct {
	ID    string
	Reply chan *room.Room
}

type Remove struct{ ID string }

type GetCount struct{ Reply chan int }

type Shutdown struct{}

func (Create) isRegistryMsg()   {}
func (Get) isRegistryMsg()      {}
func (Remove) isRegistryMsg()   {}
func (GetCount) isRegistryMsg() {}
func (Shutdown) isRegistryMsg() {}

type Registry struct {
	inbox chan Msg
	rooms map[string]*room.Room

	images      []content.Image
	roomCfg     room.Config
	maxHotspots int
	log         *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, images []content.Image, roomCfg room.Config, maxHotspots int, log *zap.Logger) *Registry {
	ctx, cancel := context.WithCancel(parent)

	r := &Registry{
		inbox:       make(chan Msg, 64),
		rooms:       make(map[string]*room.Room),
		images:      images,
		roomCfg:     roomCfg,
		maxHotspots: maxHotspots,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
	go r.loop()
	return r
}

func (r *Registry) Inbox() chan<- Msg { return r.inbox }

func (r *Registry) loop() {
	for {
		select {
		case <-r.ctx.Done():
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Create:
				id := r.uniqueCode()
				token := generateToken()
				selector := game.NewSelector(r.images, r.maxHotspots)

				rm := room.NewRoom(r.ctx, id, token, msg.Display, selector,
					r.roomCfg, r.log.With(zap.String("room", id)), r.removeLater)
				r.rooms[id] = rm

				r.log.Info("room created", zap.String("room", id))
				msg.Reply <- Created{ID: id, Token: token, Room: rm}

			case Get:
				msg.Reply <- r.rooms[msg.ID] // may be nil

			case Remove:
				delete(r.rooms, msg.ID)

			case GetCount:
				msg.Reply <- len(r.rooms)

			case Shutdown:
				for _, rm := range r.rooms {
					rm.Post(room.Shutdown{})
				}
				clear(r.rooms)
				r.cancel()
				return
			}
		}
	}
}

// removeLater is handed to each room as its onClose; rooms call it from their
// own goroutine at teardown.
func (r *Registry) removeLater(id string) {
	select {
	case r.inbox <- Remove{ID: id}:
	case <-r.ctx.Done():
	}
}

// uniqueCode generates a short code not shared with any live room. Codes are
// reusable once a room is torn down.
func (r *Registry) uniqueCode() string {
	for {
		code := generateCode()
		if _, taken := r.rooms[code]; !taken {
			return code
		}
	}
}

func generateCode() string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(err) // crypto/rand failure is unrecoverable
		}
		code[i] = charset[n.Int64()]
	}
	return string(code)
}

func generateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
