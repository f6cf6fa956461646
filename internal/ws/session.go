package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/pkg/types"
)

const (
	outboxSize   = 64
	writeTimeout = 3 * time.Second
)

// session adapts one websocket connection to the room.Conn interface.
// Reliable events queue on out in order; cursor traffic lives in a
// capacity-1 latest-wins slot so stale positions are overwritten, never
// queued.
type session struct {
	conn *websocket.Conn
	id   string
	log  *zap.Logger

	out    chan types.ServerEvent
	cursor chan types.ServerEvent
	done   chan struct{}
}

func newSession(conn *websocket.Conn, log *zap.Logger) *session {
	id := randID(8)
	return &session{
		conn:   conn,
		id:     id,
		log:    log.With(zap.String("conn", id)),
		out:    make(chan types.ServerEvent, outboxSize),
		cursor: make(chan types.ServerEvent, 1),
		done:   make(chan struct{}),
	}
}

func (s *session) ID() string { return s.id }

func (s *session) Send(ev types.ServerEvent) {
	select {
	case s.out <- ev:
	default:
		// Outbox full means the client stopped reading; it will be
		// disconnected by its own read loop soon enough.
		s.log.Warn("outbox full, dropping event", zap.String("event", ev.Type))
	}
}

func (s *session) SendUnreliable(ev types.ServerEvent) {
	for {
		select {
		case s.cursor <- ev:
			return
		case <-s.done:
			return
		default:
		}
		// Slot occupied: discard the stale value and retry.
		select {
		case <-s.cursor:
		default:
		}
	}
}

func (s *session) writeLoop(ctx context.Context) {
	for {
		var ev types.ServerEvent
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case ev = <-s.out:
		case ev = <-s.cursor:
		}

		payload, err := json.Marshal(ev)
		if err != nil {
			s.log.Error("marshal event", zap.String("event", ev.Type), zap.Error(err))
			continue
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err = s.conn.Write(wctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			return
		}
	}
}

func (s *session) close() {
	close(s.done)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
