package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/content"
	"github.com/spotit-game/spotit-backend/internal/room"
	"github.com/spotit-game/spotit-backend/pkg/types"
)

type fakeConn struct {
	id     string
	events chan types.ServerEvent
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, events: make(chan types.ServerEvent, 64)}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(ev types.ServerEvent) {
	select {
	case c.events <- ev:
	default:
	}
}

func (c *fakeConn) SendUnreliable(ev types.ServerEvent) { c.Send(ev) }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, content.Defaults(), room.DefaultConfig(), 8, zap.NewNop())
}

func create(t *testing.T, reg *Registry, display room.Conn) Created {
	t.Helper()
	reply := make(chan Created, 1)
	reg.Inbox() <- Create{Display: display, Reply: reply}
	select {
	case c := <-reply:
		return c
	case <-time.After(time.Second):
		t.Fatalf("create timed out")
		return Created{}
	}
}

func get(t *testing.T, reg *Registry, id string) *room.Room {
	t.Helper()
	reply := make(chan *room.Room, 1)
	reg.Inbox() <- Get{ID: id, Reply: reply}
	select {
	case rm := <-reply:
		return rm
	case <-time.After(time.Second):
		t.Fatalf("get timed out")
		return nil
	}
}

func TestRegistry_CreateThenGetSamePointer(t *testing.T) {
	reg := newTestRegistry(t)

	created := create(t, reg, newFakeConn("display"))
	require.Len(t, created.ID, 6)
	require.Len(t, created.Token, 32)
	require.NotNil(t, created.Room)

	require.Same(t, created.Room, get(t, reg, created.ID))
}

func TestRegistry_UnknownRoomIsNil(t *testing.T) {
	reg := newTestRegistry(t)
	require.Nil(t, get(t, reg, "NOPE42"))
}

func TestRegistry_CodesAreUniqueAmongLiveRooms(t *testing.T) {
	reg := newTestRegistry(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		created := create(t, reg, newFakeConn("display"))
		require.False(t, seen[created.ID], "code %s reused while live", created.ID)
		seen[created.ID] = true
	}
}

func TestRegistry_RoomRemovedAfterTeardown(t *testing.T) {
	reg := newTestRegistry(t)

	display := newFakeConn("display")
	created := create(t, reg, display)

	// The display exiting tears the room down, which removes it here.
	created.Room.Post(room.Exit{ConnID: "display"})

	deadline := time.After(time.Second)
	for {
		if get(t, reg, created.ID) == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("room never removed from registry")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
