package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/realtime"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSocketPair upgrades a loopback connection and returns both ends.
func newSocketPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	accepted := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		accepted <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-accepted:
	case <-time.After(5 * time.Second):
		t.Fatal("server side of socket pair never arrived")
	}
	t.Cleanup(func() { server.Close() })

	return server, client
}

func TestConnection_Send_DeliversEnvelope(t *testing.T) {
	server, client := newSocketPair(t)

	conn := ws.NewConnection(server)
	go conn.Run()
	defer conn.Close()

	err := conn.Send(realtime.Event{
		Name: realtime.EventAgentConnected,
		Data: realtime.AckPayload{Success: true},
	})
	require.NoError(t, err)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, client.ReadJSON(&frame))

	assert.Equal(t, realtime.EventAgentConnected, frame.Event)

	var ack realtime.AckPayload
	require.NoError(t, json.Unmarshal(frame.Data, &ack))
	assert.True(t, ack.Success)
}

func TestConnection_Send_AfterClose_ReturnsError(t *testing.T) {
	server, _ := newSocketPair(t)

	conn := ws.NewConnection(server)
	conn.Close()

	err := conn.Send(realtime.Event{Name: realtime.EventAgentConnected})

	require.ErrorIs(t, err, ws.ErrConnectionClosed)
}

func TestConnection_Send_BufferFull_DropsEvent(t *testing.T) {
	server, _ := newSocketPair(t)

	// No pump running, so the buffer only drains on Close.
	conn := ws.NewConnection(server)
	defer conn.Close()

	var err error
	for range 256 {
		err = conn.Send(realtime.Event{Name: realtime.EventParcelLocation})
		if err != nil {
			break
		}
	}

	require.ErrorIs(t, err, ws.ErrSendBufferFull)
}

func TestConnection_ID_StableAndUnique(t *testing.T) {
	server, _ := newSocketPair(t)
	otherServer, _ := newSocketPair(t)

	conn := ws.NewConnection(server)
	other := ws.NewConnection(otherServer)
	defer conn.Close()
	defer other.Close()

	assert.NotEmpty(t, conn.ID())
	assert.Equal(t, conn.ID(), conn.ID())
	assert.NotEqual(t, conn.ID(), other.ID())
}
