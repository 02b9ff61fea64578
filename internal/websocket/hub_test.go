package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d clients", want)
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Shutdown()

	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)

	hub.AnnounceDatasetUpdated(context.Background(), "snap-1", []int{2022, 2021}, 321)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(frame, &msg))
	assert.Equal(t, TypeDatasetUpdated, msg.Type)
	assert.Equal(t, "snap-1", msg.SnapshotID)
	assert.Equal(t, []int{2022, 2021}, msg.Years)
	assert.Equal(t, 321, msg.Rows)
	assert.False(t, msg.At.IsZero())
}

func TestHub_UnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Shutdown()

	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_ShutdownIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Start()

	hub.Shutdown()
	hub.Shutdown()
}

func TestSettings_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "zero values take defaults",
			in:   Settings{},
			want: Settings{
				ReadBufferSize:  defaultBufferSize,
				WriteBufferSize: defaultBufferSize,
				PongWait:        defaultPongWait,
				PingPeriod:      defaultPongWait * 9 / 10,
			},
		},
		{
			name: "explicit values kept",
			in: Settings{
				ReadBufferSize:  2048,
				WriteBufferSize: 4096,
				PongWait:        30 * time.Second,
				PingPeriod:      20 * time.Second,
			},
			want: Settings{
				ReadBufferSize:  2048,
				WriteBufferSize: 4096,
				PongWait:        30 * time.Second,
				PingPeriod:      20 * time.Second,
			},
		},
		{
			name: "ping period above pong wait is rederived",
			in:   Settings{PongWait: 10 * time.Second, PingPeriod: time.Minute},
			want: Settings{
				ReadBufferSize:  defaultBufferSize,
				WriteBufferSize: defaultBufferSize,
				PongWait:        10 * time.Second,
				PingPeriod:      9 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}
