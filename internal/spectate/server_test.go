package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/vmihailenco/msgpack/v5"

	"lavahop/internal/arena"
)

func startTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	hub := NewHub(logger)
	srv := httptest.NewServer(NewServer(hub))
	t.Cleanup(srv.Close)
	return hub, srv
}

func runningSnapshot(t *testing.T, ticks int) arena.Snapshot {
	t.Helper()
	cfg := arena.DefaultConfig()
	cfg.Blue = arena.ControllerAI
	w := arena.NewWithConfig(cfg)
	logger, _ := test.NewNullLogger()
	w.SetLogger(logger)
	w.Start()
	for i := 0; i < ticks; i++ {
		w.Step(1.0 / 60)
	}
	return w.Snapshot()
}

func TestStateBeforePublish(t *testing.T) {
	_, srv := startTestServer(t)
	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", resp.StatusCode)
	}
}

func TestStateReturnsLatestSnapshot(t *testing.T) {
	hub, srv := startTestServer(t)
	snap := runningSnapshot(t, 120)
	if err := hub.Publish(snap); err != nil {
		t.Fatalf("publish: %v", err)
	}

	resp, err := http.Get(srv.URL + "/state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var got arena.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != snap.Tick || got.Phase != "running" || len(got.Blocks) != len(snap.Blocks) {
		t.Fatalf("unexpected state tick=%d phase=%q blocks=%d", got.Tick, got.Phase, len(got.Blocks))
	}
}

func TestScoresAndRows(t *testing.T) {
	hub, srv := startTestServer(t)
	snap := runningSnapshot(t, 1)
	hub.Publish(snap)

	resp, err := http.Get(srv.URL + "/scores")
	if err != nil {
		t.Fatalf("get scores: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(string(body), "red: 0\nblue: 0") {
		t.Fatalf("scores body %q", body)
	}

	resp, err = http.Get(srv.URL + "/rows/3")
	if err != nil {
		t.Fatalf("get row: %v", err)
	}
	var row []arena.BlockView
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		t.Fatalf("decode row: %v", err)
	}
	resp.Body.Close()
	// Both start cells sit on row 3.
	if len(row) < 2 {
		t.Fatalf("row 3 has %d blocks, want at least 2", len(row))
	}
	for _, b := range row {
		if b.Y != 3 {
			t.Fatalf("row endpoint returned block on row %d", b.Y)
		}
	}

	resp, err = http.Get(srv.URL + "/rows/top")
	if err != nil {
		t.Fatalf("get bad row: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestWebsocketStreamsSnapshots(t *testing.T) {
	hub, srv := startTestServer(t)
	first := runningSnapshot(t, 10)
	hub.Publish(first)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	got := readFrame(t, conn)
	if got.Tick != first.Tick {
		t.Fatalf("first frame tick %d, want %d", got.Tick, first.Tick)
	}

	second := runningSnapshot(t, 20)
	hub.Publish(second)
	got = readFrame(t, conn)
	if got.Tick != second.Tick || len(got.Players) != 2 {
		t.Fatalf("second frame tick %d players %d", got.Tick, len(got.Players))
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	deadline := time.Now().Add(2 * time.Second)
	for hub.Viewers() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Viewers() != 0 {
		t.Fatal("viewer was not unregistered after close")
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) arena.Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("frame type %d, want binary", kind)
	}
	var s arena.Snapshot
	if err := msgpack.Unmarshal(raw, &s); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	return s
}
