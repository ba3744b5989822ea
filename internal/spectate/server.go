package spectate

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"lavahop/internal/arena"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Server routes spectator requests.
type Server struct {
	hub      *Hub
	router   *way.Router
	upgrader websocket.Upgrader
}

// NewServer builds the HTTP handler for hub.
func NewServer(hub *Hub) *Server {
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/state", s.handleState)
	s.router.HandleFunc("GET", "/scores", s.handleScores)
	s.router.HandleFunc("GET", "/rows/:y", s.handleRow)
	s.router.HandleFunc("GET", "/ws", s.handleWS)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) latest(w http.ResponseWriter) (arena.Snapshot, bool) {
	snap, ok := s.hub.Latest()
	if !ok {
		http.Error(w, "no match running", http.StatusServiceUnavailable)
	}
	return snap, ok
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	s.writeJSON(w, snap)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(snap.ScoreText() + "\n"))
}

func (s *Server) handleRow(w http.ResponseWriter, r *http.Request) {
	y, err := strconv.Atoi(way.Param(r.Context(), "y"))
	if err != nil {
		http.Error(w, "row must be an integer", http.StatusBadRequest)
		return
	}
	snap, ok := s.latest(w)
	if !ok {
		return
	}
	row := make([]arena.BlockView, 0, snap.LaneMax-snap.LaneMin+1)
	for _, b := range snap.Blocks {
		if b.Y == y {
			row = append(row, b)
		}
	}
	s.writeJSON(w, row)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.hub.log.WithError(err).Warn("encode response")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.hub.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := &client{hub: s.hub, conn: conn, send: make(chan []byte, sendBufSize), remote: r.RemoteAddr}
	s.hub.register(c)
	go c.writePump()
	go c.readPump()
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	remote  string
	dropped int
}

// readPump discards viewer messages and notices when the viewer leaves.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.WithError(err).Debug("viewer read")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
