// Package spectate serves read-only views of a running match over HTTP and
// websockets. It never touches the World; the game loop publishes snapshots.
package spectate

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"lavahop/internal/arena"
)

const sendBufSize = 16

// Hub holds the latest snapshot and fans encoded frames out to viewers.
type Hub struct {
	mu      sync.RWMutex
	latest  arena.Snapshot
	frame   []byte
	have    bool
	clients map[*client]struct{}

	log log.FieldLogger
}

// NewHub returns an empty hub. A nil logger uses the standard logger.
func NewHub(logger log.FieldLogger) *Hub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Hub{clients: make(map[*client]struct{}), log: logger}
}

// Publish stores s and queues it for every connected viewer. The snapshot
// must not be modified afterwards. Slow viewers drop frames.
func (h *Hub) Publish(s arena.Snapshot) error {
	frame, err := msgpack.Marshal(&s)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = s
	h.frame = frame
	h.have = true
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			c.dropped++
		}
	}
	return nil
}

// Latest returns the most recent snapshot.
func (h *Hub) Latest() (arena.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.have
}

// Viewers returns the number of connected websocket viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.have {
		c.send <- h.frame
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.WithFields(log.Fields{"remote": c.remote, "viewers": n}).Info("viewer connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	dropped := c.dropped
	h.mu.Unlock()
	h.log.WithFields(log.Fields{"remote": c.remote, "viewers": n, "dropped": dropped}).Info("viewer disconnected")
}
