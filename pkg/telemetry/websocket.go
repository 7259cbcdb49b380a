package telemetry

import (
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// Hub serves telemetry to websocket clients. Every published message is
// sent as one binary frame holding a sealed Envelope.
type Hub struct {
	lock    sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Handler returns the websocket endpoint.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *Hub) serve(conn *websocket.Conn) {
	h.lock.Lock()
	h.clients[conn] = struct{}{}
	h.lock.Unlock()
	glog.V(1).Infof("telemetry client %s connected", conn.Request().RemoteAddr)
	defer h.drop(conn)
	var discard []byte
	for {
		if err := websocket.Message.Receive(conn, &discard); err != nil {
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.lock.Lock()
	delete(h.clients, conn)
	h.lock.Unlock()
	conn.Close()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// Publish implements Publisher. Clients failing to receive are dropped.
func (h *Hub) Publish(msg Message) error {
	data, err := Seal(msg)
	if err != nil {
		return err
	}
	h.lock.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.lock.Unlock()
	for _, c := range conns {
		if err := websocket.Message.Send(c, data); err != nil {
			glog.Warningf("telemetry client dropped: %v", err)
			h.drop(c)
		}
	}
	return nil
}

// Receive reads one message from a websocket connected to a Hub.
func Receive(conn *websocket.Conn) (Message, error) {
	var data []byte
	if err := websocket.Message.Receive(conn, &data); err != nil {
		return nil, err
	}
	return Open(data)
}
