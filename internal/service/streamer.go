package service

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"gitlab.com/distributed_lab/logan/v3"
)

const (
	eventOrderCreated   = "order_created"
	eventOrderClaimed   = "order_claimed"
	eventOrderCancelled = "order_cancelled"
	eventTradeCreated   = "trade_created"
	eventPriceUpdate    = "price_update"
)

type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// streamer is the server side of the change feed: connected UIs get a
// notification envelope on every state change and re-fetch what they
// need. No ordering or dedup guarantee.
type streamer struct {
	log      *logan.Entry
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newStreamer(log *logan.Entry) *streamer {
	return &streamer{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*websocket.Conn]struct{}),
	}
}

func (s *streamer) broadcast(eventType string, payload interface{}) {
	raw, err := json.Marshal(envelope{Type: eventType, Data: payload})
	if err != nil {
		s.log.WithError(err).Error("failed to marshal event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			conn.Close()
			delete(s.clients, conn)
			wsClients.Dec()
		}
	}
}

func (s *streamer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}

		s.mu.Lock()
		s.clients[conn] = struct{}{}
		s.mu.Unlock()
		wsClients.Inc()

		go func() {
			defer func() {
				s.mu.Lock()
				if _, ok := s.clients[conn]; ok {
					delete(s.clients, conn)
					wsClients.Dec()
				}
				s.mu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
