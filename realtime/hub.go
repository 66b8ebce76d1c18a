package realtime

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub mantém os sockets dos navegadores agrupados por canal (um canal por funil).
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		channels: make(map[string]map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Hub) register(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*websocket.Conn]bool)
	}
	h.channels[channel][conn] = true
}

func (h *Hub) unregister(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.channels[channel]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Listeners devolve quantos navegadores estão conectados ao canal.
func (h *Hub) Listeners(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}

func (h *Hub) Broadcast(channel string, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.channels[channel] {
		err := client.WriteJSON(msg)
		if err != nil {
			h.logger.Debugw("dropping websocket client", "channel", channel, "error", err)
			client.Close()
			delete(h.channels[channel], client)
		}
	}
	if len(h.channels[channel]) == 0 {
		delete(h.channels, channel)
	}
}

// Serve faz o upgrade, envia initial (se houver) e segura a conexão até o
// navegador fechar. onLeave é chamado com o número de ouvintes restantes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, channel string, initial any, onLeave func(remaining int)) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if initial != nil {
		if err := conn.WriteJSON(initial); err != nil {
			return err
		}
	}

	h.register(channel, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister(channel, conn)
	if onLeave != nil {
		onLeave(h.Listeners(channel))
	}
	return nil
}
