package realtime

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const DEFAULT_RECONNECT_DELAY = 3 * time.Second

type EventHandler func(evt schemas.FunnelEvent)

// Subscriber assina o canal de atualizações ao vivo de um funil no backend.
type Subscriber struct {
	baseURL        string
	header         http.Header
	dialer         *websocket.Dialer
	ReconnectDelay time.Duration
	logger         *zap.SugaredLogger
}

// NewSubscriber converte a URL http(s) da API na URL ws(s) equivalente.
func NewSubscriber(apiBaseURL string, header http.Header, logger *zap.SugaredLogger) (*Subscriber, error) {
	parsed, err := url.Parse(apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("url da api inválida: %w", err)
	}
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("esquema não suportado para websocket: %s", parsed.Scheme)
	}

	return &Subscriber{
		baseURL:        strings.TrimRight(parsed.String(), "/"),
		header:         header,
		dialer:         websocket.DefaultDialer,
		ReconnectDelay: DEFAULT_RECONNECT_DELAY,
		logger:         logger,
	}, nil
}

func (s *Subscriber) funnelURL(funnelID string) string {
	return fmt.Sprintf("%s/ws/funnels/%s", s.baseURL, url.PathEscape(funnelID))
}

// Run fica conectado até ctx ser cancelado. Cada reconexão depois da primeira
// chama onReconnect, para que o dono do estado possa recarregar o que perdeu.
func (s *Subscriber) Run(ctx context.Context, funnelID string, handle EventHandler, onReconnect func()) {
	connectedBefore := false

	for {
		err := s.listen(ctx, funnelID, handle, func() {
			if connectedBefore && onReconnect != nil {
				onReconnect()
			}
			connectedBefore = true
		})
		if ctx.Err() != nil {
			return
		}
		s.logger.Warnw("funnel subscription dropped", "funnel_id", funnelID, "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.ReconnectDelay):
		}
	}
}

func (s *Subscriber) listen(ctx context.Context, funnelID string, handle EventHandler, onConnect func()) error {
	header := http.Header{}
	for key, values := range s.header {
		header[key] = append([]string(nil), values...)
	}
	if token := backend.TokenFrom(ctx); token != "" {
		header.Set("Authorization", token)
	}

	conn, _, err := s.dialer.DialContext(ctx, s.funnelURL(funnelID), header)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	onConnect()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		evt := schemas.FunnelEvent{}
		if err := json.Unmarshal(payload, &evt); err != nil {
			s.logger.Warnw("ignoring malformed funnel event", "funnel_id", funnelID, "error", err)
			continue
		}
		handle(evt)
	}
}
