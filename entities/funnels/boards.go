package funnels

import (
	"context"
	"dashboard/backend"
	"dashboard/realtime"
	"dashboard/schemas"
	"sync"

	"go.uber.org/zap"
)

type Subscription interface {
	Run(ctx context.Context, funnelID string, handle realtime.EventHandler, onReconnect func())
}

type Broadcaster interface {
	Broadcast(channel string, msg any)
}

// liveBoard guarda um token por navegador conectado, na ordem de chegada. O
// último é o usado pela assinatura e pelas recargas.
type liveBoard struct {
	controller *Controller
	cancel     context.CancelFunc
	tokens     []string
}

func (l *liveBoard) removeToken(token string) {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if l.tokens[i] == token {
			l.tokens = append(l.tokens[:i], l.tokens[i+1:]...)
			return
		}
	}
}

// Boards mantém um Controller por funil que tem navegadores conectados. Cada
// funil vivo tem sua própria assinatura ao canal do backend.
type Boards struct {
	mu           sync.Mutex
	live         map[string]*liveBoard
	funnels      FunnelGetter
	leads        LeadMover
	subscription Subscription
	hub          Broadcaster
	logger       *zap.SugaredLogger
}

func NewBoards(funnels FunnelGetter, leads LeadMover, subscription Subscription, hub Broadcaster, logger *zap.SugaredLogger) *Boards {
	return &Boards{
		live:         make(map[string]*liveBoard),
		funnels:      funnels,
		leads:        leads,
		subscription: subscription,
		hub:          hub,
		logger:       logger,
	}
}

// Controller devolve o controller vivo do funil ou um avulso, sem assinatura.
func (b *Boards) Controller(funnelID string) *Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	if board, ok := b.live[funnelID]; ok {
		return board.controller
	}
	return NewController(b.funnels, b.leads, b.logger)
}

func (b *Boards) IsLive(funnelID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.live[funnelID]
	return ok
}

// Watch registra um navegador no funil. O backend é consultado com o contexto
// de quem chega mesmo quando o funil já está vivo: é ele que decide o acesso.
// Cada Watch bem-sucedido precisa de um Release com o mesmo token.
func (b *Boards) Watch(ctx context.Context, funnelID, token string) (*schemas.Funnel, error) {
	controller := NewController(b.funnels, b.leads, b.logger)
	funnel, err := controller.Load(ctx, funnelID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if board, ok := b.live[funnelID]; ok {
		board.tokens = append(board.tokens, token)
		return board.controller.Snapshot(), nil
	}

	board := &liveBoard{controller: controller, tokens: []string{token}}
	subCtx, cancel := context.WithCancel(backend.WithTokenSource(context.Background(), func() string {
		return b.currentToken(board)
	}))
	board.cancel = cancel
	b.live[funnelID] = board

	go b.subscription.Run(subCtx, funnelID, func(evt schemas.FunnelEvent) {
		if controller.Apply(evt) {
			b.hub.Broadcast(funnelID, schemas.FunnelWSMessage{Action: "update", Board: controller.Snapshot(), Event: evt.Event})
		}
	}, func() {
		reloaded, err := controller.Reload(subCtx)
		if err != nil {
			b.logger.Warnw("resync after reconnect failed", "funnel_id", funnelID, "error", err)
			return
		}
		b.hub.Broadcast(funnelID, schemas.FunnelWSMessage{Action: "reload", Board: reloaded})
	})

	return funnel, nil
}

func (b *Boards) currentToken(board *liveBoard) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(board.tokens) == 0 {
		return ""
	}
	return board.tokens[len(board.tokens)-1]
}

// Release tira um navegador do funil. A assinatura só é encerrada quando o
// último sai.
func (b *Boards) Release(funnelID, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	board, ok := b.live[funnelID]
	if !ok {
		return
	}
	board.removeToken(token)
	if len(board.tokens) > 0 {
		return
	}
	board.cancel()
	delete(b.live, funnelID)
}

// Stop encerra a assinatura do funil independente de quantos navegadores
// restam. Usado quando o funil é excluído.
func (b *Boards) Stop(funnelID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if board, ok := b.live[funnelID]; ok {
		board.cancel()
		delete(b.live, funnelID)
	}
}

// Refresh recarrega o funil se ele estiver vivo e avisa os navegadores.
// Usado depois de mutações REST feitas fora do quadro.
func (b *Boards) Refresh(ctx context.Context, funnelID string) {
	b.mu.Lock()
	board, ok := b.live[funnelID]
	b.mu.Unlock()
	if !ok {
		return
	}
	funnel, err := board.controller.Load(ctx, funnelID)
	if err != nil {
		b.logger.Warnw("failed to reload live funnel", "funnel_id", funnelID, "error", err)
		return
	}
	b.Publish(funnel)
}

// Publish envia o estado recarregado para os navegadores do funil.
func (b *Boards) Publish(funnel *schemas.Funnel) {
	if funnel == nil {
		return
	}
	b.hub.Broadcast(funnel.ID, schemas.FunnelWSMessage{Action: "reload", Board: funnel})
}
