package funnels

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrFunnelNotFound = errors.New("funil não encontrado")
	ErrNotLoaded      = errors.New("nenhum funil carregado")
)

type FunnelGetter interface {
	GetOne(ctx context.Context, id string) (*schemas.Funnel, error)
}

type LeadMover interface {
	Move(ctx context.Context, id string, input schemas.MoveLeadInput) error
}

// Controller guarda a projeção em memória de um funil (etapas e leads) e a
// reconcilia com respostas REST e eventos ao vivo.
type Controller struct {
	mu      sync.RWMutex
	funnel  *schemas.Funnel
	funnels FunnelGetter
	leads   LeadMover
	logger  *zap.SugaredLogger
}

func NewController(funnels FunnelGetter, leads LeadMover, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		funnels: funnels,
		leads:   leads,
		logger:  logger,
	}
}

// Load busca o funil com etapas e leads e substitui a projeção atual. Sem retry.
func (c *Controller) Load(ctx context.Context, id string) (*schemas.Funnel, error) {
	funnel, err := c.funnels.GetOne(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFunnelNotFound, id, err)
		}
		c.logger.Errorw("failed to load funnel", "funnel_id", id, "error", err)
		return nil, err
	}
	if funnel.ID == "" {
		funnel.ID = id
	}

	c.mu.Lock()
	c.funnel = funnel
	c.mu.Unlock()

	return c.Snapshot(), nil
}

// MoveLead chama o backend e recarrega o funil inteiro. Em caso de falha a
// projeção fica como estava.
func (c *Controller) MoveLead(ctx context.Context, leadID, targetStageID string, order int) (*schemas.Funnel, error) {
	current := c.Snapshot()
	if current == nil {
		return nil, ErrNotLoaded
	}

	input := schemas.MoveLeadInput{StageID: targetStageID, Order: order}
	if err := c.leads.Move(ctx, leadID, input); err != nil {
		c.logger.Errorw("failed to move lead", "funnel_id", current.ID, "lead_id", leadID, "stage_id", targetStageID, "error", err)
		return nil, err
	}

	return c.Load(ctx, current.ID)
}

// Reload recarrega o funil atual, usado depois de qualquer mutação e na reconexão.
func (c *Controller) Reload(ctx context.Context) (*schemas.Funnel, error) {
	current := c.Snapshot()
	if current == nil {
		return nil, ErrNotLoaded
	}
	return c.Load(ctx, current.ID)
}

// Apply aplica um evento ao vivo. Devolve true quando a projeção mudou.
func (c *Controller) Apply(evt schemas.FunnelEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed, err := ApplyEvent(c.funnel, evt)
	if err != nil {
		c.logger.Warnw("ignoring funnel event", "funnel_id", evt.FunnelID, "event", evt.Event, "error", err)
		return false
	}
	if changed {
		c.funnel = next
	}
	return changed
}

// Snapshot devolve uma cópia da projeção, ou nil se nada foi carregado.
func (c *Controller) Snapshot() *schemas.Funnel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.funnel == nil {
		return nil
	}
	return cloneFunnel(c.funnel)
}

func (c *Controller) FindLead(leadID string) (*schemas.Lead, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.funnel == nil {
		return nil, ""
	}
	for _, stage := range c.funnel.Stages {
		for _, lead := range stage.Leads {
			if lead.ID == leadID {
				found := lead
				return &found, stage.ID
			}
		}
	}
	return nil, ""
}

func (c *Controller) FindStage(stageID string) *schemas.Stage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.funnel == nil {
		return nil
	}
	for _, stage := range c.funnel.Stages {
		if stage.ID == stageID {
			found := stage
			return &found
		}
	}
	return nil
}
