package followup

import (
	"context"
	"dashboard/schemas"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PLACEHOLDER_PREFIX marca etapas que ainda não existem no backend.
const PLACEHOLDER_PREFIX = "placeholder-"

const (
	ACTION_SEND   = "send"
	ACTION_PAUSE  = "pause"
	ACTION_RESUME = "resume"
	ACTION_WON    = "won"
	ACTION_LOST   = "lost"
)

var (
	ErrNoEntryStep     = errors.New("nenhuma etapa de follow-up inicial encontrada")
	ErrPlaceholderStep = errors.New("etapa ainda não foi salva")
	ErrBoardNotLoaded  = errors.New("quadro de follow-up não carregado")
	ErrUnknownAction   = errors.New("ação de follow-up desconhecida")
)

// FlowAPI é o subconjunto do backend de follow-up usado pelo quadro.
type FlowAPI interface {
	GetSteps(ctx context.Context, funnelID string) ([]schemas.FollowUpStep, error)
	GetLeads(ctx context.Context, funnelID string) ([]schemas.LeadInFlow, error)
	InitializeDefaultSteps(ctx context.Context, funnelID string) error
	CreateStep(ctx context.Context, funnelID string, input schemas.FollowUpStepInput) (*schemas.FollowUpStep, error)
	UpdateStep(ctx context.Context, funnelID, stepID string, input schemas.FollowUpStepInput) error
	DeleteStep(ctx context.Context, funnelID, stepID string) error
	AddLead(ctx context.Context, funnelID, leadID, stepID string) error
	MoveLead(ctx context.Context, funnelID, leadInFlowID, stepID string) error
	RemoveLead(ctx context.Context, funnelID, leadInFlowID string) error
	LeadAction(ctx context.Context, funnelID, leadInFlowID, action string) error
}

func IsPlaceholder(stepID string) bool {
	return strings.HasPrefix(stepID, PLACEHOLDER_PREFIX)
}

// DefaultSteps é o conjunto exibido enquanto o funil não tem etapas salvas.
func DefaultSteps(funnelID string) []schemas.FollowUpStep {
	step := func(name string, order int, kind schemas.FollowUpStepType, fixed bool, days int, color string) schemas.FollowUpStep {
		return schemas.FollowUpStep{
			ID:          PLACEHOLDER_PREFIX + uuid.NewString(),
			FunnelID:    funnelID,
			Name:        name,
			Order:       order,
			DelayDays:   days,
			IsAutomatic: kind == schemas.FOLLOWUP_STEP_FOLLOWUP,
			IsFixed:     fixed,
			Color:       color,
			Type:        kind,
		}
	}
	return []schemas.FollowUpStep{
		step("Novo lead", 0, schemas.FOLLOWUP_STEP_SYSTEM, true, 0, "#3b82f6"),
		step("1º Follow-up", 0, schemas.FOLLOWUP_STEP_FOLLOWUP, false, 1, "#f59e0b"),
		step("2º Follow-up", 1, schemas.FOLLOWUP_STEP_FOLLOWUP, false, 3, "#f97316"),
		step("3º Follow-up", 2, schemas.FOLLOWUP_STEP_FOLLOWUP, false, 7, "#ef4444"),
		step("Ganho", 3, schemas.FOLLOWUP_STEP_SYSTEM, true, 0, "#22c55e"),
		step("Perdido", 4, schemas.FOLLOWUP_STEP_SYSTEM, true, 0, "#6b7280"),
	}
}

// sortSteps ordena por order; no empate a etapa de sistema vem antes.
func sortSteps(steps []schemas.FollowUpStep) {
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Order != steps[j].Order {
			return steps[i].Order < steps[j].Order
		}
		return steps[i].Type == schemas.FOLLOWUP_STEP_SYSTEM && steps[j].Type != schemas.FOLLOWUP_STEP_SYSTEM
	})
}

// Board traduz as ações do quadro de follow-up em chamadas REST, cada uma
// seguida de uma recarga completa de etapas e leads. Nenhuma transição é
// validada localmente.
type Board struct {
	mu       sync.Mutex
	api      FlowAPI
	logger   *zap.SugaredLogger
	funnelID string
	steps    []schemas.FollowUpStep
	leads    []schemas.LeadInFlow
}

func NewBoard(api FlowAPI, logger *zap.SugaredLogger) *Board {
	return &Board{api: api, logger: logger}
}

func (b *Board) Load(ctx context.Context, funnelID string) (*schemas.FollowUpBoard, error) {
	steps, err := b.api.GetSteps(ctx, funnelID)
	if err != nil {
		b.logger.Errorw("failed to load follow-up steps", "funnel_id", funnelID, "error", err)
		return nil, err
	}
	leads, err := b.api.GetLeads(ctx, funnelID)
	if err != nil {
		b.logger.Errorw("failed to load leads in flow", "funnel_id", funnelID, "error", err)
		return nil, err
	}
	if len(steps) == 0 {
		steps = DefaultSteps(funnelID)
	}
	sortSteps(steps)

	b.mu.Lock()
	b.funnelID = funnelID
	b.steps = steps
	b.leads = leads
	b.mu.Unlock()

	return b.Snapshot(), nil
}

func (b *Board) Snapshot() *schemas.FollowUpBoard {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &schemas.FollowUpBoard{
		FunnelID: b.funnelID,
		Steps:    append([]schemas.FollowUpStep{}, b.steps...),
		Leads:    append([]schemas.LeadInFlow{}, b.leads...),
	}
}

func (b *Board) loadedFunnel() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.funnelID == "" {
		return "", ErrBoardNotLoaded
	}
	return b.funnelID, nil
}

func (b *Board) allPlaceholders() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, step := range b.steps {
		if !IsPlaceholder(step.ID) {
			return false
		}
	}
	return true
}

// ensureSteps persiste o conjunto padrão quando o quadro só tem etapas
// provisórias: uma chamada de inicialização e uma nova busca das etapas.
func (b *Board) ensureSteps(ctx context.Context, funnelID string) error {
	if !b.allPlaceholders() {
		return nil
	}
	if err := b.api.InitializeDefaultSteps(ctx, funnelID); err != nil {
		b.logger.Errorw("failed to initialize default follow-up steps", "funnel_id", funnelID, "error", err)
		return err
	}
	steps, err := b.api.GetSteps(ctx, funnelID)
	if err != nil {
		return err
	}
	sortSteps(steps)

	b.mu.Lock()
	b.steps = steps
	b.mu.Unlock()
	return nil
}

// entryStep é a primeira etapa de follow-up (nunca uma etapa de sistema).
func (b *Board) entryStep() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, step := range b.steps {
		if step.Type == schemas.FOLLOWUP_STEP_FOLLOWUP && step.Order == 0 {
			return step.ID, true
		}
	}
	return "", false
}

func (b *Board) AddStep(ctx context.Context, input schemas.FollowUpStepInput) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if err := b.ensureSteps(ctx, funnelID); err != nil {
		return nil, err
	}
	if _, err := b.api.CreateStep(ctx, funnelID, input); err != nil {
		b.logger.Errorw("failed to create follow-up step", "funnel_id", funnelID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

func (b *Board) UpdateStep(ctx context.Context, stepID string, input schemas.FollowUpStepInput) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if IsPlaceholder(stepID) {
		return nil, ErrPlaceholderStep
	}
	if err := b.api.UpdateStep(ctx, funnelID, stepID, input); err != nil {
		b.logger.Errorw("failed to update follow-up step", "funnel_id", funnelID, "step_id", stepID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

func (b *Board) DeleteStep(ctx context.Context, stepID string) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if IsPlaceholder(stepID) {
		return nil, ErrPlaceholderStep
	}
	if err := b.api.DeleteStep(ctx, funnelID, stepID); err != nil {
		b.logger.Errorw("failed to delete follow-up step", "funnel_id", funnelID, "step_id", stepID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

// AddLead coloca o lead na etapa de entrada do fluxo.
func (b *Board) AddLead(ctx context.Context, leadID string) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if err := b.ensureSteps(ctx, funnelID); err != nil {
		return nil, err
	}
	stepID, ok := b.entryStep()
	if !ok {
		return nil, ErrNoEntryStep
	}
	if err := b.api.AddLead(ctx, funnelID, leadID, stepID); err != nil {
		b.logger.Errorw("failed to add lead to flow", "funnel_id", funnelID, "lead_id", leadID, "step_id", stepID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

func (b *Board) MoveLead(ctx context.Context, leadInFlowID, stepID string) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if err := b.api.MoveLead(ctx, funnelID, leadInFlowID, stepID); err != nil {
		b.logger.Errorw("failed to move lead in flow", "funnel_id", funnelID, "lead_in_flow_id", leadInFlowID, "step_id", stepID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

func (b *Board) RemoveLead(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if err := b.api.RemoveLead(ctx, funnelID, leadInFlowID); err != nil {
		b.logger.Errorw("failed to remove lead from flow", "funnel_id", funnelID, "lead_in_flow_id", leadInFlowID, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

// Act dispara send, pause, resume, won ou lost para um lead no fluxo.
func (b *Board) Act(ctx context.Context, leadInFlowID, action string) (*schemas.FollowUpBoard, error) {
	switch action {
	case ACTION_SEND, ACTION_PAUSE, ACTION_RESUME, ACTION_WON, ACTION_LOST:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	funnelID, err := b.loadedFunnel()
	if err != nil {
		return nil, err
	}
	if err := b.api.LeadAction(ctx, funnelID, leadInFlowID, action); err != nil {
		b.logger.Errorw("follow-up action failed", "funnel_id", funnelID, "lead_in_flow_id", leadInFlowID, "action", action, "error", err)
		return nil, err
	}
	return b.Load(ctx, funnelID)
}

func (b *Board) SendFollowUp(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	return b.Act(ctx, leadInFlowID, ACTION_SEND)
}

func (b *Board) Pause(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	return b.Act(ctx, leadInFlowID, ACTION_PAUSE)
}

func (b *Board) Resume(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	return b.Act(ctx, leadInFlowID, ACTION_RESUME)
}

func (b *Board) MarkWon(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	return b.Act(ctx, leadInFlowID, ACTION_WON)
}

func (b *Board) MarkLost(ctx context.Context, leadInFlowID string) (*schemas.FollowUpBoard, error) {
	return b.Act(ctx, leadInFlowID, ACTION_LOST)
}
