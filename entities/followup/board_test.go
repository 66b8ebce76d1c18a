package followup

import (
	"context"
	"dashboard/schemas"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFlow registra cada chamada e devolve etapas persistidas depois da inicialização.
type fakeFlow struct {
	calls       []string
	steps       []schemas.FollowUpStep
	leads       []schemas.LeadInFlow
	addedLead   string
	addedStep   string
	actionErr   error
	initialized bool
}

func persistedSteps() []schemas.FollowUpStep {
	return []schemas.FollowUpStep{
		{ID: "st-new", Name: "Novo lead", Order: 0, Type: schemas.FOLLOWUP_STEP_SYSTEM, IsFixed: true},
		{ID: "st-2", Name: "2º Follow-up", Order: 1, Type: schemas.FOLLOWUP_STEP_FOLLOWUP},
		{ID: "st-1", Name: "1º Follow-up", Order: 0, Type: schemas.FOLLOWUP_STEP_FOLLOWUP},
		{ID: "st-won", Name: "Ganho", Order: 3, Type: schemas.FOLLOWUP_STEP_SYSTEM, IsFixed: true},
	}
}

func (f *fakeFlow) GetSteps(ctx context.Context, funnelID string) ([]schemas.FollowUpStep, error) {
	f.calls = append(f.calls, "GetSteps")
	return append([]schemas.FollowUpStep{}, f.steps...), nil
}

func (f *fakeFlow) GetLeads(ctx context.Context, funnelID string) ([]schemas.LeadInFlow, error) {
	f.calls = append(f.calls, "GetLeads")
	return append([]schemas.LeadInFlow{}, f.leads...), nil
}

func (f *fakeFlow) InitializeDefaultSteps(ctx context.Context, funnelID string) error {
	f.calls = append(f.calls, "InitializeDefaultSteps")
	f.initialized = true
	f.steps = persistedSteps()
	return nil
}

func (f *fakeFlow) CreateStep(ctx context.Context, funnelID string, input schemas.FollowUpStepInput) (*schemas.FollowUpStep, error) {
	f.calls = append(f.calls, "CreateStep")
	step := schemas.FollowUpStep{ID: "st-new-" + input.Name, Name: input.Name, Order: 5, Type: schemas.FOLLOWUP_STEP_FOLLOWUP}
	f.steps = append(f.steps, step)
	return &step, nil
}

func (f *fakeFlow) UpdateStep(ctx context.Context, funnelID, stepID string, input schemas.FollowUpStepInput) error {
	f.calls = append(f.calls, "UpdateStep")
	return nil
}

func (f *fakeFlow) DeleteStep(ctx context.Context, funnelID, stepID string) error {
	f.calls = append(f.calls, "DeleteStep")
	return nil
}

func (f *fakeFlow) AddLead(ctx context.Context, funnelID, leadID, stepID string) error {
	f.calls = append(f.calls, "AddLead")
	f.addedLead = leadID
	f.addedStep = stepID
	f.leads = append(f.leads, schemas.LeadInFlow{ID: "lif-" + leadID, LeadID: leadID, FunnelID: funnelID, CurrentStepID: stepID, Status: schemas.LEAD_FLOW_ACTIVE})
	return nil
}

func (f *fakeFlow) MoveLead(ctx context.Context, funnelID, leadInFlowID, stepID string) error {
	f.calls = append(f.calls, "MoveLead")
	return nil
}

func (f *fakeFlow) RemoveLead(ctx context.Context, funnelID, leadInFlowID string) error {
	f.calls = append(f.calls, "RemoveLead")
	return nil
}

func (f *fakeFlow) LeadAction(ctx context.Context, funnelID, leadInFlowID, action string) error {
	f.calls = append(f.calls, "LeadAction:"+action)
	return f.actionErr
}

func TestLoadShowsPlaceholdersWhenEmpty(t *testing.T) {
	board := NewBoard(&fakeFlow{}, zap.NewNop().Sugar())

	state, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)

	require.Len(t, state.Steps, 6)
	for _, step := range state.Steps {
		assert.True(t, IsPlaceholder(step.ID), step.Name)
		assert.Equal(t, "F1", step.FunnelID)
	}
	assert.Equal(t, "Novo lead", state.Steps[0].Name)
	assert.Equal(t, "1º Follow-up", state.Steps[1].Name)
	assert.Equal(t, "Perdido", state.Steps[5].Name)
}

func TestAddLeadBootstrapsDefaultSteps(t *testing.T) {
	flow := &fakeFlow{}
	board := NewBoard(flow, zap.NewNop().Sugar())

	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)
	flow.calls = nil

	state, err := board.AddLead(context.Background(), "L1")
	require.NoError(t, err)

	assert.Equal(t, []string{"InitializeDefaultSteps", "GetSteps", "AddLead", "GetSteps", "GetLeads"}, flow.calls)
	assert.Equal(t, "L1", flow.addedLead)
	assert.Equal(t, "st-1", flow.addedStep)
	require.Len(t, state.Leads, 1)
	assert.Equal(t, "st-1", state.Leads[0].CurrentStepID)
}

func TestAddLeadWithPersistedStepsSkipsBootstrap(t *testing.T) {
	flow := &fakeFlow{steps: persistedSteps()}
	board := NewBoard(flow, zap.NewNop().Sugar())

	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)
	flow.calls = nil

	_, err = board.AddLead(context.Background(), "L1")
	require.NoError(t, err)

	assert.Equal(t, []string{"AddLead", "GetSteps", "GetLeads"}, flow.calls)
	assert.Equal(t, "st-1", flow.addedStep)
}

func TestAddLeadWithoutEntryStep(t *testing.T) {
	flow := &fakeFlow{steps: []schemas.FollowUpStep{
		{ID: "st-new", Order: 0, Type: schemas.FOLLOWUP_STEP_SYSTEM},
		{ID: "st-2", Order: 1, Type: schemas.FOLLOWUP_STEP_FOLLOWUP},
	}}
	board := NewBoard(flow, zap.NewNop().Sugar())
	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)

	_, err = board.AddLead(context.Background(), "L1")
	assert.ErrorIs(t, err, ErrNoEntryStep)
	assert.NotContains(t, flow.calls, "AddLead")
}

func TestAddStepBootstrapsOnce(t *testing.T) {
	flow := &fakeFlow{}
	board := NewBoard(flow, zap.NewNop().Sugar())
	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)
	flow.calls = nil

	_, err = board.AddStep(context.Background(), schemas.FollowUpStepInput{Name: "4º Follow-up", DelayDays: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"InitializeDefaultSteps", "GetSteps", "CreateStep", "GetSteps", "GetLeads"}, flow.calls)

	flow.calls = nil
	_, err = board.AddStep(context.Background(), schemas.FollowUpStepInput{Name: "5º Follow-up"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CreateStep", "GetSteps", "GetLeads"}, flow.calls)
}

func TestPlaceholderStepsCannotBeEdited(t *testing.T) {
	flow := &fakeFlow{}
	board := NewBoard(flow, zap.NewNop().Sugar())
	state, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)

	_, err = board.DeleteStep(context.Background(), state.Steps[1].ID)
	assert.ErrorIs(t, err, ErrPlaceholderStep)
	_, err = board.UpdateStep(context.Background(), state.Steps[1].ID, schemas.FollowUpStepInput{Name: "x"})
	assert.ErrorIs(t, err, ErrPlaceholderStep)
	assert.Equal(t, []string{"GetSteps", "GetLeads"}, flow.calls)
}

func TestActionsReloadAfterEachCall(t *testing.T) {
	flow := &fakeFlow{steps: persistedSteps()}
	board := NewBoard(flow, zap.NewNop().Sugar())
	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)

	actions := map[string]func(context.Context, string) (*schemas.FollowUpBoard, error){
		ACTION_SEND:   board.SendFollowUp,
		ACTION_PAUSE:  board.Pause,
		ACTION_RESUME: board.Resume,
		ACTION_WON:    board.MarkWon,
		ACTION_LOST:   board.MarkLost,
	}
	for action, run := range actions {
		flow.calls = nil
		_, err := run(context.Background(), "lif-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"LeadAction:" + action, "GetSteps", "GetLeads"}, flow.calls)
	}

	flow.calls = nil
	_, err = board.MoveLead(context.Background(), "lif-1", "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, []string{"MoveLead", "GetSteps", "GetLeads"}, flow.calls)
}

func TestActionFailureSkipsReload(t *testing.T) {
	flow := &fakeFlow{steps: persistedSteps(), actionErr: errors.New("boom")}
	board := NewBoard(flow, zap.NewNop().Sugar())
	_, err := board.Load(context.Background(), "F1")
	require.NoError(t, err)
	flow.calls = nil

	_, err = board.Pause(context.Background(), "lif-1")
	assert.Error(t, err)
	assert.Equal(t, []string{"LeadAction:pause"}, flow.calls)

	_, err = board.Act(context.Background(), "lif-1", "archive")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestBoardRequiresLoad(t *testing.T) {
	board := NewBoard(&fakeFlow{}, zap.NewNop().Sugar())
	_, err := board.AddLead(context.Background(), "L1")
	assert.ErrorIs(t, err, ErrBoardNotLoaded)
}
