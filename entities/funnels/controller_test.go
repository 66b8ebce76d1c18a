package funnels

import (
	"context"
	"dashboard/backend"
	"dashboard/schemas"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend guarda os leads por etapa e responde como a API de funis.
type fakeBackend struct {
	mu      sync.Mutex
	funnel  schemas.Funnel
	loads   int
	moveErr error
	getErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{funnel: schemas.Funnel{
		ID: "F1",
		Stages: []schemas.Stage{
			{ID: "s1", Order: 0, Leads: []schemas.Lead{{ID: "L1", StageID: "s1"}}},
			{ID: "s2", Order: 1, Leads: []schemas.Lead{}},
		},
	}}
}

func (f *fakeBackend) GetOne(ctx context.Context, id string) (*schemas.Funnel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if id != f.funnel.ID {
		return nil, &backend.APIError{Status: http.StatusNotFound}
	}
	return cloneFunnel(&f.funnel), nil
}

func (f *fakeBackend) Move(ctx context.Context, id string, input schemas.MoveLeadInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.moveErr != nil {
		return f.moveErr
	}
	var moved *schemas.Lead
	for i := range f.funnel.Stages {
		kept := []schemas.Lead{}
		for _, lead := range f.funnel.Stages[i].Leads {
			if lead.ID == id {
				lead.StageID = input.StageID
				moved = &lead
				continue
			}
			kept = append(kept, lead)
		}
		f.funnel.Stages[i].Leads = kept
	}
	if moved == nil {
		return &backend.APIError{Status: http.StatusNotFound}
	}
	for i := range f.funnel.Stages {
		if f.funnel.Stages[i].ID == input.StageID {
			leads := f.funnel.Stages[i].Leads
			order := min(input.Order, len(leads))
			leads = append(leads[:order], append([]schemas.Lead{*moved}, leads[order:]...)...)
			f.funnel.Stages[i].Leads = leads
		}
	}
	return nil
}

func TestControllerLoadNotFound(t *testing.T) {
	fake := newFakeBackend()
	controller := NewController(fake, fake, zap.NewNop().Sugar())

	_, err := controller.Load(context.Background(), "F404")
	assert.ErrorIs(t, err, ErrFunnelNotFound)
	assert.Nil(t, controller.Snapshot())
}

func TestControllerLoadTransportFailure(t *testing.T) {
	fake := newFakeBackend()
	fake.getErr = backend.ErrTransport
	controller := NewController(fake, fake, zap.NewNop().Sugar())

	_, err := controller.Load(context.Background(), "F1")
	assert.ErrorIs(t, err, backend.ErrTransport)
	assert.Equal(t, 1, fake.loads, "load must not retry")
}

func TestControllerMoveLeadReloads(t *testing.T) {
	fake := newFakeBackend()
	controller := NewController(fake, fake, zap.NewNop().Sugar())

	_, err := controller.Load(context.Background(), "F1")
	require.NoError(t, err)

	funnel, err := controller.MoveLead(context.Background(), "L1", "s2", 0)
	require.NoError(t, err)

	assert.Empty(t, funnel.Stages[0].Leads)
	require.Len(t, funnel.Stages[1].Leads, 1)
	assert.Equal(t, "L1", funnel.Stages[1].Leads[0].ID)
	assert.Equal(t, 2, fake.loads)

	lead, stageID := controller.FindLead("L1")
	require.NotNil(t, lead)
	assert.Equal(t, "s2", stageID)
}

func TestControllerMoveLeadFailureKeepsState(t *testing.T) {
	fake := newFakeBackend()
	controller := NewController(fake, fake, zap.NewNop().Sugar())
	_, err := controller.Load(context.Background(), "F1")
	require.NoError(t, err)

	fake.moveErr = errors.New("boom")
	_, err = controller.MoveLead(context.Background(), "L1", "s2", 0)
	assert.Error(t, err)

	_, stageID := controller.FindLead("L1")
	assert.Equal(t, "s1", stageID)
	assert.Equal(t, 1, fake.loads)
}

func TestControllerMoveLeadRequiresLoadedFunnel(t *testing.T) {
	fake := newFakeBackend()
	controller := NewController(fake, fake, zap.NewNop().Sugar())

	_, err := controller.MoveLead(context.Background(), "L1", "s2", 0)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestControllerApply(t *testing.T) {
	fake := newFakeBackend()
	controller := NewController(fake, fake, zap.NewNop().Sugar())
	_, err := controller.Load(context.Background(), "F1")
	require.NoError(t, err)

	assert.True(t, controller.Apply(leadEvent(t, "F1", schemas.FUNNEL_EVENT_LEAD_CREATED, schemas.Lead{ID: "L2", StageID: "s2"})))
	assert.False(t, controller.Apply(leadEvent(t, "F9", schemas.FUNNEL_EVENT_LEAD_CREATED, schemas.Lead{ID: "L3", StageID: "s2"})))
	assert.False(t, controller.Apply(schemas.FunnelEvent{FunnelID: "F1", Event: schemas.FUNNEL_EVENT_LEAD_CREATED, Data: []byte(`[]`)}))

	stage := controller.FindStage("s2")
	require.NotNil(t, stage)
	assert.Equal(t, []string{"L2"}, leadIDs(*stage))
}
