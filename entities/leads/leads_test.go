package leads

import (
	"context"
	"dashboard/backend"
	"dashboard/middlewares"
	"dashboard/schemas"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLeads struct {
	created []schemas.LeadInput
	deleted []string
	err     error
}

func (f *fakeLeads) CreateOne(ctx context.Context, input schemas.LeadInput) (*schemas.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, input)
	return &schemas.Lead{ID: "L1", StageID: input.StageID, Name: input.Name}, nil
}

func (f *fakeLeads) UpdateOne(ctx context.Context, id string, input schemas.LeadInput) (*schemas.Lead, error) {
	return &schemas.Lead{ID: id, StageID: input.StageID, Name: input.Name}, f.err
}

func (f *fakeLeads) DeleteOne(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeStats struct{ calls int }

func (f *fakeStats) GetStats(ctx context.Context, id string) (*schemas.FunnelStats, error) {
	f.calls++
	return &schemas.FunnelStats{TotalLeads: 7, TotalValue: 1200}, nil
}

type fakeBoards struct{ refreshed []string }

func (f *fakeBoards) Refresh(ctx context.Context, funnelID string) {
	f.refreshed = append(f.refreshed, funnelID)
}

type nopHistory struct {
	actions []string
	users   []string
}

func (n *nopHistory) Record(ctx context.Context, entry schemas.FunnelsHistory) {
	n.actions = append(n.actions, entry.Action)
	n.users = append(n.users, entry.RelatedUser)
}

func TestCreateOneRefetchesStats(t *testing.T) {
	leads, stats, boards, history := &fakeLeads{}, &fakeStats{}, &fakeBoards{}, &nopHistory{}
	handler := NewHandler(leads, stats, boards, history, "mock-user", zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"funnelId":"F1","stageId":"s1","name":"Ana","value":300}`))
	rec := httptest.NewRecorder()
	handler.CreateOne(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := struct {
		Data schemas.LeadMutation `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "L1", body.Data.Lead.ID)
	assert.Equal(t, 7, body.Data.Stats.TotalLeads)
	assert.Equal(t, 1, stats.calls)
	assert.Equal(t, []string{"F1"}, boards.refreshed)
	assert.Equal(t, []string{"lead_created"}, history.actions)
	assert.Equal(t, []string{"mock-user"}, history.users)
}

func TestHistoryRecordsAuthenticatedUser(t *testing.T) {
	history := &nopHistory{}
	handler := NewHandler(&fakeLeads{}, &fakeStats{}, &fakeBoards{}, history, "mock-user", zap.NewNop().Sugar())

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /v1/leads/{id}", handler.UpdateOne)

	req := httptest.NewRequest(http.MethodPatch, "/v1/leads/L1", strings.NewReader(`{"funnelId":"F1","stageId":"s1","name":"Ana"}`))
	req = req.WithContext(context.WithValue(req.Context(), middlewares.UserContextKey, schemas.User{ID: "u-42"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"lead_updated"}, history.actions)
	assert.Equal(t, []string{"u-42"}, history.users)
}

func TestCreateOneValidatesBeforeCallingBackend(t *testing.T) {
	leads, stats := &fakeLeads{}, &fakeStats{}
	handler := NewHandler(leads, stats, &fakeBoards{}, &nopHistory{}, "mock-user", zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"funnelId":"F1","stageId":"s1","email":"não-é-email"}`))
	rec := httptest.NewRecorder()
	handler.CreateOne(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, leads.created)
	assert.Zero(t, stats.calls)
}

func TestDeleteOneRequiresFunnel(t *testing.T) {
	leads := &fakeLeads{}
	handler := NewHandler(leads, &fakeStats{}, &fakeBoards{}, &nopHistory{}, "mock-user", zap.NewNop().Sugar())

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/leads/{id}", handler.DeleteOne)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/leads/L1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/leads/L1?funnelId=F1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"L1"}, leads.deleted)
}

func TestBackendRejectionIsForwarded(t *testing.T) {
	leads := &fakeLeads{err: &backend.APIError{Status: http.StatusUnprocessableEntity, Message: "Etapa inexistente"}}
	boards := &fakeBoards{}
	handler := NewHandler(leads, &fakeStats{}, boards, &nopHistory{}, "mock-user", zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/v1/leads", strings.NewReader(`{"funnelId":"F1","stageId":"s9","name":"Ana"}`))
	rec := httptest.NewRecorder()
	handler.CreateOne(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Etapa inexistente")
	assert.Empty(t, boards.refreshed)
}
