package funnelshistory

import (
	"context"
	"dashboard/schemas"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func TestBuildFilter(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.D{{Key: "related_funnel", Value: "F1"}}, buildFilter(Query{FunnelID: "F1"}))
	assert.Equal(t, bson.D{
		{Key: "related_funnel", Value: "F1"},
		{Key: "related_lead", Value: "L1"},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: from}}},
	}, buildFilter(Query{FunnelID: "F1", LeadID: "L1", From: from}))
}

type fakeReader struct {
	query Query
	err   error
}

func (f *fakeReader) GetAll(ctx context.Context, query Query) ([]schemas.FunnelsHistory, error) {
	f.query = query
	return []schemas.FunnelsHistory{}, f.err
}

func serve(reader Reader, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/funnels/{id}/history", NewHandler(reader, zap.NewNop().Sugar()).GetAll)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetAllParsesFilters(t *testing.T) {
	reader := &fakeReader{}

	rec := serve(reader, "/v1/funnels/F1/history?leadId=L1&from=2025-01-01&limit=20")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "F1", reader.query.FunnelID)
	assert.Equal(t, "L1", reader.query.LeadID)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), reader.query.From)
	assert.True(t, reader.query.Until.IsZero())
	assert.Equal(t, int64(20), reader.query.Limit)
}

func TestGetAllRejectsBadParams(t *testing.T) {
	for _, target := range []string{
		"/v1/funnels/F1/history?from=ontem",
		"/v1/funnels/F1/history?until=31/12/2025",
		"/v1/funnels/F1/history?limit=-1",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(&fakeReader{}, target).Code, target)
	}
}

func TestGetAllStoreFailure(t *testing.T) {
	rec := serve(&fakeReader{err: errors.New("mongo down")}, "/v1/funnels/F1/history")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
