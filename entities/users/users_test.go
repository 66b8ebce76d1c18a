package users

import (
	"context"
	"dashboard/middlewares"
	"dashboard/schemas"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUsers struct {
	updated []string
	deleted []string
}

func (f *fakeUsers) GetAll(ctx context.Context) ([]schemas.User, error) {
	return []schemas.User{{ID: "u1"}, {ID: "u2"}}, nil
}

func (f *fakeUsers) UpdateOne(ctx context.Context, id string, input schemas.UserUpdateInput) (*schemas.User, error) {
	f.updated = append(f.updated, id)
	return &schemas.User{ID: id}, nil
}

func (f *fakeUsers) DeleteOne(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func serve(handler http.HandlerFunc, pattern string, req *http.Request) *httptest.ResponseRecorder {
	admin := schemas.User{ID: "u1", PublicMetadata: schemas.PublicMetadata{IsAdmin: true}}
	req = req.WithContext(context.WithValue(req.Context(), middlewares.UserContextKey, admin))

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAdminCannotDemoteOrDeleteSelf(t *testing.T) {
	api := &fakeUsers{}
	handler := NewHandler(api, zap.NewNop().Sugar())

	rec := serve(handler.UpdateOne, "PATCH /v1/users/{id}", httptest.NewRequest(http.MethodPatch, "/v1/users/u1", strings.NewReader(`{"isAdmin":false}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(handler.DeleteOne, "DELETE /v1/users/{id}", httptest.NewRequest(http.MethodDelete, "/v1/users/u1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.Empty(t, api.updated)
	assert.Empty(t, api.deleted)
}

func TestAdminManagesOtherUsers(t *testing.T) {
	api := &fakeUsers{}
	handler := NewHandler(api, zap.NewNop().Sugar())

	rec := serve(handler.UpdateOne, "PATCH /v1/users/{id}", httptest.NewRequest(http.MethodPatch, "/v1/users/u2", strings.NewReader(`{"isAdmin":true}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(handler.DeleteOne, "DELETE /v1/users/{id}", httptest.NewRequest(http.MethodDelete, "/v1/users/u2", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"u2"}, api.updated)
	assert.Equal(t, []string{"u2"}, api.deleted)
}
