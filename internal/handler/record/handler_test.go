package record

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrec/records-gateway/internal/handler"
	"github.com/medrec/records-gateway/internal/model"
	"github.com/medrec/records-gateway/internal/repository"
)

type stubStore struct {
	inserted []model.RecordInput
	failAt   map[int]bool // fail the nth InsertRecord call
	calls    int
}

func (s *stubStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *stubStore) InsertRecord(ctx context.Context, rec model.RecordInput) (repository.ExecResult, error) {
	i := s.calls
	s.calls++
	if s.failAt[i] {
		return repository.ExecResult{}, fmt.Errorf("insert rejected")
	}
	s.inserted = append(s.inserted, rec)
	return repository.ExecResult{RowsAffected: 1, LastInsertID: int64(len(s.inserted))}, nil
}

func (s *stubStore) Select(ctx context.Context, query string) ([]map[string]any, error) {
	return nil, nil
}

func (s *stubStore) Insert(ctx context.Context, query string) (repository.ExecResult, error) {
	return repository.ExecResult{}, nil
}

func newTestEngine(store repository.RecordStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(store).RegisterRoutes(engine.Group(""))
	return engine
}

func postRecords(t *testing.T, engine *gin.Engine, body string) (*httptest.ResponseRecorder, handler.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/insert-data", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestInsertRecords_SingleRecord(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `[{"name":"Alice","dateOfBirth":"1990-01-01"}]`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Alice", store.inserted[0].Name)
	assert.Equal(t, "1990-01-01", store.inserted[0].DateOfBirth)
}

func TestInsertRecords_DispatchOrder(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	_, resp := postRecords(t, engine, `[
		{"name":"Alice","dateOfBirth":"1990-01-01"},
		{"name":"Bob","dateOfBirth":"1985-05-05"},
		{"name":"Carol","dateOfBirth":"1970-12-31"}
	]`)

	assert.True(t, resp.Success)
	require.Len(t, store.inserted, 3)
	assert.Equal(t, "Alice", store.inserted[0].Name)
	assert.Equal(t, "Bob", store.inserted[1].Name)
	assert.Equal(t, "Carol", store.inserted[2].Name)
}

func TestInsertRecords_EmptyArray(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `[]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, handler.ErrTypeInput, resp.ErrorType)
	assert.Zero(t, store.calls)
}

func TestInsertRecords_NonArrayBody(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `{"name":"Alice","dateOfBirth":"1990-01-01"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handler.ErrTypeInput, resp.ErrorType)
	assert.Zero(t, store.calls)
}

func TestInsertRecords_MalformedJSON(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `[{"name":"Alice"`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handler.ErrTypeJSON, resp.ErrorType)
	assert.Zero(t, store.calls, "store must not be touched on malformed JSON")
}

func TestInsertRecords_MissingFieldsRejectWholeBatch(t *testing.T) {
	store := &stubStore{}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `[
		{"name":"Alice","dateOfBirth":"1990-01-01"},
		{"name":"Bob"},
		{"dateOfBirth":"1970-12-31"}
	]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handler.ErrTypeInput, resp.ErrorType)
	assert.Contains(t, resp.Message, "[1 2]")
	assert.Zero(t, store.calls, "no insert may run when any record is invalid")
}

func TestInsertRecords_PartialFailureReportsIndices(t *testing.T) {
	store := &stubStore{failAt: map[int]bool{1: true}}
	engine := newTestEngine(store)

	w, resp := postRecords(t, engine, `[
		{"name":"Alice","dateOfBirth":"1990-01-01"},
		{"name":"Bob","dateOfBirth":"1985-05-05"},
		{"name":"Carol","dateOfBirth":"1970-12-31"}
	]`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, handler.ErrTypeDB, resp.ErrorType)
	assert.Contains(t, resp.Message, "[1]")
	// The other records are still inserted; there is no transaction.
	require.Len(t, store.inserted, 2)
	assert.Equal(t, "Alice", store.inserted[0].Name)
	assert.Equal(t, "Carol", store.inserted[1].Name)
}
