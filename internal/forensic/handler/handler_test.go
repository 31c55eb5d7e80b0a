package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdiff/internal/forensic"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*forensic.AppendOnlyStorage, http.Handler) {
	t.Helper()
	storage, err := forensic.Open(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	r := chi.NewRouter()
	New(storage, testLogger()).Register(r)
	return storage, r
}

func store(t *testing.T, storage *forensic.AppendOnlyStorage, statuteID string, subjectID uuid.UUID) *forensic.AuditRecord {
	t.Helper()
	record := forensic.NewRecord("statute_diff_computed", forensic.SystemActor("differ"), statuteID, subjectID, "", forensic.DecisionResult{Kind: forensic.ResultVoid})
	require.NoError(t, storage.Store(context.Background(), record))
	return record
}

func TestGetRecord(t *testing.T) {
	storage, router := setup(t)
	stored := store(t, storage, "statute-a", uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/records/"+stored.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got forensic.AuditRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.RecordHash, got.RecordHash)
}

func TestGetRecordNotFound(t *testing.T) {
	_, router := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/records/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/records/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecordsByStatute(t *testing.T) {
	storage, router := setup(t)
	store(t, storage, "statute-a", uuid.New())
	store(t, storage, "statute-a", uuid.New())
	store(t, storage, "statute-b", uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/statutes/statute-a/records", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []forensic.AuditRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestGetRecordsBySubject(t *testing.T) {
	storage, router := setup(t)
	subject := uuid.New()
	store(t, storage, "statute-a", subject)
	store(t, storage, "statute-b", subject)
	store(t, storage, "statute-a", uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/subjects/"+subject.String()+"/records", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []forensic.AuditRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestGetRecordsByTimeRange(t *testing.T) {
	storage, router := setup(t)
	before := time.Now().UTC().Add(-time.Minute)
	store(t, storage, "statute-a", uuid.New())
	after := time.Now().UTC().Add(time.Minute)

	url := "/audit/records?start=" + before.Format(time.RFC3339) + "&end=" + after.Format(time.RFC3339)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []forensic.AuditRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/records?start=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyChainEndpoint(t *testing.T) {
	storage, router := setup(t)
	store(t, storage, "statute-a", uuid.New())
	store(t, storage, "statute-a", uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/verify", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Valid)
	assert.Equal(t, 2, got.Records)
	assert.Empty(t, got.Error)
}
