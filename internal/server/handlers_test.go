package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/4zj9/pairbench/internal/config"
	"github.com/4zj9/pairbench/internal/models"
	"github.com/4zj9/pairbench/internal/storage"
)

func newTestServer(t *testing.T, runFn RunFunc) (*Server, storage.Storage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewServer(store, runFn, config.Default(), zap.NewNop()), store
}

func seedRun(t *testing.T, store storage.Storage, id string) *models.Run {
	t.Helper()
	table := &models.ComparisonTable{}
	table.Append(models.VariantResult{
		Variant: "embedding-linear",
		Metrics: &models.Metrics{Model: "embedding-linear", Accuracy: 0.8, F1: 0.79},
	})
	run := &models.Run{
		ID:              id,
		TrainSource:     "data/train.tsv",
		EvalSource:      "data/dev.tsv",
		TrainCount:      10,
		EvalCount:       5,
		TrainProvenance: models.ProvenanceReal,
		EvalProvenance:  models.ProvenanceReal,
		Table:           table,
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.SaveRun(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	return run
}

func TestHandleListRuns(t *testing.T) {
	srv, store := newTestServer(t, nil)
	seedRun(t, store, "run-1")
	seedRun(t, store, "run-2")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Runs []*models.Run `json:"runs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Runs) != 2 {
		t.Errorf("runs = %d", len(resp.Runs))
	}
}

func TestHandleGetRun(t *testing.T) {
	srv, store := newTestServer(t, nil)
	seedRun(t, store, "run-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-1", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var run models.Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.ID != "run-1" || len(run.Table.Results) != 1 {
		t.Errorf("run = %+v", run)
	}
}

func TestHandleGetRun_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/missing", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleDeleteRun(t *testing.T) {
	srv, store := newTestServer(t, nil)
	seedRun(t, store, "run-1")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/runs/run-1", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := store.GetRun(context.Background(), "run-1"); err == nil {
		t.Error("run still present after delete")
	}
}

func TestHandleBenchmark(t *testing.T) {
	var called bool
	srv, _ := newTestServer(t, func(ctx context.Context) (*models.Run, error) {
		called = true
		return &models.Run{ID: "run-api", Table: &models.ComparisonTable{}}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/benchmark", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !called {
		t.Error("run function was not invoked")
	}
	var run models.Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.ID != "run-api" {
		t.Errorf("run id = %q", run.ID)
	}
}

func TestHandleBenchmark_NotConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/benchmark", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleBenchmark_RunError(t *testing.T) {
	srv, _ := newTestServer(t, func(ctx context.Context) (*models.Run, error) {
		return nil, errors.New("empty dataset")
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/benchmark", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, store := newTestServer(t, nil)
	seedRun(t, store, "run-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["runs"] != float64(1) {
		t.Errorf("runs = %v", resp["runs"])
	}
	if _, ok := resp["config"]; !ok {
		t.Error("config section missing")
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
