package routes

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"tarefas/internal/auth"
	"tarefas/internal/config"
)

type healthResp struct {
	Status string `json:"status"`
	DB     struct {
		Status string `json:"status"`
	} `json:"db"`
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "dev", CORSAllowedOrigins: []string{"*"}}
}

func TestRootReturnsJSON(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, testConfig(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["message"] == "" || body["message"] == nil {
		t.Fatalf("expected message, got %v", body)
	}
}

func TestHealthDBOK(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()

	r := SetupRoutes(db, testConfig(), nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp healthResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" || resp.DB.Status != "ok" {
		t.Fatalf("expected db ok, got %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHealthDBDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	r := SetupRoutes(db, testConfig(), nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d (%s)", w.Code, w.Body.String())
	}
	var resp healthResp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.DB.Status != "down" {
		t.Fatalf("expected db down, got %+v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, testConfig(), nil, nil, nil)

	cases := []struct {
		method, path, header string
		want                 int
	}{
		{http.MethodGet, "/api/tarefas", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/tarefas", "", http.StatusUnauthorized},
		{http.MethodPut, "/api/tarefas/1", "", http.StatusUnauthorized},
		{http.MethodDelete, "/api/tarefas/1", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/tarefas", "Bearer nope", http.StatusForbidden},
		{http.MethodGet, "/api/auth/me", "Bearer nope", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s %s: expected %d got %d (%s)", tc.method, tc.path, tc.want, w.Code, w.Body.String())
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskQueriesAreScopedToTokenSubject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tarefas SET texto = $1 WHERE id = $2 AND usuario_id = $3")).
		WithArgs("hacked", int64(5), "bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "texto", "prazo", "prioridade", "concluida", "usuario_id"}))

	cfg := testConfig()
	token, err := auth.NewTokenIssuer(cfg.JWTSecret).Issue("bob")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := SetupRoutes(db, cfg, nil, nil, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/tarefas/5", bytes.NewReader([]byte(`{"texto":"hacked"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListTasksThroughRouter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tarefas").WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "texto", "prazo", "prioridade", "concluida", "usuario_id"}))

	cfg := testConfig()
	token, _ := auth.NewTokenIssuer(cfg.JWTSecret).Issue("ana")

	r := SetupRoutes(db, cfg, nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/tarefas", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if got := string(bytes.TrimSpace(w.Body.Bytes())); got != "[]" {
		t.Fatalf("expected [] got %q", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMetricsAndSwaggerMounted(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := SetupRoutes(db, testConfig(), nil, nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("swagger: expected 301 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("swagger doc: expected 200 got %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("swagger doc is not json: %v", err)
	}
}
