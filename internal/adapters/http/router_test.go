package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anilpal6795/crime-linker/internal/adapters/db/store"
	gqlapi "github.com/anilpal6795/crime-linker/internal/adapters/graphql"
	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/metrics"
)

func newTestServer(t *testing.T) (*httptest.Server, func() error) {
	t.Helper()
	db, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "http.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	service := application.NewCaseService(store.NewRepository(db))
	m := metrics.New()
	schema, err := gqlapi.NewSchema(service, gqlapi.WithMetrics(m))
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	srv := httptest.NewServer(NewRouter(service, schema, m))
	t.Cleanup(srv.Close)
	return srv, sqlDB.Close
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestGraphQLIsMountedAndCounted(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/graphql", "application/json",
		strings.NewReader(`{"query":"{ people { id } dashboardStats { title } }"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"people":[]`) {
		t.Fatalf("graphql response %d: %s", resp.StatusCode, body)
	}

	code, text := get(t, srv.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("metrics status %d", code)
	}
	want := `crimelinker_api_operations_total{operation="people",outcome="ok",transport="graphql"} 1`
	if !strings.Contains(text, want) {
		t.Fatalf("metrics missing %q", want)
	}
}

func TestHealthz(t *testing.T) {
	srv, closeDB := newTestServer(t)

	code, body := get(t, srv.URL+"/healthz")
	if code != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Fatalf("healthz = %d %s", code, body)
	}

	_ = closeDB()
	code, _ = get(t, srv.URL+"/healthz")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("healthz after close = %d", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	if code, _ := get(t, srv.URL+"/api/entities"); code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
}
