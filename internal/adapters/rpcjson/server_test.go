package rpcjson

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/anilpal6795/crime-linker/internal/adapters/db/store"
	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/anilpal6795/crime-linker/internal/metrics"
)

type rpcConn struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
	next int
}

func startTestServer(t *testing.T) (*application.CaseService, *rpcConn) {
	t.Helper()
	return startTestServerWith(t, metrics.New())
}

func startTestServerWith(t *testing.T, m *metrics.Recorder) (*application.CaseService, *rpcConn) {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(store.DriverSQLite, filepath.Join(dir, "rpc.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	service := application.NewCaseService(store.NewRepository(db))

	srv, err := Start(filepath.Join(dir, "rpc.sock"), service, WithMetrics(m))
	if err != nil {
		t.Fatalf("start rpc: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := net.Dial("unix", srv.Path())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return service, &rpcConn{t: t, conn: conn, r: bufio.NewReader(conn)}
}

type testResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
	ID     any             `json:"id"`
}

func (c *rpcConn) raw(line string) testResponse {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		c.t.Fatalf("write: %v", err)
	}
	data, err := c.r.ReadBytes('\n')
	if err != nil {
		c.t.Fatalf("read: %v", err)
	}
	var resp testResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.t.Fatalf("decode %s: %v", data, err)
	}
	return resp
}

func (c *rpcConn) call(method string, params any) testResponse {
	c.t.Helper()
	c.next++
	payload, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "method": method, "params": params, "id": c.next})
	if err != nil {
		c.t.Fatalf("encode: %v", err)
	}
	return c.raw(string(payload))
}

func expectCode(t *testing.T, resp testResponse, code int) {
	t.Helper()
	if resp.Error == nil || resp.Error.Code != code {
		t.Fatalf("expected error code %d, got %+v", code, resp.Error)
	}
}

func TestPeopleListAndRelations(t *testing.T) {
	service, c := startTestServer(t)
	ctx := context.Background()

	first := "John"
	p, err := service.CreatePerson(ctx, domain.Person{FirstName: &first, IsPersonOfInterest: true})
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	inc, err := service.CreateIncident(ctx, domain.Incident{Title: "Theft", EventType: domain.EventTheft}, domain.Links{"people": {p.ID}})
	if err != nil {
		t.Fatalf("create incident: %v", err)
	}

	resp := c.call("people.list", map[string]any{"flagged": true})
	if resp.Error != nil {
		t.Fatalf("people.list: %+v", resp.Error)
	}
	var people []domain.Person
	if err := json.Unmarshal(resp.Result, &people); err != nil {
		t.Fatalf("decode people: %v", err)
	}
	if len(people) != 1 || people[0].ID != p.ID {
		t.Fatalf("unexpected people: %+v", people)
	}

	resp = c.call("relations.resolve", map[string]any{"kind": "incident", "id": inc.ID, "relation": "people"})
	if resp.Error != nil {
		t.Fatalf("relations.resolve: %+v", resp.Error)
	}
	if err := json.Unmarshal(resp.Result, &people); err != nil || len(people) != 1 {
		t.Fatalf("resolve returned %s", resp.Result)
	}

	resp = c.call("relations.replace", map[string]any{"kind": "incident", "id": inc.ID, "relation": "people", "ids": []string{}})
	if resp.Error != nil {
		t.Fatalf("relations.replace: %+v", resp.Error)
	}
	resp = c.call("graph.build", map[string]any{"kind": "incident", "id": inc.ID})
	var g domain.Graph
	if err := json.Unmarshal(resp.Result, &g); err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if len(g.Nodes) != 1 || len(g.Edges) != 0 {
		t.Fatalf("expected a lone incident after clearing people, got %+v", g)
	}
}

func TestStatusAddAndStats(t *testing.T) {
	service, c := startTestServer(t)
	cs, err := service.CreateCase(context.Background(), domain.Case{Title: "C1"}, nil)
	if err != nil {
		t.Fatalf("create case: %v", err)
	}

	resp := c.call("status.add", map[string]any{"case_id": cs.ID, "message": "opened", "user_id": "u-1"})
	if resp.Error != nil {
		t.Fatalf("status.add: %+v", resp.Error)
	}
	expectCode(t, c.call("status.add", map[string]any{"case_id": "missing", "message": "x", "user_id": "u"}), codeNotFound)
	expectCode(t, c.call("status.add", map[string]any{"case_id": cs.ID}), codeBadInput)

	resp = c.call("dashboard.stats", nil)
	var stats []domain.DashboardStat
	if err := json.Unmarshal(resp.Result, &stats); err != nil || len(stats) != 3 {
		t.Fatalf("stats = %s err %v", resp.Result, err)
	}
	if stats[1].Title != "Open Cases" || stats[1].Value != "1" {
		t.Fatalf("unexpected open cases stat: %+v", stats[1])
	}
}

func TestProtocolErrors(t *testing.T) {
	_, c := startTestServer(t)

	expectCode(t, c.raw(`{"jsonrpc":"1.0","method":"people.list","id":1}`), codeInvalidRequest)
	expectCode(t, c.call("people.delete", nil), codeMethodNotFound)
	expectCode(t, c.call("people.list", []int{1}), codeInvalidParams)
	expectCode(t, c.call("relations.resolve", map[string]any{"kind": "incident"}), codeInvalidParams)
	expectCode(t, c.call("relations.resolve", map[string]any{"kind": "gang", "id": "x", "relation": "people"}), codeBadInput)
	expectCode(t, c.call("relations.resolve", map[string]any{"kind": "person", "id": "missing", "relation": "incidents"}), codeNotFound)
	expectCode(t, c.call("relations.replace", map[string]any{"kind": "incident", "id": "x", "relation": "location", "ids": []string{"y"}}), codeBadInput)
	expectCode(t, c.call("cases.list", map[string]any{"event_type": "THEFT"}), codeBadInput)

	expectCode(t, c.raw(`{not json`), codeParseError)
}

func TestUnknownMethodsShareOneMetricLabel(t *testing.T) {
	m := metrics.New()
	_, c := startTestServerWith(t, m)

	expectCode(t, c.call("people.delete", nil), codeMethodNotFound)
	expectCode(t, c.call("drop.tables", nil), codeMethodNotFound)
	expectCode(t, c.raw(`{"jsonrpc":"1.0","method":"whatever","id":1}`), codeInvalidRequest)
	if resp := c.call("people.list", nil); resp.Error != nil {
		t.Fatalf("people.list: %+v", resp.Error)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	seen := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "crimelinker_api_operations_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "operation" {
					seen[l.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	if len(seen) != 2 || seen[metrics.OperationUnknown] != 3 || seen["people.list"] != 1 {
		t.Fatalf("operation labels = %v", seen)
	}
}
