package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/anilpal6795/crime-linker/internal/logger"
	"github.com/anilpal6795/crime-linker/internal/metrics"
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeNotFound       = 40400
	codeBadInput       = 40000
	codeInternal       = 50000
)

type Server struct {
	service  *application.CaseService
	metrics  *metrics.Recorder
	listener net.Listener
	path     string
}

type Option func(*Server)

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Server) { s.metrics = m }
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Start listens on a unix socket readable only by the current user and
// serves line-delimited JSON-RPC 2.0 until Close.
func Start(path string, service *application.CaseService, opts ...Option) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	s := &Server{service: service, listener: ln, path: path}
	for _, opt := range opts {
		opt(s)
	}
	go s.serve()
	return s, nil
}

func (s *Server) Path() string { return s.path }

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}, ID: nil})
			return
		}

		started := time.Now()
		resp := s.dispatch(context.Background(), req)
		var failure error
		if resp.Error != nil {
			failure = errors.New(resp.Error.Message)
			logger.Debug("rpc call failed", "method", req.Method, "code", resp.Error.Code, "err", resp.Error.Message)
		}
		s.metrics.Observe(metrics.TransportRPC, operationLabel(req.Method, resp.Error), started, failure)
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

// operationLabel keeps caller-chosen method names out of metric labels.
func operationLabel(method string, rerr *rpcError) string {
	if rerr != nil && (rerr.Code == codeMethodNotFound || rerr.Code == codeInvalidRequest) {
		return metrics.OperationUnknown
	}
	return method
}

type listParams struct {
	Flagged   *bool  `json:"flagged"`
	Status    string `json:"status"`
	EventType string `json:"event_type"`
	Priority  string `json:"priority"`
	Q         string `json:"q"`
	Limit     int    `json:"limit"`
}

func (p listParams) filter() domain.ListFilter {
	return domain.ListFilter{
		Flagged:   p.Flagged,
		Status:    domain.Status(p.Status),
		EventType: domain.EventType(p.EventType),
		Priority:  domain.Priority(p.Priority),
		Search:    p.Q,
		Limit:     p.Limit,
	}
}

type refParams struct {
	Kind     string   `json:"kind"`
	ID       string   `json:"id"`
	Relation string   `json:"relation"`
	IDs      []string `json:"ids"`
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInvalidRequest, Message: "invalid request"}, ID: req.ID}
	}

	switch req.Method {
	case "people.list":
		return s.list(ctx, req, domain.KindPerson)
	case "vehicles.list":
		return s.list(ctx, req, domain.KindVehicle)
	case "incidents.list":
		return s.list(ctx, req, domain.KindIncident)
	case "cases.list":
		return s.list(ctx, req, domain.KindCase)
	case "incidents.recent":
		var p struct {
			Limit int `json:"limit"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.RecentIncidents(ctx, p.Limit)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "relations.resolve":
		var p refParams
		if !decodeParams(req.Params, &p) || p.ID == "" || p.Relation == "" {
			return invalidParams(req.ID)
		}
		kind, err := domain.ParseKind(p.Kind)
		if err != nil {
			return appError(req.ID, err)
		}
		out, err := s.service.Relations().ResolveRelated(ctx, kind, p.ID, p.Relation)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "relations.replace":
		var p refParams
		if !decodeParams(req.Params, &p) || p.ID == "" || p.Relation == "" || p.IDs == nil {
			return invalidParams(req.ID)
		}
		kind, err := domain.ParseKind(p.Kind)
		if err != nil {
			return appError(req.ID, err)
		}
		if err := s.service.Relations().ReplaceRelations(ctx, kind, p.ID, p.Relation, p.IDs); err != nil {
			return appError(req.ID, err)
		}
		logger.Info("relations replaced", "kind", kind, "id", p.ID, "relation", p.Relation, "count", len(p.IDs))
		return response{JSONRPC: "2.0", Result: map[string]any{"ok": true}, ID: req.ID}
	case "graph.build":
		var p refParams
		if !decodeParams(req.Params, &p) || p.ID == "" {
			return invalidParams(req.ID)
		}
		kind, err := domain.ParseKind(p.Kind)
		if err != nil {
			return appError(req.ID, err)
		}
		out, err := s.service.Graphs().Build(ctx, kind, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "dashboard.stats":
		out, err := s.service.DashboardStats(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	case "status.add":
		var p struct {
			CaseID  string `json:"case_id"`
			Message string `json:"message"`
			UserID  string `json:"user_id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.service.AddStatusUpdate(ctx, p.CaseID, p.Message, p.UserID)
		if err != nil {
			return appError(req.ID, err)
		}
		logger.Info("status update added", "case", p.CaseID, "user", p.UserID)
		return response{JSONRPC: "2.0", Result: out, ID: req.ID}
	default:
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeMethodNotFound, Message: "method not found"}, ID: req.ID}
	}
}

func (s *Server) list(ctx context.Context, req request, kind domain.Kind) response {
	var p listParams
	if !decodeParams(req.Params, &p) {
		return invalidParams(req.ID)
	}
	out, err := s.service.Relations().ListEntities(ctx, kind, p.filter())
	if err != nil {
		return appError(req.ID, err)
	}
	return response{JSONRPC: "2.0", Result: out, ID: req.ID}
}

// decodeParams accepts absent params as an empty object.
func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	return json.Unmarshal(raw, out) == nil
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInvalidParams, Message: "invalid params"}, ID: id}
}

func appError(id any, err error) response {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeNotFound, Message: err.Error()}, ID: id}
	case errors.Is(err, domain.ErrInvalidInput), domain.IsConfiguration(err):
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeBadInput, Message: err.Error()}, ID: id}
	default:
		return internalError(id, err)
	}
}

func internalError(id any, err error) response {
	logger.Error("rpc internal error", "err", err)
	return response{JSONRPC: "2.0", Error: &rpcError{Code: codeInternal, Message: fmt.Sprintf("internal error: %v", err)}, ID: id}
}
