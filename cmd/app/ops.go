package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

const (
	personFields   = "id firstName lastName alias gender age isPersonOfInterest createdAt updatedAt"
	vehicleFields  = "id licensePlate state make model year color isVehicleOfInterest createdAt updatedAt"
	incidentFields = "id title eventType description dateTime status createdAt updatedAt"
	caseFields     = "id title description status priority assignedTo createdAt updatedAt"
)

var errNeedsSocket = errors.New("relations commands are only available over --transport uds")

type listQuery struct {
	Flagged   *bool
	Status    string
	EventType string
	Priority  string
	Q         string
}

func (q listQuery) params() map[string]any {
	p := map[string]any{}
	if q.Flagged != nil {
		p["flagged"] = *q.Flagged
	}
	setIf(p, "status", q.Status)
	setIf(p, "event_type", q.EventType)
	setIf(p, "priority", q.Priority)
	setIf(p, "q", q.Q)
	return p
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func doPeopleList(ctx context.Context, cfg cliConfig, q listQuery, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "people.list", q.params(), out)
	}
	vars := map[string]any{"search": q.Q}
	if q.Flagged != nil {
		vars["flagged"] = *q.Flagged
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($flagged: Boolean, $search: String) { people(isPersonOfInterest: $flagged, search: $search) { "+personFields+" } }",
		vars, "people", out)
}

func doVehiclesList(ctx context.Context, cfg cliConfig, q listQuery, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "vehicles.list", q.params(), out)
	}
	vars := map[string]any{"search": q.Q}
	if q.Flagged != nil {
		vars["flagged"] = *q.Flagged
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($flagged: Boolean, $search: String) { vehicles(isVehicleOfInterest: $flagged, search: $search) { "+vehicleFields+" } }",
		vars, "vehicles", out)
}

func doIncidentsList(ctx context.Context, cfg cliConfig, q listQuery, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "incidents.list", q.params(), out)
	}
	vars := map[string]any{"search": q.Q}
	setIf(vars, "status", q.Status)
	setIf(vars, "eventType", q.EventType)
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($status: Status, $eventType: EventType, $search: String) { incidents(status: $status, eventType: $eventType, search: $search) { "+incidentFields+" } }",
		vars, "incidents", out)
}

func doIncidentsRecent(ctx context.Context, cfg cliConfig, limit int, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "incidents.recent", map[string]any{"limit": limit}, out)
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($limit: Int) { recentIncidents(limit: $limit) { "+incidentFields+" } }",
		map[string]any{"limit": limit}, "recentIncidents", out)
}

func doCasesList(ctx context.Context, cfg cliConfig, q listQuery, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "cases.list", q.params(), out)
	}
	vars := map[string]any{"search": q.Q}
	setIf(vars, "status", q.Status)
	setIf(vars, "priority", q.Priority)
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($status: Status, $priority: Priority, $search: String) { cases(status: $status, priority: $priority, search: $search) { "+caseFields+" } }",
		vars, "cases", out)
}

// doRelationsGet decodes the counterparts into their concrete types so they
// can be labelled.
func doRelationsGet(ctx context.Context, cfg cliConfig, rel domain.Relation, id string) ([]domain.Entity, error) {
	if cfg.Transport != transportUDS {
		return nil, errNeedsSocket
	}
	var raw json.RawMessage
	params := map[string]any{"kind": rel.Owner, "id": id, "relation": rel.Name}
	if err := newRPCClient(cfg.Socket).call(ctx, "relations.resolve", params, &raw); err != nil {
		return nil, err
	}
	return decodeEntities(rel.Target, raw)
}

func doRelationsSet(ctx context.Context, cfg cliConfig, rel domain.Relation, id string, ids []string) error {
	if cfg.Transport != transportUDS {
		return errNeedsSocket
	}
	params := map[string]any{"kind": rel.Owner, "id": id, "relation": rel.Name, "ids": ids}
	return newRPCClient(cfg.Socket).call(ctx, "relations.replace", params, nil)
}

func doGraph(ctx context.Context, cfg cliConfig, kind domain.Kind, id string, out *domain.Graph) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "graph.build", map[string]any{"kind": kind, "id": id}, out)
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"query($kind: EntityKind!, $id: ID!) { entityConnections(kind: $kind, id: $id) { nodes { id label type } edges { id source target label } } }",
		map[string]any{"kind": strings.ToUpper(string(kind)), "id": id}, "entityConnections", out)
}

func doStats(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "dashboard.stats", nil, out)
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"{ dashboardStats { title value change direction period } }",
		nil, "dashboardStats", out)
}

func doStatusAdd(ctx context.Context, cfg cliConfig, caseID, message, userID string, out any) error {
	if cfg.Transport == transportUDS {
		return newRPCClient(cfg.Socket).call(ctx, "status.add", map[string]any{
			"case_id": caseID,
			"message": message,
			"user_id": userID,
		}, out)
	}
	return newAPIClient(cfg.Server).graphql(ctx,
		"mutation($caseId: ID!, $message: String!, $userId: ID!) { addStatusUpdate(caseId: $caseId, message: $message, userId: $userId) { id caseId message userId createdAt } }",
		map[string]any{"caseId": caseID, "message": message, "userId": userID}, "addStatusUpdate", out)
}

func decodeEntities(kind domain.Kind, raw json.RawMessage) ([]domain.Entity, error) {
	switch kind {
	case domain.KindPerson:
		return decodeAs[domain.Person](raw)
	case domain.KindVehicle:
		return decodeAs[domain.Vehicle](raw)
	case domain.KindLocation:
		return decodeAs[domain.Location](raw)
	case domain.KindTag:
		return decodeAs[domain.Tag](raw)
	case domain.KindProduct:
		return decodeAs[domain.Product](raw)
	case domain.KindEvidence:
		return decodeAs[domain.Evidence](raw)
	case domain.KindIncident:
		return decodeAs[domain.Incident](raw)
	case domain.KindCase:
		return decodeAs[domain.Case](raw)
	case domain.KindStatusUpdate:
		return decodeAs[domain.StatusUpdate](raw)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

func decodeAs[T domain.Entity](raw json.RawMessage) ([]domain.Entity, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]domain.Entity, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out, nil
}
