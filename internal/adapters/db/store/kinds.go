package store

import (
	"fmt"

	"github.com/anilpal6795/crime-linker/internal/domain"
	"gorm.io/gorm"
)

// kindTable describes how one entity kind is stored and which filters apply
// to it.
type kindTable struct {
	table  string
	search []string
	// flag is the boolean column matched by ListFilter.Flagged.
	flag       string
	status     bool
	eventType  bool
	priority   bool
	defaultOrd string
	// untimed tables carry no created_at column.
	untimed bool
	find    func(q *gorm.DB) ([]domain.Entity, error)
}

var kindTables = map[domain.Kind]kindTable{
	domain.KindPerson: {
		table:  "people",
		search: []string{"first_name", "last_name", "alias"},
		flag:   "is_person_of_interest",
		find:   func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, PersonModel.toDomain) },
	},
	domain.KindVehicle: {
		table:  "vehicles",
		search: []string{"license_plate", "make", "model"},
		flag:   "is_vehicle_of_interest",
		find:   func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, VehicleModel.toDomain) },
	},
	domain.KindLocation: {
		table:  "locations",
		search: []string{"address", "city"},
		find:   func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, LocationModel.toDomain) },
	},
	domain.KindTag: {
		table:   "tags",
		search:  []string{"name"},
		untimed: true,
		find:    func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, TagModel.toDomain) },
	},
	domain.KindProduct: {
		table:  "products",
		search: []string{"name", "description"},
		find:   func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, ProductModel.toDomain) },
	},
	domain.KindEvidence: {
		table:  "evidence",
		search: []string{"name", "description"},
		find:   func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, EvidenceModel.toDomain) },
	},
	domain.KindIncident: {
		table:     "incidents",
		search:    []string{"title", "description"},
		status:    true,
		eventType: true,
		find:      func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, IncidentModel.toDomain) },
	},
	domain.KindCase: {
		table:    "cases",
		search:   []string{"title", "description"},
		status:   true,
		priority: true,
		find:     func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, CaseModel.toDomain) },
	},
	domain.KindStatusUpdate: {
		table:      "status_updates",
		search:     []string{"message"},
		defaultOrd: "created_at DESC, id DESC",
		find:       func(q *gorm.DB) ([]domain.Entity, error) { return findAs(q, StatusUpdateModel.toDomain) },
	},
}

func tableFor(kind domain.Kind) (kindTable, error) {
	kt, ok := kindTables[kind]
	if !ok {
		return kindTable{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return kt, nil
}

func (kt kindTable) order() string {
	if kt.defaultOrd != "" {
		return kt.defaultOrd
	}
	// ids are UUIDv7, so id order is insertion order
	return "id ASC"
}

func findAs[M any, E domain.Entity](q *gorm.DB, conv func(M) E) ([]domain.Entity, error) {
	rows := make([]M, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Entity, 0, len(rows))
	for _, m := range rows {
		result = append(result, conv(m))
	}
	return result, nil
}

// relationPlan tells the repository which table and columns back a relation.
//
//	join:     SELECT target FROM table WHERE owner = ? ORDER BY id
//	children: rows of table WHERE owner = ?
//	parent:   SELECT target FROM table WHERE id = ?
type relationPlan struct {
	table  string
	owner  string
	target string
}

var relationPlans = map[string]relationPlan{
	"person.incidents":         {table: "incident_people", owner: "person_id", target: "incident_id"},
	"person.reportedIncidents": {table: "incidents", owner: "reporter_id"},
	"vehicle.incidents":        {table: "incident_vehicles", owner: "vehicle_id", target: "incident_id"},
	"location.incidents":       {table: "incidents", owner: "location_id"},
	"tag.incidents":            {table: "incident_tags", owner: "tag_id", target: "incident_id"},
	"product.incident":         {table: "products", target: "incident_id"},
	"evidence.incident":        {table: "evidence", target: "incident_id"},
	"incident.people":          {table: "incident_people", owner: "incident_id", target: "person_id"},
	"incident.vehicles":        {table: "incident_vehicles", owner: "incident_id", target: "vehicle_id"},
	"incident.reporter":        {table: "incidents", target: "reporter_id"},
	"incident.location":        {table: "incidents", target: "location_id"},
	"incident.tags":            {table: "incident_tags", owner: "incident_id", target: "tag_id"},
	"incident.products":        {table: "products", owner: "incident_id"},
	"incident.evidence":        {table: "evidence", owner: "incident_id"},
	"incident.cases":           {table: "case_incidents", owner: "incident_id", target: "case_id"},
	"case.incidents":           {table: "case_incidents", owner: "case_id", target: "incident_id"},
	"case.statusUpdates":       {table: "status_updates", owner: "case_id"},
	"status_update.case":       {table: "status_updates", target: "case_id"},
}

func planFor(rel domain.Relation) (relationPlan, error) {
	p, ok := relationPlans[rel.String()]
	if !ok {
		return relationPlan{}, fmt.Errorf("%w: %s has no storage mapping", domain.ErrUnknownRelation, rel)
	}
	return p, nil
}

// cascades run, in order, before a row of the kind is deleted. Each statement
// takes the deleted id as its only argument.
var cascades = map[domain.Kind][]string{
	domain.KindPerson: {
		"DELETE FROM incident_people WHERE person_id = ?",
		"UPDATE incidents SET reporter_id = NULL WHERE reporter_id = ?",
	},
	domain.KindVehicle: {
		"DELETE FROM incident_vehicles WHERE vehicle_id = ?",
	},
	domain.KindLocation: {
		"UPDATE incidents SET location_id = NULL WHERE location_id = ?",
	},
	domain.KindTag: {
		"DELETE FROM incident_tags WHERE tag_id = ?",
	},
	domain.KindIncident: {
		"DELETE FROM incident_people WHERE incident_id = ?",
		"DELETE FROM incident_vehicles WHERE incident_id = ?",
		"DELETE FROM incident_tags WHERE incident_id = ?",
		"DELETE FROM case_incidents WHERE incident_id = ?",
		"UPDATE products SET incident_id = NULL WHERE incident_id = ?",
		"UPDATE evidence SET incident_id = NULL WHERE incident_id = ?",
	},
	domain.KindCase: {
		"DELETE FROM case_incidents WHERE case_id = ?",
		"DELETE FROM status_updates WHERE case_id = ?",
	},
}
