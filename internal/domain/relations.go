package domain

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindPerson       Kind = "person"
	KindVehicle      Kind = "vehicle"
	KindLocation     Kind = "location"
	KindTag          Kind = "tag"
	KindProduct      Kind = "product"
	KindEvidence     Kind = "evidence"
	KindIncident     Kind = "incident"
	KindCase         Kind = "case"
	KindStatusUpdate Kind = "status_update"
)

var Kinds = []Kind{
	KindPerson, KindVehicle, KindLocation, KindTag, KindProduct,
	KindEvidence, KindIncident, KindCase, KindStatusUpdate,
}

// ParseKind is lenient about casing and separators: "StatusUpdate",
// "status-update" and "status_update" are the same kind.
func ParseKind(raw string) (Kind, error) {
	key := normalizeKey(raw)
	for _, k := range Kinds {
		if normalizeKey(string(k)) == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

type Shape int

const (
	// ShapeJoin relations go through a many-to-many join table.
	ShapeJoin Shape = iota + 1
	// ShapeChildren relations are rows of the target kind holding the owner's id.
	ShapeChildren
	// ShapeParent relations are a foreign key held by the owner row itself.
	ShapeParent
)

func (s Shape) String() string {
	switch s {
	case ShapeJoin:
		return "join"
	case ShapeChildren:
		return "children"
	case ShapeParent:
		return "parent"
	}
	return "unknown"
}

type Relation struct {
	Owner  Kind
	Name   string
	Target Kind
	Shape  Shape
	// Verb labels graph edges drawn for this relation.
	Verb string
	// Inbound edges point from the related entity to the owner, so that a
	// pair produces the same edge whichever side the graph starts from.
	Inbound bool
	// AppendOnly children are never detached from their owner.
	AppendOnly bool
}

// Replaceable reports whether the full counterpart set can be swapped in one
// operation. Parent relations change through the owner's own field instead.
func (r Relation) Replaceable() bool {
	if r.AppendOnly {
		return false
	}
	return r.Shape == ShapeJoin || r.Shape == ShapeChildren
}

func (r Relation) String() string {
	return fmt.Sprintf("%s.%s", r.Owner, r.Name)
}

const (
	VerbInvolvedIn     = "involved in"
	VerbAssociatedWith = "associated with"
	VerbPartOf         = "part of"
	VerbReported       = "reported"
)

var relations = []Relation{
	{Owner: KindPerson, Name: "incidents", Target: KindIncident, Shape: ShapeJoin, Verb: VerbInvolvedIn},
	{Owner: KindPerson, Name: "reportedIncidents", Target: KindIncident, Shape: ShapeChildren, Verb: VerbReported},
	{Owner: KindVehicle, Name: "incidents", Target: KindIncident, Shape: ShapeJoin, Verb: VerbInvolvedIn},
	{Owner: KindLocation, Name: "incidents", Target: KindIncident, Shape: ShapeChildren, Verb: VerbAssociatedWith},
	{Owner: KindTag, Name: "incidents", Target: KindIncident, Shape: ShapeJoin, Verb: VerbAssociatedWith},
	{Owner: KindProduct, Name: "incident", Target: KindIncident, Shape: ShapeParent, Verb: VerbPartOf},
	{Owner: KindEvidence, Name: "incident", Target: KindIncident, Shape: ShapeParent, Verb: VerbPartOf},

	{Owner: KindIncident, Name: "people", Target: KindPerson, Shape: ShapeJoin, Verb: VerbInvolvedIn, Inbound: true},
	{Owner: KindIncident, Name: "vehicles", Target: KindVehicle, Shape: ShapeJoin, Verb: VerbInvolvedIn, Inbound: true},
	{Owner: KindIncident, Name: "reporter", Target: KindPerson, Shape: ShapeParent, Verb: VerbReported, Inbound: true},
	{Owner: KindIncident, Name: "location", Target: KindLocation, Shape: ShapeParent, Verb: VerbAssociatedWith, Inbound: true},
	{Owner: KindIncident, Name: "tags", Target: KindTag, Shape: ShapeJoin, Verb: VerbAssociatedWith, Inbound: true},
	{Owner: KindIncident, Name: "products", Target: KindProduct, Shape: ShapeChildren, Verb: VerbPartOf, Inbound: true},
	{Owner: KindIncident, Name: "evidence", Target: KindEvidence, Shape: ShapeChildren, Verb: VerbPartOf, Inbound: true},
	{Owner: KindIncident, Name: "cases", Target: KindCase, Shape: ShapeJoin, Verb: VerbPartOf},

	{Owner: KindCase, Name: "incidents", Target: KindIncident, Shape: ShapeJoin, Verb: VerbPartOf, Inbound: true},
	{Owner: KindCase, Name: "statusUpdates", Target: KindStatusUpdate, Shape: ShapeChildren, Verb: VerbPartOf, Inbound: true, AppendOnly: true},
	{Owner: KindStatusUpdate, Name: "case", Target: KindCase, Shape: ShapeParent, Verb: VerbPartOf},
}

// graphRelations lists, per root kind, the relations expanded by the graph
// builder, in node order. Every pair drawn from one side is also drawn from
// the other.
var graphRelations = map[Kind][]string{
	KindPerson:       {"incidents", "reportedIncidents"},
	KindVehicle:      {"incidents"},
	KindLocation:     {"incidents"},
	KindTag:          {"incidents"},
	KindProduct:      {"incident"},
	KindEvidence:     {"incident"},
	KindIncident:     {"people", "vehicles", "reporter", "location", "tags", "products", "evidence", "cases"},
	KindCase:         {"incidents", "statusUpdates"},
	KindStatusUpdate: {"case"},
}

func LookupRelation(kind Kind, name string) (Relation, error) {
	if !kind.Valid() {
		return Relation{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	for _, r := range relations {
		if r.Owner == kind && r.Name == name {
			return r, nil
		}
	}
	return Relation{}, fmt.Errorf("%w: %s.%s", ErrUnknownRelation, kind, name)
}

func RelationsOf(kind Kind) []Relation {
	out := make([]Relation, 0, 8)
	for _, r := range relations {
		if r.Owner == kind {
			out = append(out, r)
		}
	}
	return out
}

// AllRelations returns a copy of the registry.
func AllRelations() []Relation {
	out := make([]Relation, len(relations))
	copy(out, relations)
	return out
}

func GraphRelations(kind Kind) ([]Relation, error) {
	names, ok := graphRelations[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no graph defined for %q", ErrUnknownKind, kind)
	}
	out := make([]Relation, 0, len(names))
	for _, name := range names {
		r, err := LookupRelation(kind, name)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
