package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

type objectTypes struct {
	person       *graphql.Object
	vehicle      *graphql.Object
	location     *graphql.Object
	tag          *graphql.Object
	product      *graphql.Object
	evidence     *graphql.Object
	incident     *graphql.Object
	caseType     *graphql.Object
	statusUpdate *graphql.Object
	stat         *graphql.Object
	graph        *graphql.Object
}

func nonNull(t graphql.Output) graphql.Output { return graphql.NewNonNull(t) }

func listOf(t graphql.Output) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

var timestamps = graphql.Fields{
	"createdAt": &graphql.Field{Type: nonNull(DateTime)},
	"updatedAt": &graphql.Field{Type: nonNull(DateTime)},
}

func withTimestamps(fields graphql.Fields) graphql.Fields {
	for name, f := range timestamps {
		fields[name] = f
	}
	return fields
}

// newObjectTypes builds the entity types. Relation fields are thunks because
// the types refer to each other.
func (s *Schema) newObjectTypes() *objectTypes {
	t := &objectTypes{}

	t.person = graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":        &graphql.Field{Type: nonNull(graphql.ID)},
				"firstName": &graphql.Field{Type: graphql.String},
				"lastName":  &graphql.Field{Type: graphql.String},
				"alias":     &graphql.Field{Type: graphql.String},
				"ethnicity": &graphql.Field{Type: graphql.String},
				"gender": &graphql.Field{
					Type: GenderEnum,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						if g := p.Source.(domain.Person).Gender; g != nil {
							return *g, nil
						}
						return nil, nil
					},
				},
				"age":                    &graphql.Field{Type: graphql.Int},
				"height":                 &graphql.Field{Type: graphql.String},
				"build":                  &graphql.Field{Type: graphql.String},
				"distinguishingFeatures": &graphql.Field{Type: graphql.String},
				"modus":                  &graphql.Field{Type: graphql.String},
				"isPersonOfInterest":     &graphql.Field{Type: nonNull(graphql.Boolean)},
				"incidents":              s.relationField(domain.KindPerson, "incidents", listOf(t.incident)),
				"reportedIncidents":      s.relationField(domain.KindPerson, "reportedIncidents", listOf(t.incident)),
			})
		}),
	})

	t.vehicle = graphql.NewObject(graphql.ObjectConfig{
		Name: "Vehicle",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":                     &graphql.Field{Type: nonNull(graphql.ID)},
				"licensePlate":           &graphql.Field{Type: nonNull(graphql.String)},
				"state":                  &graphql.Field{Type: graphql.String},
				"make":                   &graphql.Field{Type: graphql.String},
				"model":                  &graphql.Field{Type: graphql.String},
				"year":                   &graphql.Field{Type: graphql.Int},
				"color":                  &graphql.Field{Type: graphql.String},
				"distinguishingFeatures": &graphql.Field{Type: graphql.String},
				"isVehicleOfInterest":    &graphql.Field{Type: nonNull(graphql.Boolean)},
				"incidents":              s.relationField(domain.KindVehicle, "incidents", listOf(t.incident)),
			})
		}),
	})

	t.location = graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":        &graphql.Field{Type: nonNull(graphql.ID)},
				"address":   &graphql.Field{Type: graphql.String},
				"city":      &graphql.Field{Type: graphql.String},
				"state":     &graphql.Field{Type: graphql.String},
				"zipCode":   &graphql.Field{Type: graphql.String},
				"latitude":  &graphql.Field{Type: graphql.Float},
				"longitude": &graphql.Field{Type: graphql.Float},
				"incidents": s.relationField(domain.KindLocation, "incidents", listOf(t.incident)),
			})
		}),
	})

	t.tag = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: nonNull(graphql.ID)},
				"name":      &graphql.Field{Type: nonNull(graphql.String)},
				"color":     &graphql.Field{Type: graphql.String},
				"incidents": s.relationField(domain.KindTag, "incidents", listOf(t.incident)),
			}
		}),
	})

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":          &graphql.Field{Type: nonNull(graphql.ID)},
				"name":        &graphql.Field{Type: nonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.String},
				"quantity":    &graphql.Field{Type: graphql.Int},
				"value":       &graphql.Field{Type: graphql.Float},
				"incident":    s.relationField(domain.KindProduct, "incident", t.incident),
			})
		}),
	})

	t.evidence = graphql.NewObject(graphql.ObjectConfig{
		Name: "Evidence",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":          &graphql.Field{Type: nonNull(graphql.ID)},
				"name":        &graphql.Field{Type: nonNull(graphql.String)},
				"type":        &graphql.Field{Type: nonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.String},
				"fileUrl":     &graphql.Field{Type: graphql.String},
				"incident":    s.relationField(domain.KindEvidence, "incident", t.incident),
			})
		}),
	})

	t.incident = graphql.NewObject(graphql.ObjectConfig{
		Name: "Incident",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":          &graphql.Field{Type: nonNull(graphql.ID)},
				"title":       &graphql.Field{Type: nonNull(graphql.String)},
				"eventType":   &graphql.Field{Type: nonNull(EventTypeEnum)},
				"description": &graphql.Field{Type: nonNull(graphql.String)},
				"dateTime":    &graphql.Field{Type: nonNull(DateTime)},
				"status":      &graphql.Field{Type: nonNull(StatusEnum)},
				"location":    s.relationField(domain.KindIncident, "location", t.location),
				"reporter":    s.relationField(domain.KindIncident, "reporter", t.person),
				"people":      s.relationField(domain.KindIncident, "people", listOf(t.person)),
				"vehicles":    s.relationField(domain.KindIncident, "vehicles", listOf(t.vehicle)),
				"tags":        s.relationField(domain.KindIncident, "tags", listOf(t.tag)),
				"products":    s.relationField(domain.KindIncident, "products", listOf(t.product)),
				"evidence":    s.relationField(domain.KindIncident, "evidence", listOf(t.evidence)),
				"cases":       s.relationField(domain.KindIncident, "cases", listOf(t.caseType)),
			})
		}),
	})

	t.caseType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Case",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return withTimestamps(graphql.Fields{
				"id":            &graphql.Field{Type: nonNull(graphql.ID)},
				"title":         &graphql.Field{Type: nonNull(graphql.String)},
				"description":   &graphql.Field{Type: nonNull(graphql.String)},
				"status":        &graphql.Field{Type: nonNull(StatusEnum)},
				"priority":      &graphql.Field{Type: nonNull(PriorityEnum)},
				"assignedTo":    &graphql.Field{Type: graphql.ID},
				"incidents":     s.relationField(domain.KindCase, "incidents", listOf(t.incident)),
				"statusUpdates": s.relationField(domain.KindCase, "statusUpdates", listOf(t.statusUpdate)),
			})
		}),
	})

	t.statusUpdate = graphql.NewObject(graphql.ObjectConfig{
		Name: "StatusUpdate",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        &graphql.Field{Type: nonNull(graphql.ID)},
				"caseId":    &graphql.Field{Type: nonNull(graphql.ID)},
				"message":   &graphql.Field{Type: nonNull(graphql.String)},
				"userId":    &graphql.Field{Type: nonNull(graphql.ID)},
				"createdAt": &graphql.Field{Type: nonNull(DateTime)},
				"case":      s.relationField(domain.KindStatusUpdate, "case", t.caseType),
			}
		}),
	})

	t.stat = graphql.NewObject(graphql.ObjectConfig{
		Name: "DashboardStat",
		Fields: graphql.Fields{
			"title":     &graphql.Field{Type: nonNull(graphql.String)},
			"value":     &graphql.Field{Type: nonNull(graphql.String)},
			"change":    &graphql.Field{Type: nonNull(graphql.Float)},
			"direction": &graphql.Field{Type: nonNull(graphql.String)},
			"period":    &graphql.Field{Type: nonNull(graphql.String)},
		},
	})

	node := graphql.NewObject(graphql.ObjectConfig{
		Name: "GraphNode",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: nonNull(graphql.ID)},
			"label": &graphql.Field{Type: nonNull(graphql.String)},
			"type":  &graphql.Field{Type: nonNull(graphql.String)},
			"data":  &graphql.Field{Type: JSON},
		},
	})
	edge := graphql.NewObject(graphql.ObjectConfig{
		Name: "GraphEdge",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: nonNull(graphql.ID)},
			"source": &graphql.Field{Type: nonNull(graphql.ID)},
			"target": &graphql.Field{Type: nonNull(graphql.ID)},
			"label":  &graphql.Field{Type: nonNull(graphql.String)},
		},
	})
	t.graph = graphql.NewObject(graphql.ObjectConfig{
		Name: "Graph",
		Fields: graphql.Fields{
			"nodes": &graphql.Field{Type: listOf(node)},
			"edges": &graphql.Field{Type: listOf(edge)},
		},
	})
	return t
}

// relationField resolves one registry relation of the parent entity on
// demand. Parent relations render as a single nullable object.
func (s *Schema) relationField(kind domain.Kind, relation string, out graphql.Output) *graphql.Field {
	rel, err := domain.LookupRelation(kind, relation)
	if err != nil {
		panic(err)
	}
	single := rel.Shape == domain.ShapeParent
	return &graphql.Field{
		Type: out,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			owner, ok := p.Source.(domain.Entity)
			if !ok {
				return nil, nil
			}
			related, err := s.service.Relations().ResolveRelated(p.Context, kind, owner.EntityID(), relation)
			if err != nil {
				return nil, classify(err)
			}
			if single {
				if len(related) == 0 {
					return nil, nil
				}
				return related[0], nil
			}
			return related, nil
		},
	}
}
