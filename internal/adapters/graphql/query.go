package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

var idArg = graphql.FieldConfigArgument{
	"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
}

func searchArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"search": &graphql.ArgumentConfig{Type: graphql.String},
	}
	for name, a := range extra {
		args[name] = a
	}
	return args
}

func searchOnly(args map[string]interface{}) domain.ListFilter {
	return domain.ListFilter{Search: argString(args, "search")}
}

func searchTerm(args map[string]interface{}) domain.ListFilter {
	return domain.ListFilter{Search: argString(args, "searchTerm")}
}

func flagged(arg string) func(map[string]interface{}) domain.ListFilter {
	return func(args map[string]interface{}) domain.ListFilter {
		return domain.ListFilter{Flagged: optBool(args, arg), Search: argString(args, "search")}
	}
}

func (s *Schema) queryFields() graphql.Fields {
	t := s.types
	termArg := graphql.FieldConfigArgument{
		"searchTerm": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	fields := graphql.Fields{
		"person": {Type: t.person, Args: idArg, Resolve: s.getOne(domain.KindPerson)},
		"people": {
			Type: listOf(t.person),
			Args: searchArgs(graphql.FieldConfigArgument{
				"isPersonOfInterest": &graphql.ArgumentConfig{Type: graphql.Boolean},
			}),
			Resolve: s.list(domain.KindPerson, flagged("isPersonOfInterest")),
		},
		"searchPeople": {Type: listOf(t.person), Args: termArg, Resolve: s.list(domain.KindPerson, searchTerm)},

		"vehicle": {Type: t.vehicle, Args: idArg, Resolve: s.getOne(domain.KindVehicle)},
		"vehicles": {
			Type: listOf(t.vehicle),
			Args: searchArgs(graphql.FieldConfigArgument{
				"isVehicleOfInterest": &graphql.ArgumentConfig{Type: graphql.Boolean},
			}),
			Resolve: s.list(domain.KindVehicle, flagged("isVehicleOfInterest")),
		},
		"searchVehicles": {Type: listOf(t.vehicle), Args: termArg, Resolve: s.list(domain.KindVehicle, searchTerm)},

		"location":      {Type: t.location, Args: idArg, Resolve: s.getOne(domain.KindLocation)},
		"locations":     {Type: listOf(t.location), Args: searchArgs(nil), Resolve: s.list(domain.KindLocation, searchOnly)},
		"tag":           {Type: t.tag, Args: idArg, Resolve: s.getOne(domain.KindTag)},
		"tags":          {Type: listOf(t.tag), Args: searchArgs(nil), Resolve: s.list(domain.KindTag, searchOnly)},
		"product":       {Type: t.product, Args: idArg, Resolve: s.getOne(domain.KindProduct)},
		"products":      {Type: listOf(t.product), Args: searchArgs(nil), Resolve: s.list(domain.KindProduct, searchOnly)},
		"evidence":      {Type: t.evidence, Args: idArg, Resolve: s.getOne(domain.KindEvidence)},
		"evidenceItems": {Type: listOf(t.evidence), Args: searchArgs(nil), Resolve: s.list(domain.KindEvidence, searchOnly)},

		"incident": {Type: t.incident, Args: idArg, Resolve: s.getOne(domain.KindIncident)},
		"incidents": {
			Type: listOf(t.incident),
			Args: searchArgs(graphql.FieldConfigArgument{
				"status":    &graphql.ArgumentConfig{Type: StatusEnum},
				"eventType": &graphql.ArgumentConfig{Type: EventTypeEnum},
			}),
			Resolve: s.list(domain.KindIncident, func(args map[string]interface{}) domain.ListFilter {
				f := searchOnly(args)
				if v := optEnum[domain.Status](args, "status"); v != nil {
					f.Status = *v
				}
				if v := optEnum[domain.EventType](args, "eventType"); v != nil {
					f.EventType = *v
				}
				return f
			}),
		},
		"recentIncidents": {
			Type: listOf(t.incident),
			Args: graphql.FieldConfigArgument{
				"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit, _ := p.Args["limit"].(int)
				return s.service.RecentIncidents(p.Context, limit)
			},
		},

		"case": {Type: t.caseType, Args: idArg, Resolve: s.getOne(domain.KindCase)},
		"cases": {
			Type: listOf(t.caseType),
			Args: searchArgs(graphql.FieldConfigArgument{
				"status":   &graphql.ArgumentConfig{Type: StatusEnum},
				"priority": &graphql.ArgumentConfig{Type: PriorityEnum},
			}),
			Resolve: s.list(domain.KindCase, func(args map[string]interface{}) domain.ListFilter {
				f := searchOnly(args)
				if v := optEnum[domain.Status](args, "status"); v != nil {
					f.Status = *v
				}
				if v := optEnum[domain.Priority](args, "priority"); v != nil {
					f.Priority = *v
				}
				return f
			}),
		},
		"statusUpdates": {
			Type: listOf(t.statusUpdate),
			Args: graphql.FieldConfigArgument{
				"caseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.Relations().ResolveRelated(p.Context, domain.KindCase, argString(p.Args, "caseId"), "statusUpdates")
			},
		},

		"dashboardStats": {
			Type: listOf(t.stat),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.DashboardStats(p.Context)
			},
		},

		"personConnections": {
			Type:    nonNull(t.graph),
			Args:    graphql.FieldConfigArgument{"personId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
			Resolve: s.connections(domain.KindPerson, "personId"),
		},
		"caseConnections": {
			Type:    nonNull(t.graph),
			Args:    graphql.FieldConfigArgument{"caseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
			Resolve: s.connections(domain.KindCase, "caseId"),
		},
		"incidentConnections": {
			Type:    nonNull(t.graph),
			Args:    graphql.FieldConfigArgument{"incidentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
			Resolve: s.connections(domain.KindIncident, "incidentId"),
		},
		"entityConnections": {
			Type: nonNull(t.graph),
			Args: graphql.FieldConfigArgument{
				"kind": &graphql.ArgumentConfig{Type: graphql.NewNonNull(EntityKindEnum)},
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				kind, _ := p.Args["kind"].(domain.Kind)
				return s.service.Graphs().Build(p.Context, kind, argString(p.Args, "id"))
			},
		},

		"evidenceDownloadUrl": {
			Type: nonNull(graphql.String),
			Args: idArg,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.EvidenceDownloadURL(p.Context, argString(p.Args, "id"))
			},
		},
	}

	for name, f := range fields {
		f.Resolve = s.instrument(name, f.Resolve)
	}
	return fields
}
