package graphql

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/domain"
)

type argSpec map[string]graphql.Input

func (a argSpec) with(required map[string]graphql.Input) graphql.FieldConfigArgument {
	out := graphql.FieldConfigArgument{}
	for name, t := range a {
		out[name] = &graphql.ArgumentConfig{Type: t}
	}
	for name, t := range required {
		out[name] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
	}
	return out
}

var (
	idList = graphql.NewList(graphql.NewNonNull(graphql.ID))

	personArgs = argSpec{
		"firstName":              graphql.String,
		"lastName":               graphql.String,
		"alias":                  graphql.String,
		"ethnicity":              graphql.String,
		"gender":                 GenderEnum,
		"age":                    graphql.Int,
		"height":                 graphql.String,
		"build":                  graphql.String,
		"distinguishingFeatures": graphql.String,
		"modus":                  graphql.String,
		"isPersonOfInterest":     graphql.Boolean,
	}
	vehicleArgs = argSpec{
		"licensePlate":           graphql.String,
		"state":                  graphql.String,
		"make":                   graphql.String,
		"model":                  graphql.String,
		"year":                   graphql.Int,
		"color":                  graphql.String,
		"distinguishingFeatures": graphql.String,
		"isVehicleOfInterest":    graphql.Boolean,
	}
	incidentArgs = argSpec{
		"title":       graphql.String,
		"eventType":   EventTypeEnum,
		"description": graphql.String,
		"dateTime":    DateTime,
		"status":      StatusEnum,
		"locationId":  graphql.ID,
		"reporterId":  graphql.ID,
		"peopleIds":   idList,
		"vehicleIds":  idList,
		"tagIds":      idList,
		"productIds":  idList,
		"evidenceIds": idList,
	}
	caseArgs = argSpec{
		"title":       graphql.String,
		"description": graphql.String,
		"status":      StatusEnum,
		"priority":    PriorityEnum,
		"assignedTo":  graphql.ID,
		"incidentIds": idList,
	}
)

func withoutArgs(a argSpec, names ...string) argSpec {
	out := argSpec{}
	for k, v := range a {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

func (s *Schema) mutationFields() graphql.Fields {
	t := s.types
	id := map[string]graphql.Input{"id": graphql.ID}

	fields := graphql.Fields{
		"createPerson": {Type: nonNull(t.person), Args: personArgs.with(nil), Resolve: s.createPerson},
		"updatePerson": {Type: nonNull(t.person), Args: personArgs.with(id), Resolve: s.updatePerson},
		"deletePerson": {Type: nonNull(graphql.Boolean), Args: idArg, Resolve: s.remove(domain.KindPerson)},

		"createVehicle": {
			Type:    nonNull(t.vehicle),
			Args:    withoutArgs(vehicleArgs, "licensePlate").with(map[string]graphql.Input{"licensePlate": graphql.String}),
			Resolve: s.createVehicle,
		},
		"updateVehicle": {Type: nonNull(t.vehicle), Args: vehicleArgs.with(id), Resolve: s.updateVehicle},
		"deleteVehicle": {Type: nonNull(graphql.Boolean), Args: idArg, Resolve: s.remove(domain.KindVehicle)},

		"createIncident": {
			Type: nonNull(t.incident),
			Args: withoutArgs(incidentArgs, "title", "eventType").with(map[string]graphql.Input{
				"title":     graphql.String,
				"eventType": EventTypeEnum,
			}),
			Resolve: s.createIncident,
		},
		"updateIncident": {Type: nonNull(t.incident), Args: incidentArgs.with(id), Resolve: s.updateIncident},
		"deleteIncident": {Type: nonNull(graphql.Boolean), Args: idArg, Resolve: s.remove(domain.KindIncident)},

		"createCase": {
			Type:    nonNull(t.caseType),
			Args:    withoutArgs(caseArgs, "title").with(map[string]graphql.Input{"title": graphql.String}),
			Resolve: s.createCase,
		},
		"updateCase": {Type: nonNull(t.caseType), Args: caseArgs.with(id), Resolve: s.updateCase},
		"deleteCase": {Type: nonNull(graphql.Boolean), Args: idArg, Resolve: s.remove(domain.KindCase)},

		"addStatusUpdate": {
			Type: nonNull(t.statusUpdate),
			Args: argSpec{}.with(map[string]graphql.Input{
				"caseId":  graphql.ID,
				"message": graphql.String,
				"userId":  graphql.ID,
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.AddStatusUpdate(p.Context, argString(p.Args, "caseId"), argString(p.Args, "message"), argString(p.Args, "userId"))
			},
		},

		"createLocation": {
			Type: nonNull(t.location),
			Args: argSpec{
				"address":   graphql.String,
				"city":      graphql.String,
				"state":     graphql.String,
				"zipCode":   graphql.String,
				"latitude":  graphql.Float,
				"longitude": graphql.Float,
			}.with(nil),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.CreateLocation(p.Context, domain.Location{
					Address:   optString(p.Args, "address"),
					City:      optString(p.Args, "city"),
					State:     optString(p.Args, "state"),
					ZipCode:   optString(p.Args, "zipCode"),
					Latitude:  optFloat(p.Args, "latitude"),
					Longitude: optFloat(p.Args, "longitude"),
				})
			},
		},
		"createTag": {
			Type: nonNull(t.tag),
			Args: argSpec{"color": graphql.String}.with(map[string]graphql.Input{"name": graphql.String}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.CreateTag(p.Context, domain.Tag{
					Name:  argString(p.Args, "name"),
					Color: optString(p.Args, "color"),
				})
			},
		},
		"createProduct": {
			Type: nonNull(t.product),
			Args: argSpec{
				"description": graphql.String,
				"quantity":    graphql.Int,
				"value":       graphql.Float,
				"incidentId":  graphql.ID,
			}.with(map[string]graphql.Input{"name": graphql.String}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.CreateProduct(p.Context, domain.Product{
					Name:        argString(p.Args, "name"),
					Description: optString(p.Args, "description"),
					Quantity:    optInt(p.Args, "quantity"),
					Value:       optFloat(p.Args, "value"),
					IncidentID:  optString(p.Args, "incidentId"),
				})
			},
		},
		"createEvidence": {
			Type: nonNull(t.evidence),
			Args: argSpec{
				"description": graphql.String,
				"fileUrl":     graphql.String,
				"incidentId":  graphql.ID,
			}.with(map[string]graphql.Input{"name": graphql.String, "type": graphql.String}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return s.service.CreateEvidence(p.Context, domain.Evidence{
					Name:        argString(p.Args, "name"),
					Type:        argString(p.Args, "type"),
					Description: optString(p.Args, "description"),
					FileURL:     optString(p.Args, "fileUrl"),
					IncidentID:  optString(p.Args, "incidentId"),
				})
			},
		},
		"uploadEvidence": {
			Type: nonNull(t.evidence),
			Args: argSpec{
				"description": graphql.String,
				"incidentId":  graphql.ID,
				"contentType": graphql.String,
			}.with(map[string]graphql.Input{
				"name":          graphql.String,
				"type":          graphql.String,
				"fileName":      graphql.String,
				"contentBase64": graphql.String,
			}),
			Resolve: s.uploadEvidence,
		},
	}

	for name, f := range fields {
		f.Resolve = s.instrument(name, f.Resolve)
	}
	return fields
}

func (s *Schema) createPerson(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	person := domain.Person{
		FirstName:              optString(a, "firstName"),
		LastName:               optString(a, "lastName"),
		Alias:                  optString(a, "alias"),
		Ethnicity:              optString(a, "ethnicity"),
		Gender:                 optEnum[domain.Gender](a, "gender"),
		Age:                    optInt(a, "age"),
		Height:                 optString(a, "height"),
		Build:                  optString(a, "build"),
		DistinguishingFeatures: optString(a, "distinguishingFeatures"),
		Modus:                  optString(a, "modus"),
	}
	if v := optBool(a, "isPersonOfInterest"); v != nil {
		person.IsPersonOfInterest = *v
	}
	return s.service.CreatePerson(p.Context, person)
}

func (s *Schema) updatePerson(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	return s.service.UpdatePerson(p.Context, argString(a, "id"), domain.PersonPatch{
		FirstName:              optString(a, "firstName"),
		LastName:               optString(a, "lastName"),
		Alias:                  optString(a, "alias"),
		Ethnicity:              optString(a, "ethnicity"),
		Gender:                 optEnum[domain.Gender](a, "gender"),
		Age:                    optInt(a, "age"),
		Height:                 optString(a, "height"),
		Build:                  optString(a, "build"),
		DistinguishingFeatures: optString(a, "distinguishingFeatures"),
		Modus:                  optString(a, "modus"),
		IsPersonOfInterest:     optBool(a, "isPersonOfInterest"),
	})
}

func (s *Schema) createVehicle(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	v := domain.Vehicle{
		LicensePlate:           argString(a, "licensePlate"),
		State:                  optString(a, "state"),
		Make:                   optString(a, "make"),
		Model:                  optString(a, "model"),
		Year:                   optInt(a, "year"),
		Color:                  optString(a, "color"),
		DistinguishingFeatures: optString(a, "distinguishingFeatures"),
	}
	if b := optBool(a, "isVehicleOfInterest"); b != nil {
		v.IsVehicleOfInterest = *b
	}
	return s.service.CreateVehicle(p.Context, v)
}

func (s *Schema) updateVehicle(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	return s.service.UpdateVehicle(p.Context, argString(a, "id"), domain.VehiclePatch{
		LicensePlate:           optString(a, "licensePlate"),
		State:                  optString(a, "state"),
		Make:                   optString(a, "make"),
		Model:                  optString(a, "model"),
		Year:                   optInt(a, "year"),
		Color:                  optString(a, "color"),
		DistinguishingFeatures: optString(a, "distinguishingFeatures"),
		IsVehicleOfInterest:    optBool(a, "isVehicleOfInterest"),
	})
}

func (s *Schema) createIncident(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	links, err := linksFrom(a, incidentLinkArgs)
	if err != nil {
		return nil, err
	}
	inc := domain.Incident{
		Title:       argString(a, "title"),
		Description: argString(a, "description"),
		LocationID:  optString(a, "locationId"),
		ReporterID:  optString(a, "reporterId"),
	}
	if v := optEnum[domain.EventType](a, "eventType"); v != nil {
		inc.EventType = *v
	}
	if v := optEnum[domain.Status](a, "status"); v != nil {
		inc.Status = *v
	}
	if v := optTime(a, "dateTime"); v != nil {
		inc.DateTime = *v
	}
	return s.service.CreateIncident(p.Context, inc, links)
}

func (s *Schema) updateIncident(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	links, err := linksFrom(a, incidentLinkArgs)
	if err != nil {
		return nil, err
	}
	return s.service.UpdateIncident(p.Context, argString(a, "id"), domain.IncidentPatch{
		Title:       optString(a, "title"),
		EventType:   optEnum[domain.EventType](a, "eventType"),
		Description: optString(a, "description"),
		DateTime:    optTime(a, "dateTime"),
		Status:      optEnum[domain.Status](a, "status"),
		LocationID:  optString(a, "locationId"),
		ReporterID:  optString(a, "reporterId"),
	}, links)
}

func (s *Schema) createCase(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	links, err := linksFrom(a, caseLinkArgs)
	if err != nil {
		return nil, err
	}
	c := domain.Case{
		Title:       argString(a, "title"),
		Description: argString(a, "description"),
		AssignedTo:  optString(a, "assignedTo"),
	}
	if v := optEnum[domain.Status](a, "status"); v != nil {
		c.Status = *v
	}
	if v := optEnum[domain.Priority](a, "priority"); v != nil {
		c.Priority = *v
	}
	return s.service.CreateCase(p.Context, c, links)
}

func (s *Schema) updateCase(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	links, err := linksFrom(a, caseLinkArgs)
	if err != nil {
		return nil, err
	}
	return s.service.UpdateCase(p.Context, argString(a, "id"), domain.CasePatch{
		Title:       optString(a, "title"),
		Description: optString(a, "description"),
		Status:      optEnum[domain.Status](a, "status"),
		Priority:    optEnum[domain.Priority](a, "priority"),
		AssignedTo:  optString(a, "assignedTo"),
	}, links)
}

func (s *Schema) uploadEvidence(p graphql.ResolveParams) (interface{}, error) {
	a := p.Args
	content, err := base64.StdEncoding.DecodeString(argString(a, "contentBase64"))
	if err != nil {
		return nil, fmt.Errorf("%w: contentBase64: %v", domain.ErrInvalidInput, err)
	}
	return s.service.UploadEvidence(p.Context, application.EvidenceUpload{
		IncidentID:  optString(a, "incidentId"),
		Name:        argString(a, "name"),
		Type:        argString(a, "type"),
		Description: optString(a, "description"),
		FileName:    argString(a, "fileName"),
		ContentType: argString(a, "contentType"),
		Content:     bytes.NewReader(content),
	})
}
