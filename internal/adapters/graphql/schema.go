// Package graphql exposes the case management API as a GraphQL schema built
// with graphql-go. Every root field goes through CaseService; nested relation
// fields are resolved lazily through the relation registry.
package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/anilpal6795/crime-linker/internal/metrics"
)

type Schema struct {
	service *application.CaseService
	metrics *metrics.Recorder
	types   *objectTypes
	schema  graphql.Schema
}

type Option func(*Schema)

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Schema) { s.metrics = m }
}

func NewSchema(service *application.CaseService, opts ...Option) (*Schema, error) {
	s := &Schema{service: service}
	for _, opt := range opts {
		opt(s)
	}
	s.types = s.newObjectTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: s.queryFields(),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: s.mutationFields(),
		}),
	})
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func (s *Schema) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

// instrument wraps a root resolver with error classification and metrics.
func (s *Schema) instrument(name string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		started := time.Now()
		out, err := fn(p)
		s.metrics.Observe(metrics.TransportGraphQL, name, started, err)
		if err != nil {
			return nil, classify(err)
		}
		return out, nil
	}
}

// getOne turns a missing row into null instead of an error.
func (s *Schema) getOne(kind domain.Kind) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		e, err := s.service.Get(p.Context, kind, argString(p.Args, "id"))
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

func (s *Schema) list(kind domain.Kind, filter func(args map[string]interface{}) domain.ListFilter) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return s.service.Relations().ListEntities(p.Context, kind, filter(p.Args))
	}
}

func (s *Schema) connections(kind domain.Kind, idArg string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return s.service.Graphs().Build(p.Context, kind, argString(p.Args, idArg))
	}
}

func (s *Schema) remove(kind domain.Kind) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return s.service.Delete(p.Context, kind, argString(p.Args, "id"))
	}
}
