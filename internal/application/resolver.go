package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

// RelationResolver answers "which X are linked to this Y" for every relation
// in the registry through one code path.
type RelationResolver struct {
	store domain.Store
}

func NewRelationResolver(store domain.Store) *RelationResolver {
	return &RelationResolver{store: store}
}

// ResolveRelated returns the counterparts of one relation. An unknown kind or
// relation is a configuration error; a missing owner is domain.ErrNotFound;
// an owner without counterparts yields an empty slice.
func (r *RelationResolver) ResolveRelated(ctx context.Context, kind domain.Kind, id, relation string) ([]domain.Entity, error) {
	rel, err := domain.LookupRelation(kind, relation)
	if err != nil {
		return nil, err
	}
	return r.store.Related(ctx, rel, id)
}

func (r *RelationResolver) ListEntities(ctx context.Context, kind domain.Kind, filter domain.ListFilter) ([]domain.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	filter, err := NormalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return r.store.List(ctx, kind, filter)
}

// ReplaceRelations swaps the whole counterpart set of a join or children
// relation in one transaction. Repeating the call with the same ids changes
// nothing.
func (r *RelationResolver) ReplaceRelations(ctx context.Context, kind domain.Kind, id, relation string, ids []string) error {
	rel, err := domain.LookupRelation(kind, relation)
	if err != nil {
		return err
	}
	if !rel.Replaceable() {
		return fmt.Errorf("%w: %s", domain.ErrNotReplaceable, rel)
	}
	return r.store.ReplaceRelations(ctx, rel, id, ids)
}

func (r *RelationResolver) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return r.store.Delete(ctx, kind, id)
}

// Related resolves a relation and narrows the result to the concrete type the
// caller expects.
func Related[T domain.Entity](ctx context.Context, r *RelationResolver, kind domain.Kind, id, relation string) ([]T, error) {
	entities, err := r.ResolveRelated(ctx, kind, id, relation)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(entities))
	for _, e := range entities {
		v, ok := e.(T)
		if !ok {
			return nil, fmt.Errorf("%s.%s returned %T", kind, relation, e)
		}
		result = append(result, v)
	}
	return result, nil
}

// NormalizeFilter canonicalizes enum spellings so "open" and "OPEN" filter
// the same rows. Unknown values are rejected.
func NormalizeFilter(f domain.ListFilter) (domain.ListFilter, error) {
	var err error
	if f.Status != "" {
		if f.Status, err = domain.ParseStatus(string(f.Status)); err != nil {
			return f, err
		}
	}
	if f.EventType != "" {
		if f.EventType, err = domain.ParseEventType(string(f.EventType)); err != nil {
			return f, err
		}
	}
	if f.Priority != "" {
		if f.Priority, err = domain.ParsePriority(string(f.Priority)); err != nil {
			return f, err
		}
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit < 0 {
		f.Limit = 0
	}
	return f, nil
}
