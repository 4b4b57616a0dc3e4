package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

const (
	defaultRecentIncidents = 5
	maxRecentIncidents     = 100
)

// CaseService is the single entry point used by the GraphQL and JSON-RPC
// adapters. It normalizes enum input, applies defaults and hands the work to
// the store.
type CaseService struct {
	store    domain.Store
	blobs    domain.BlobStore
	now      func() time.Time
	resolver *RelationResolver
	graphs   *GraphBuilder
}

type Option func(*CaseService)

// WithBlobStore enables evidence file upload and download.
func WithBlobStore(blobs domain.BlobStore) Option {
	return func(s *CaseService) { s.blobs = blobs }
}

func WithClock(now func() time.Time) Option {
	return func(s *CaseService) { s.now = now }
}

func NewCaseService(store domain.Store, opts ...Option) *CaseService {
	s := &CaseService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = NewRelationResolver(store)
	s.graphs = NewGraphBuilder(store)
	return s
}

func (s *CaseService) Relations() *RelationResolver { return s.resolver }
func (s *CaseService) Graphs() *GraphBuilder        { return s.graphs }

func (s *CaseService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Get fetches one entity. A missing id is reported as domain.ErrNotFound.
func (s *CaseService) Get(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.store.Find(ctx, kind, id)
}

// Delete reports false when nothing had that id.
func (s *CaseService) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	return s.resolver.Delete(ctx, kind, id)
}

func (s *CaseService) CreatePerson(ctx context.Context, value domain.Person) (domain.Person, error) {
	if value.Gender != nil {
		g, err := domain.ParseGender(string(*value.Gender))
		if err != nil {
			return domain.Person{}, err
		}
		value.Gender = &g
	}
	return s.store.CreatePerson(ctx, value)
}

func (s *CaseService) UpdatePerson(ctx context.Context, id string, patch domain.PersonPatch) (domain.Person, error) {
	if patch.Gender != nil {
		g, err := domain.ParseGender(string(*patch.Gender))
		if err != nil {
			return domain.Person{}, err
		}
		patch.Gender = &g
	}
	return s.store.UpdatePerson(ctx, id, patch)
}

func (s *CaseService) CreateVehicle(ctx context.Context, value domain.Vehicle) (domain.Vehicle, error) {
	value.LicensePlate = strings.TrimSpace(value.LicensePlate)
	if value.LicensePlate == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: licensePlate is required", domain.ErrInvalidInput)
	}
	return s.store.CreateVehicle(ctx, value)
}

func (s *CaseService) UpdateVehicle(ctx context.Context, id string, patch domain.VehiclePatch) (domain.Vehicle, error) {
	return s.store.UpdateVehicle(ctx, id, patch)
}

func (s *CaseService) CreateLocation(ctx context.Context, value domain.Location) (domain.Location, error) {
	return s.store.CreateLocation(ctx, value)
}

func (s *CaseService) CreateTag(ctx context.Context, value domain.Tag) (domain.Tag, error) {
	value.Name = strings.TrimSpace(value.Name)
	if value.Name == "" {
		return domain.Tag{}, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}
	return s.store.CreateTag(ctx, value)
}

func (s *CaseService) CreateProduct(ctx context.Context, value domain.Product) (domain.Product, error) {
	if strings.TrimSpace(value.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	return s.store.CreateProduct(ctx, value)
}

func (s *CaseService) CreateEvidence(ctx context.Context, value domain.Evidence) (domain.Evidence, error) {
	if strings.TrimSpace(value.Name) == "" || strings.TrimSpace(value.Type) == "" {
		return domain.Evidence{}, fmt.Errorf("%w: evidence name and type are required", domain.ErrInvalidInput)
	}
	return s.store.CreateEvidence(ctx, value)
}

// CreateIncident inserts the incident and wires every relation named in
// links in the same transaction.
func (s *CaseService) CreateIncident(ctx context.Context, value domain.Incident, links domain.Links) (domain.Incident, error) {
	if strings.TrimSpace(value.Title) == "" {
		return domain.Incident{}, fmt.Errorf("%w: incident title is required", domain.ErrInvalidInput)
	}
	eventType, err := domain.ParseEventType(string(value.EventType))
	if err != nil {
		return domain.Incident{}, err
	}
	value.EventType = eventType

	if value.Status == "" {
		value.Status = domain.StatusOpen
	}
	if value.Status, err = domain.ParseStatus(string(value.Status)); err != nil {
		return domain.Incident{}, err
	}
	if value.DateTime.IsZero() {
		value.DateTime = s.now().UTC()
	}
	if err := checkLinks(domain.KindIncident, links); err != nil {
		return domain.Incident{}, err
	}
	return s.store.CreateIncident(ctx, value, links)
}

func (s *CaseService) UpdateIncident(ctx context.Context, id string, patch domain.IncidentPatch, links domain.Links) (domain.Incident, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Incident{}, fmt.Errorf("%w: incident title cannot be blank", domain.ErrInvalidInput)
	}
	if patch.EventType != nil {
		v, err := domain.ParseEventType(string(*patch.EventType))
		if err != nil {
			return domain.Incident{}, err
		}
		patch.EventType = &v
	}
	if patch.Status != nil {
		v, err := domain.ParseStatus(string(*patch.Status))
		if err != nil {
			return domain.Incident{}, err
		}
		patch.Status = &v
	}
	if err := checkLinks(domain.KindIncident, links); err != nil {
		return domain.Incident{}, err
	}
	return s.store.UpdateIncident(ctx, id, patch, links)
}

// RecentIncidents orders by incident time, newest first. limit defaults to 5
// and is capped at 100.
func (s *CaseService) RecentIncidents(ctx context.Context, limit int) ([]domain.Incident, error) {
	if limit <= 0 {
		limit = defaultRecentIncidents
	}
	if limit > maxRecentIncidents {
		limit = maxRecentIncidents
	}
	return s.store.ListRecentIncidents(ctx, limit)
}

func (s *CaseService) CreateCase(ctx context.Context, value domain.Case, links domain.Links) (domain.Case, error) {
	if strings.TrimSpace(value.Title) == "" {
		return domain.Case{}, fmt.Errorf("%w: case title is required", domain.ErrInvalidInput)
	}
	var err error
	if value.Status == "" {
		value.Status = domain.StatusOpen
	}
	if value.Status, err = domain.ParseStatus(string(value.Status)); err != nil {
		return domain.Case{}, err
	}
	if value.Priority == "" {
		value.Priority = domain.PriorityMedium
	}
	if value.Priority, err = domain.ParsePriority(string(value.Priority)); err != nil {
		return domain.Case{}, err
	}
	if err := checkLinks(domain.KindCase, links); err != nil {
		return domain.Case{}, err
	}
	return s.store.CreateCase(ctx, value, links)
}

func (s *CaseService) UpdateCase(ctx context.Context, id string, patch domain.CasePatch, links domain.Links) (domain.Case, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Case{}, fmt.Errorf("%w: case title cannot be blank", domain.ErrInvalidInput)
	}
	if patch.Status != nil {
		v, err := domain.ParseStatus(string(*patch.Status))
		if err != nil {
			return domain.Case{}, err
		}
		patch.Status = &v
	}
	if patch.Priority != nil {
		v, err := domain.ParsePriority(string(*patch.Priority))
		if err != nil {
			return domain.Case{}, err
		}
		patch.Priority = &v
	}
	if err := checkLinks(domain.KindCase, links); err != nil {
		return domain.Case{}, err
	}
	return s.store.UpdateCase(ctx, id, patch, links)
}

func (s *CaseService) AddStatusUpdate(ctx context.Context, caseID, message, userID string) (domain.StatusUpdate, error) {
	if strings.TrimSpace(caseID) == "" || strings.TrimSpace(message) == "" || strings.TrimSpace(userID) == "" {
		return domain.StatusUpdate{}, fmt.Errorf("%w: caseId, message and userId are required", domain.ErrInvalidInput)
	}
	return s.store.AddStatusUpdate(ctx, domain.StatusUpdate{
		CaseID:  caseID,
		Message: message,
		UserID:  userID,
	})
}

// checkLinks rejects relation names the kind does not have and relations
// that cannot be rewritten as a set, before any row is touched.
func checkLinks(kind domain.Kind, links domain.Links) error {
	for name := range links {
		rel, err := domain.LookupRelation(kind, name)
		if err != nil {
			return err
		}
		if !rel.Replaceable() {
			return fmt.Errorf("%w: %s", domain.ErrNotReplaceable, rel)
		}
	}
	return nil
}
