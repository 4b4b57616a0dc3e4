package domain

import (
	"context"
	"io"
	"time"
)

type Store interface {
	Ping(ctx context.Context) error

	Find(ctx context.Context, kind Kind, id string) (Entity, error)
	List(ctx context.Context, kind Kind, filter ListFilter) ([]Entity, error)
	Count(ctx context.Context, query CountQuery) (int64, error)
	Delete(ctx context.Context, kind Kind, id string) (bool, error)

	Related(ctx context.Context, relation Relation, ownerID string) ([]Entity, error)
	ReplaceRelations(ctx context.Context, relation Relation, ownerID string, ids []string) error

	CreatePerson(ctx context.Context, value Person) (Person, error)
	UpdatePerson(ctx context.Context, id string, patch PersonPatch) (Person, error)
	CreateVehicle(ctx context.Context, value Vehicle) (Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, patch VehiclePatch) (Vehicle, error)
	CreateLocation(ctx context.Context, value Location) (Location, error)
	CreateTag(ctx context.Context, value Tag) (Tag, error)
	CreateProduct(ctx context.Context, value Product) (Product, error)
	CreateEvidence(ctx context.Context, value Evidence) (Evidence, error)
	SetEvidenceFile(ctx context.Context, id, fileURL string) (Evidence, error)
	CreateIncident(ctx context.Context, value Incident, links Links) (Incident, error)
	UpdateIncident(ctx context.Context, id string, patch IncidentPatch, links Links) (Incident, error)
	ListRecentIncidents(ctx context.Context, limit int) ([]Incident, error)
	CreateCase(ctx context.Context, value Case, links Links) (Case, error)
	UpdateCase(ctx context.Context, id string, patch CasePatch, links Links) (Case, error)
	AddStatusUpdate(ctx context.Context, value StatusUpdate) (StatusUpdate, error)

	// WithinTx runs fn against a Store bound to one transaction. Any error
	// returned by fn rolls everything back.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

type BlobInfo struct {
	Key         string
	Size        int64
	ContentType string
}

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (BlobInfo, error)
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	URL(key string) string
}
