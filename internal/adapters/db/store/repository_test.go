package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "crimelinker_test.db")

	db, err := Open(DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepository(db)
}

func strPtr(s string) *string { return &s }

func ids(entities []domain.Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.EntityID())
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustIncident(t *testing.T, repo *Repository, title string, links domain.Links) domain.Incident {
	t.Helper()
	inc, err := repo.CreateIncident(context.Background(), domain.Incident{
		Title:     title,
		EventType: domain.EventTheft,
		DateTime:  time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC),
		Status:    domain.StatusOpen,
	}, links)
	if err != nil {
		t.Fatalf("create incident %q: %v", title, err)
	}
	return inc
}

func TestListFlaggedPeopleInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	var want []string
	for i, poi := range []bool{true, false, true, false, true} {
		p, err := repo.CreatePerson(ctx, domain.Person{
			FirstName:          strPtr("Person"),
			LastName:           strPtr(string(rune('A' + i))),
			IsPersonOfInterest: poi,
		})
		if err != nil {
			t.Fatalf("create person: %v", err)
		}
		if poi {
			want = append(want, p.ID)
		}
	}

	flagged := true
	got, err := repo.List(ctx, domain.KindPerson, domain.ListFilter{Flagged: &flagged})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !equalIDs(ids(got), want) {
		t.Fatalf("flagged people = %v, want %v", ids(got), want)
	}

	all, err := repo.List(ctx, domain.KindPerson, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 people, got %d", len(all))
	}
}

func TestListCasesByStatusAndPriority(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	seed := []domain.Case{
		{Title: "A", Status: domain.StatusOpen, Priority: domain.PriorityHigh},
		{Title: "B", Status: domain.StatusOpen, Priority: domain.PriorityLow},
		{Title: "C", Status: domain.StatusClosed, Priority: domain.PriorityHigh},
	}
	for _, c := range seed {
		if _, err := repo.CreateCase(ctx, c, nil); err != nil {
			t.Fatalf("create case: %v", err)
		}
	}

	got, err := repo.List(ctx, domain.KindCase, domain.ListFilter{Status: domain.StatusOpen, Priority: domain.PriorityHigh})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].DisplayLabel() != "A" {
		t.Fatalf("expected only case A, got %v", got)
	}

	if _, err := repo.List(ctx, domain.KindCase, domain.ListFilter{EventType: domain.EventFraud}); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected invalid filter for case event type, got %v", err)
	}
	if _, err := repo.List(ctx, domain.KindPerson, domain.ListFilter{Status: domain.StatusOpen}); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected invalid filter for person status, got %v", err)
	}
}

func TestSearchIsCaseInsensitiveAndEscaped(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	john, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("John"), LastName: strPtr("Doe")})
	_, _ = repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("Jane"), LastName: strPtr("Smith"), Alias: strPtr("100%")})

	got, err := repo.List(ctx, domain.KindPerson, domain.ListFilter{Search: "DOE"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !equalIDs(ids(got), []string{john.ID}) {
		t.Fatalf("search DOE = %v", ids(got))
	}

	got, err = repo.List(ctx, domain.KindPerson, domain.ListFilter{Search: "%"})
	if err != nil {
		t.Fatalf("search percent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("percent must match literally, got %d rows", len(got))
	}
}

func TestRelatedFromBothSides(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	p1, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("P1")})
	p2, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("P2")})
	inc := mustIncident(t, repo, "I1", domain.Links{"people": {p2.ID, p1.ID, p2.ID}})

	people, _ := domain.LookupRelation(domain.KindIncident, "people")
	got, err := repo.Related(ctx, people, inc.ID)
	if err != nil {
		t.Fatalf("related people: %v", err)
	}
	if !equalIDs(ids(got), []string{p2.ID, p1.ID}) {
		t.Fatalf("people = %v, want link order without duplicates", ids(got))
	}

	incidents, _ := domain.LookupRelation(domain.KindPerson, "incidents")
	back, err := repo.Related(ctx, incidents, p1.ID)
	if err != nil {
		t.Fatalf("related incidents: %v", err)
	}
	if !equalIDs(ids(back), []string{inc.ID}) {
		t.Fatalf("person incidents = %v", ids(back))
	}
}

func TestRelatedDistinguishesMissingOwnerFromEmptySet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	p, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("Lonely")})
	rel, _ := domain.LookupRelation(domain.KindPerson, "incidents")

	got, err := repo.Related(ctx, rel, p.ID)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil set, got %v", got)
	}

	if _, err := repo.Related(ctx, rel, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	loc, _ := domain.LookupRelation(domain.KindIncident, "location")
	if _, err := repo.Related(ctx, loc, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for parent relation, got %v", err)
	}
	inc := mustIncident(t, repo, "No place", nil)
	got, err = repo.Related(ctx, loc, inc.ID)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no location, got %v err %v", got, err)
	}
}

func TestReplaceRelationsIsIdempotentAndAtomic(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	v1, _ := repo.CreateVehicle(ctx, domain.Vehicle{LicensePlate: "ABC123"})
	v2, _ := repo.CreateVehicle(ctx, domain.Vehicle{LicensePlate: "XYZ789"})
	inc := mustIncident(t, repo, "I1", domain.Links{"vehicles": {v1.ID}})
	rel, _ := domain.LookupRelation(domain.KindIncident, "vehicles")

	for i := 0; i < 2; i++ {
		if err := repo.ReplaceRelations(ctx, rel, inc.ID, []string{v2.ID, v1.ID}); err != nil {
			t.Fatalf("replace #%d: %v", i, err)
		}
	}
	got, _ := repo.Related(ctx, rel, inc.ID)
	if !equalIDs(ids(got), []string{v2.ID, v1.ID}) {
		t.Fatalf("vehicles = %v", ids(got))
	}

	err := repo.ReplaceRelations(ctx, rel, inc.ID, []string{v1.ID, "missing"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, _ = repo.Related(ctx, rel, inc.ID)
	if !equalIDs(ids(got), []string{v2.ID, v1.ID}) {
		t.Fatalf("failed replace must keep the old set, got %v", ids(got))
	}

	if err := repo.ReplaceRelations(ctx, rel, inc.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = repo.Related(ctx, rel, inc.ID)
	if len(got) != 0 {
		t.Fatalf("expected cleared set, got %v", ids(got))
	}
}

func TestReplaceChildrenAndRejectParent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	loc, _ := repo.CreateLocation(ctx, domain.Location{Address: strPtr("123 Main St"), City: strPtr("Los Angeles")})
	i1 := mustIncident(t, repo, "I1", nil)
	i2 := mustIncident(t, repo, "I2", nil)

	rel, _ := domain.LookupRelation(domain.KindLocation, "incidents")
	if err := repo.ReplaceRelations(ctx, rel, loc.ID, []string{i1.ID, i2.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.ReplaceRelations(ctx, rel, loc.ID, []string{i2.ID}); err != nil {
		t.Fatalf("replace again: %v", err)
	}
	got, _ := repo.Related(ctx, rel, loc.ID)
	if !equalIDs(ids(got), []string{i2.ID}) {
		t.Fatalf("location incidents = %v", ids(got))
	}
	e, err := repo.Find(ctx, domain.KindIncident, i1.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if e.(domain.Incident).LocationID != nil {
		t.Fatalf("detached incident still points at the location")
	}

	parent, _ := domain.LookupRelation(domain.KindIncident, "location")
	if err := repo.ReplaceRelations(ctx, parent, i1.ID, []string{loc.ID}); !errors.Is(err, domain.ErrNotReplaceable) {
		t.Fatalf("expected not replaceable, got %v", err)
	}
}

// joinRows counts the rows of a join table that still reference id.
func joinRows(t *testing.T, repo *Repository, table, column, id string) int64 {
	t.Helper()
	var n int64
	if err := repo.db.Table(table).Where(column+" = ?", id).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestDeleteIncidentCascades(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	p, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("John")})
	v, _ := repo.CreateVehicle(ctx, domain.Vehicle{LicensePlate: "ABC123"})
	tag, _ := repo.CreateTag(ctx, domain.Tag{Name: "Theft"})
	inc := mustIncident(t, repo, "I1", domain.Links{"people": {p.ID}, "vehicles": {v.ID}, "tags": {tag.ID}})
	c, err := repo.CreateCase(ctx, domain.Case{Title: "C1", Status: domain.StatusOpen, Priority: domain.PriorityHigh}, domain.Links{"incidents": {inc.ID}})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	prod, err := repo.CreateProduct(ctx, domain.Product{Name: "Laptop", IncidentID: &inc.ID})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	joins := []struct{ table, column string }{
		{"incident_people", "incident_id"},
		{"incident_vehicles", "incident_id"},
		{"incident_tags", "incident_id"},
		{"case_incidents", "incident_id"},
	}
	for _, j := range joins {
		if n := joinRows(t, repo, j.table, j.column, inc.ID); n != 1 {
			t.Fatalf("%s has %d rows before delete, want 1", j.table, n)
		}
	}

	deleted, err := repo.Delete(ctx, domain.KindIncident, inc.ID)
	if err != nil || !deleted {
		t.Fatalf("delete incident: %v %v", deleted, err)
	}
	for _, j := range joins {
		if n := joinRows(t, repo, j.table, j.column, inc.ID); n != 0 {
			t.Fatalf("%s still has %d rows for the deleted incident", j.table, n)
		}
	}
	if _, err := repo.Find(ctx, domain.KindIncident, inc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	// counterparts survive, detached
	if _, err := repo.Find(ctx, domain.KindCase, c.ID); err != nil {
		t.Fatalf("case removed with its incident: %v", err)
	}
	e, err := repo.Find(ctx, domain.KindProduct, prod.ID)
	if err != nil {
		t.Fatalf("product removed with its incident: %v", err)
	}
	if e.(domain.Product).IncidentID != nil {
		t.Fatalf("product still points at the deleted incident")
	}

	deleted, err = repo.Delete(ctx, domain.KindIncident, inc.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = %v %v, want false nil", deleted, err)
	}
}

func TestDeletePersonDetaches(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	p, _ := repo.CreatePerson(ctx, domain.Person{FirstName: strPtr("John")})
	inc := mustIncident(t, repo, "I1", domain.Links{"people": {p.ID}})
	if _, err := repo.UpdateIncident(ctx, inc.ID, domain.IncidentPatch{ReporterID: &p.ID}, nil); err != nil {
		t.Fatalf("set reporter: %v", err)
	}

	deleted, err := repo.Delete(ctx, domain.KindPerson, p.ID)
	if err != nil || !deleted {
		t.Fatalf("delete person: %v %v", deleted, err)
	}
	if n := joinRows(t, repo, "incident_people", "person_id", p.ID); n != 0 {
		t.Fatalf("incident_people still has %d rows for the deleted person", n)
	}
	e, _ := repo.Find(ctx, domain.KindIncident, inc.ID)
	if e.(domain.Incident).ReporterID != nil {
		t.Fatalf("reporter not cleared")
	}
}

func TestUpdateIncidentClearsReferences(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	loc, _ := repo.CreateLocation(ctx, domain.Location{City: strPtr("Los Angeles")})
	inc, err := repo.CreateIncident(ctx, domain.Incident{
		Title:      "I1",
		EventType:  domain.EventFraud,
		DateTime:   time.Now().UTC(),
		Status:     domain.StatusOpen,
		LocationID: &loc.ID,
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	closed := domain.StatusClosed
	empty := ""
	updated, err := repo.UpdateIncident(ctx, inc.ID, domain.IncidentPatch{Status: &closed, LocationID: &empty}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusClosed || updated.LocationID != nil {
		t.Fatalf("unexpected incident after update: %+v", updated)
	}

	missing := "missing"
	if _, err := repo.UpdateIncident(ctx, inc.ID, domain.IncidentPatch{ReporterID: &missing}, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown reporter, got %v", err)
	}
	if _, err := repo.UpdateIncident(ctx, "missing", domain.IncidentPatch{Status: &closed}, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown incident, got %v", err)
	}
}

func TestStatusUpdatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	c, _ := repo.CreateCase(ctx, domain.Case{Title: "C1", Status: domain.StatusOpen, Priority: domain.PriorityLow}, nil)
	first, _ := repo.AddStatusUpdate(ctx, domain.StatusUpdate{CaseID: c.ID, Message: "opened", UserID: "user-1"})
	second, _ := repo.AddStatusUpdate(ctx, domain.StatusUpdate{CaseID: c.ID, Message: "suspect identified", UserID: "user-1"})

	rel, _ := domain.LookupRelation(domain.KindCase, "statusUpdates")
	got, err := repo.Related(ctx, rel, c.ID)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if !equalIDs(ids(got), []string{second.ID, first.ID}) {
		t.Fatalf("status updates = %v", ids(got))
	}

	if _, err := repo.AddStatusUpdate(ctx, domain.StatusUpdate{CaseID: "missing", Message: "x", UserID: "u"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCountWithinWindow(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mustIncident(t, repo, "I1", nil)
	mustIncident(t, repo, "I2", nil)

	from := time.Now().UTC().Add(-time.Hour)
	n, err := repo.Count(ctx, domain.CountQuery{Kind: domain.KindIncident, From: &from})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 incidents in window, got %d", n)
	}

	to := from
	n, err = repo.Count(ctx, domain.CountQuery{Kind: domain.KindIncident, To: &to})
	if err != nil || n != 0 {
		t.Fatalf("expected nothing before window, got %d err %v", n, err)
	}

	if _, err := repo.Count(ctx, domain.CountQuery{Kind: domain.KindTag, From: &from}); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected invalid filter for untimed tags, got %v", err)
	}
}

func TestFindMissingAndDuplicateTag(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if _, err := repo.Find(ctx, domain.KindVehicle, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Find(ctx, domain.Kind("gang"), "x"); !errors.Is(err, domain.ErrUnknownKind) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
	if _, err := repo.CreateTag(ctx, domain.Tag{Name: "Theft"}); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := repo.CreateTag(ctx, domain.Tag{Name: "theft"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected duplicate tag to be rejected, got %v", err)
	}
}

func TestListRecentIncidentsByDate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var created []string
	for i := 0; i < 3; i++ {
		inc, err := repo.CreateIncident(ctx, domain.Incident{
			Title:     "I",
			EventType: domain.EventOther,
			DateTime:  base.Add(time.Duration(i) * 24 * time.Hour),
			Status:    domain.StatusOpen,
		}, nil)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created = append(created, inc.ID)
	}

	got, err := repo.ListRecentIncidents(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != created[2] || got[1].ID != created[1] {
		t.Fatalf("unexpected recent incidents: %+v", got)
	}
}

func TestCreateIncidentRollsBackOnBadLink(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.CreateIncident(ctx, domain.Incident{
		Title:     "I1",
		EventType: domain.EventTheft,
		DateTime:  time.Now().UTC(),
		Status:    domain.StatusOpen,
	}, domain.Links{"people": {"missing"}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	n, _ := repo.Count(ctx, domain.CountQuery{Kind: domain.KindIncident})
	if n != 0 {
		t.Fatalf("incident must not survive a failed link, count=%d", n)
	}
}
