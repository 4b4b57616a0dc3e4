package domain

import (
	"errors"
	"testing"
)

func TestParseKindIsLenient(t *testing.T) {
	for _, raw := range []string{"StatusUpdate", "status-update", "status_update", " STATUS UPDATE "} {
		k, err := ParseKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if k != KindStatusUpdate {
			t.Fatalf("parse %q = %q", raw, k)
		}
	}
	if _, err := ParseKind("suspect"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
}

func TestLookupRelation(t *testing.T) {
	r, err := LookupRelation(KindPerson, "incidents")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if r.Target != KindIncident || r.Shape != ShapeJoin {
		t.Fatalf("unexpected relation %+v", r)
	}

	if _, err := LookupRelation(KindPerson, "vehicles"); !errors.Is(err, ErrUnknownRelation) {
		t.Fatalf("expected unknown relation, got %v", err)
	}
	_, err = LookupRelation(Kind("gang"), "incidents")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
	if !IsConfiguration(err) {
		t.Fatalf("unknown kind must count as a configuration error")
	}
}

func TestRelationsAreSymmetric(t *testing.T) {
	// Every join relation must have a counterpart on the target kind so that
	// a link written from one side is visible from the other.
	for _, r := range AllRelations() {
		if r.Shape != ShapeJoin {
			continue
		}
		found := false
		for _, back := range RelationsOf(r.Target) {
			if back.Shape == ShapeJoin && back.Target == r.Owner {
				found = true
				if back.Inbound == r.Inbound && r.Owner != r.Target {
					t.Fatalf("%s and %s draw edges in opposite directions", r, back)
				}
			}
		}
		if !found {
			t.Fatalf("join relation %s has no inverse", r)
		}
	}
}

func TestReplaceable(t *testing.T) {
	cases := []struct {
		kind Kind
		name string
		want bool
	}{
		{KindIncident, "people", true},
		{KindLocation, "incidents", true},
		{KindIncident, "location", false},
		{KindCase, "statusUpdates", false},
	}
	for _, tc := range cases {
		r, err := LookupRelation(tc.kind, tc.name)
		if err != nil {
			t.Fatalf("lookup %s.%s: %v", tc.kind, tc.name, err)
		}
		if r.Replaceable() != tc.want {
			t.Fatalf("%s replaceable = %v, want %v", r, r.Replaceable(), tc.want)
		}
	}
}

func TestGraphRelations(t *testing.T) {
	rels, err := GraphRelations(KindIncident)
	if err != nil {
		t.Fatalf("graph relations: %v", err)
	}
	if len(rels) != 8 || rels[0].Name != "people" || rels[7].Name != "cases" {
		t.Fatalf("unexpected incident graph relations: %v", rels)
	}
	if _, err := GraphRelations(Kind("gang")); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected unknown kind, got %v", err)
	}
}

// Whatever one root draws, the counterpart's own graph must draw back.
func TestGraphRelationsAreMirrored(t *testing.T) {
	for _, kind := range Kinds {
		rels, err := GraphRelations(kind)
		if err != nil {
			t.Fatalf("%s has no graph: %v", kind, err)
		}
		for _, r := range rels {
			back, err := GraphRelations(r.Target)
			if err != nil {
				t.Fatalf("%s: %v", r, err)
			}
			found := false
			for _, b := range back {
				if b.Target == kind && b.Verb == r.Verb && b.Inbound != r.Inbound {
					found = true
				}
			}
			if !found {
				t.Fatalf("%s is not mirrored by %s", r, r.Target)
			}
		}
	}
}

func TestDisplayLabels(t *testing.T) {
	first, last, alias := "John", "Doe", "Johnny"
	if got := (Person{FirstName: &first, LastName: &last}).DisplayLabel(); got != "John Doe" {
		t.Fatalf("person label = %q", got)
	}
	if got := (Person{Alias: &alias}).DisplayLabel(); got != "Johnny" {
		t.Fatalf("alias label = %q", got)
	}
	if got := (Person{}).DisplayLabel(); got != "Unknown Person" {
		t.Fatalf("empty person label = %q", got)
	}
	maker, model := "Toyota", "Camry"
	if got := (Vehicle{LicensePlate: "ABC123", Make: &maker, Model: &model}).DisplayLabel(); got != "ABC123 (Toyota Camry)" {
		t.Fatalf("vehicle label = %q", got)
	}
	if got := (Location{}).DisplayLabel(); got != "Unknown Location" {
		t.Fatalf("location label = %q", got)
	}
	if NodeID(KindPerson, "p1") != "person-p1" || EdgeID("person-p1", "incident-i1") != "edge-person-p1-incident-i1" {
		t.Fatalf("unexpected id formatting")
	}
}
