package application

import (
	"context"
	"fmt"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

type SeedResult struct {
	People    int `json:"people"`
	Vehicles  int `json:"vehicles"`
	Locations int `json:"locations"`
	Tags      int `json:"tags"`
	Incidents int `json:"incidents"`
	Products  int `json:"products"`
	Evidence  int `json:"evidence"`
	Cases     int `json:"cases"`
	Updates   int `json:"statusUpdates"`

	IncidentID string `json:"incidentId"`
	CaseID     string `json:"caseId"`
}

// Seed loads the demo fixture set in one transaction. It refuses to run
// against a database that already holds incidents.
func (s *CaseService) Seed(ctx context.Context) (SeedResult, error) {
	existing, err := s.store.Count(ctx, domain.CountQuery{Kind: domain.KindIncident})
	if err != nil {
		return SeedResult{}, err
	}
	if existing > 0 {
		return SeedResult{}, fmt.Errorf("%w: database already holds %d incidents", domain.ErrInvalidInput, existing)
	}

	var res SeedResult
	err = s.store.WithinTx(ctx, func(tx domain.Store) error {
		male, female := domain.GenderMale, domain.GenderFemale
		john, err := tx.CreatePerson(ctx, domain.Person{
			FirstName:              ptr("John"),
			LastName:               ptr("Doe"),
			Alias:                  ptr("Johnny"),
			Gender:                 &male,
			Age:                    ptr(32),
			Ethnicity:              ptr("Caucasian"),
			Height:                 ptr(`5'10"`),
			Build:                  ptr("Medium"),
			DistinguishingFeatures: ptr("Tattoo on right arm"),
			IsPersonOfInterest:     true,
		})
		if err != nil {
			return err
		}
		jane, err := tx.CreatePerson(ctx, domain.Person{
			FirstName:          ptr("Jane"),
			LastName:           ptr("Smith"),
			Gender:             &female,
			Age:                ptr(28),
			Ethnicity:          ptr("African American"),
			Height:             ptr(`5'6"`),
			Build:              ptr("Slim"),
			IsPersonOfInterest: true,
		})
		if err != nil {
			return err
		}
		res.People = 2

		vehicle, err := tx.CreateVehicle(ctx, domain.Vehicle{
			LicensePlate:        "ABC123",
			State:               ptr("CA"),
			Make:                ptr("Toyota"),
			Model:               ptr("Camry"),
			Year:                ptr(2018),
			Color:               ptr("Silver"),
			IsVehicleOfInterest: true,
		})
		if err != nil {
			return err
		}
		res.Vehicles = 1

		location, err := tx.CreateLocation(ctx, domain.Location{
			Address:   ptr("123 Main St"),
			City:      ptr("Los Angeles"),
			State:     ptr("CA"),
			ZipCode:   ptr("90001"),
			Latitude:  ptr(34.052235),
			Longitude: ptr(-118.243683),
		})
		if err != nil {
			return err
		}
		res.Locations = 1

		theft, err := tx.CreateTag(ctx, domain.Tag{Name: "Theft", Color: ptr("#FF5733")})
		if err != nil {
			return err
		}
		if _, err := tx.CreateTag(ctx, domain.Tag{Name: "Suspicious Activity", Color: ptr("#33A8FF")}); err != nil {
			return err
		}
		res.Tags = 2

		incident, err := tx.CreateIncident(ctx, domain.Incident{
			Title:       "Theft at Main St Store",
			EventType:   domain.EventTheft,
			Description: "Suspect took items from the shelf and left without paying",
			DateTime:    time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC),
			Status:      domain.StatusOpen,
			LocationID:  &location.ID,
			ReporterID:  &jane.ID,
		}, domain.Links{
			"people":   {john.ID},
			"vehicles": {vehicle.ID},
			"tags":     {theft.ID},
		})
		if err != nil {
			return err
		}
		res.Incidents = 1
		res.IncidentID = incident.ID

		if _, err := tx.CreateProduct(ctx, domain.Product{
			Name:        "Smartphone",
			Description: ptr("High-end smartphone"),
			Quantity:    ptr(1),
			Value:       ptr(999.99),
			IncidentID:  &incident.ID,
		}); err != nil {
			return err
		}
		res.Products = 1

		if _, err := tx.CreateEvidence(ctx, domain.Evidence{
			Name:        "Security Camera Footage",
			Type:        "video",
			Description: ptr("Footage from store security camera"),
			FileURL:     ptr("https://example.com/footage.mp4"),
			IncidentID:  &incident.ID,
		}); err != nil {
			return err
		}
		res.Evidence = 1

		c, err := tx.CreateCase(ctx, domain.Case{
			Title:       "Multiple Thefts Investigation",
			Description: "Investigation into series of thefts in downtown area",
			Status:      domain.StatusOpen,
			Priority:    domain.PriorityHigh,
		}, domain.Links{"incidents": {incident.ID}})
		if err != nil {
			return err
		}
		res.Cases = 1
		res.CaseID = c.ID

		if _, err := tx.AddStatusUpdate(ctx, domain.StatusUpdate{
			CaseID:  c.ID,
			Message: "Initial investigation started",
			UserID:  "user-1",
		}); err != nil {
			return err
		}
		res.Updates = 1
		return nil
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

func ptr[T any](v T) *T { return &v }
