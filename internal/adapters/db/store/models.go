package store

import (
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

type PersonModel struct {
	ID                     string `gorm:"primaryKey"`
	FirstName              *string
	LastName               *string
	Alias                  *string
	Ethnicity              *string
	Gender                 *string
	Age                    *int
	Height                 *string
	Build                  *string
	DistinguishingFeatures *string
	Modus                  *string
	IsPersonOfInterest     bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (PersonModel) TableName() string { return "people" }

func (m PersonModel) toDomain() domain.Person {
	p := domain.Person{
		ID:                     m.ID,
		FirstName:              m.FirstName,
		LastName:               m.LastName,
		Alias:                  m.Alias,
		Ethnicity:              m.Ethnicity,
		Age:                    m.Age,
		Height:                 m.Height,
		Build:                  m.Build,
		DistinguishingFeatures: m.DistinguishingFeatures,
		Modus:                  m.Modus,
		IsPersonOfInterest:     m.IsPersonOfInterest,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if m.Gender != nil {
		g := domain.Gender(*m.Gender)
		p.Gender = &g
	}
	return p
}

type VehicleModel struct {
	ID                     string `gorm:"primaryKey"`
	LicensePlate           string `gorm:"not null"`
	State                  *string
	Make                   *string
	Model                  *string
	Year                   *int
	Color                  *string
	DistinguishingFeatures *string
	IsVehicleOfInterest    bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (VehicleModel) TableName() string { return "vehicles" }

func (m VehicleModel) toDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:                     m.ID,
		LicensePlate:           m.LicensePlate,
		State:                  m.State,
		Make:                   m.Make,
		Model:                  m.Model,
		Year:                   m.Year,
		Color:                  m.Color,
		DistinguishingFeatures: m.DistinguishingFeatures,
		IsVehicleOfInterest:    m.IsVehicleOfInterest,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

type LocationModel struct {
	ID        string `gorm:"primaryKey"`
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LocationModel) TableName() string { return "locations" }

func (m LocationModel) toDomain() domain.Location {
	return domain.Location{
		ID:        m.ID,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		ZipCode:   m.ZipCode,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type TagModel struct {
	ID    string `gorm:"primaryKey"`
	Name  string `gorm:"not null;uniqueIndex"`
	Color *string
}

func (TagModel) TableName() string { return "tags" }

func (m TagModel) toDomain() domain.Tag {
	return domain.Tag{ID: m.ID, Name: m.Name, Color: m.Color}
}

type ProductModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description *string
	Quantity    *int
	Value       *float64
	IncidentID  *string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string { return "products" }

func (m ProductModel) toDomain() domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Quantity:    m.Quantity,
		Value:       m.Value,
		IncidentID:  m.IncidentID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type EvidenceModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"`
	Description *string
	FileURL     *string `gorm:"column:file_url"`
	IncidentID  *string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (EvidenceModel) TableName() string { return "evidence" }

func (m EvidenceModel) toDomain() domain.Evidence {
	return domain.Evidence{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Description: m.Description,
		FileURL:     m.FileURL,
		IncidentID:  m.IncidentID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type IncidentModel struct {
	ID          string    `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	EventType   string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	DateTime    time.Time `gorm:"not null;index"`
	Status      string    `gorm:"not null"`
	LocationID  *string   `gorm:"index"`
	ReporterID  *string   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (IncidentModel) TableName() string { return "incidents" }

func (m IncidentModel) toDomain() domain.Incident {
	return domain.Incident{
		ID:          m.ID,
		Title:       m.Title,
		EventType:   domain.EventType(m.EventType),
		Description: m.Description,
		DateTime:    m.DateTime.UTC(),
		Status:      domain.Status(m.Status),
		LocationID:  m.LocationID,
		ReporterID:  m.ReporterID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type CaseModel struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Status      string `gorm:"not null"`
	Priority    string `gorm:"not null"`
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CaseModel) TableName() string { return "cases" }

func (m CaseModel) toDomain() domain.Case {
	return domain.Case{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.Status(m.Status),
		Priority:    domain.Priority(m.Priority),
		AssignedTo:  m.AssignedTo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type StatusUpdateModel struct {
	ID        string `gorm:"primaryKey"`
	CaseID    string `gorm:"not null;index"`
	Message   string `gorm:"not null"`
	UserID    string `gorm:"not null"`
	CreatedAt time.Time
}

func (StatusUpdateModel) TableName() string { return "status_updates" }

func (m StatusUpdateModel) toDomain() domain.StatusUpdate {
	return domain.StatusUpdate{
		ID:        m.ID,
		CaseID:    m.CaseID,
		Message:   m.Message,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func genderString(g *domain.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}
