package domain

import (
	"fmt"
	"strings"
	"time"
)

type Person struct {
	ID                     string    `json:"id"`
	FirstName              *string   `json:"firstName"`
	LastName               *string   `json:"lastName"`
	Alias                  *string   `json:"alias"`
	Ethnicity              *string   `json:"ethnicity"`
	Gender                 *Gender   `json:"gender"`
	Age                    *int      `json:"age"`
	Height                 *string   `json:"height"`
	Build                  *string   `json:"build"`
	DistinguishingFeatures *string   `json:"distinguishingFeatures"`
	Modus                  *string   `json:"modus"`
	IsPersonOfInterest     bool      `json:"isPersonOfInterest"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

type Vehicle struct {
	ID                     string    `json:"id"`
	LicensePlate           string    `json:"licensePlate"`
	State                  *string   `json:"state"`
	Make                   *string   `json:"make"`
	Model                  *string   `json:"model"`
	Year                   *int      `json:"year"`
	Color                  *string   `json:"color"`
	DistinguishingFeatures *string   `json:"distinguishingFeatures"`
	IsVehicleOfInterest    bool      `json:"isVehicleOfInterest"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

type Location struct {
	ID        string    `json:"id"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	ZipCode   *string   `json:"zipCode"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tag struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Quantity    *int      `json:"quantity"`
	Value       *float64  `json:"value"`
	IncidentID  *string   `json:"incidentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Evidence struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	FileURL     *string   `json:"fileUrl"`
	IncidentID  *string   `json:"incidentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Incident struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	EventType   EventType `json:"eventType"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"dateTime"`
	Status      Status    `json:"status"`
	LocationID  *string   `json:"locationId"`
	ReporterID  *string   `json:"reporterId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Case struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	AssignedTo  *string   `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type StatusUpdate struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"caseId"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Entity is implemented by every stored record so that relations and graphs
// can be handled without knowing the concrete type.
type Entity interface {
	EntityKind() Kind
	EntityID() string
	DisplayLabel() string
}

func (p Person) EntityKind() Kind { return KindPerson }
func (p Person) EntityID() string { return p.ID }

func (p Person) DisplayLabel() string {
	name := strings.TrimSpace(deref(p.FirstName) + " " + deref(p.LastName))
	if name != "" {
		return name
	}
	if alias := strings.TrimSpace(deref(p.Alias)); alias != "" {
		return alias
	}
	return "Unknown Person"
}

func (v Vehicle) EntityKind() Kind { return KindVehicle }
func (v Vehicle) EntityID() string { return v.ID }

func (v Vehicle) DisplayLabel() string {
	desc := strings.TrimSpace(deref(v.Make) + " " + deref(v.Model))
	if desc == "" {
		return v.LicensePlate
	}
	return fmt.Sprintf("%s (%s)", v.LicensePlate, desc)
}

func (l Location) EntityKind() Kind { return KindLocation }
func (l Location) EntityID() string { return l.ID }

func (l Location) DisplayLabel() string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{l.Address, l.City} {
		if s := strings.TrimSpace(deref(p)); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "Unknown Location"
	}
	return strings.Join(parts, ", ")
}

func (t Tag) EntityKind() Kind          { return KindTag }
func (t Tag) EntityID() string          { return t.ID }
func (t Tag) DisplayLabel() string      { return t.Name }
func (p Product) EntityKind() Kind      { return KindProduct }
func (p Product) EntityID() string      { return p.ID }
func (p Product) DisplayLabel() string  { return p.Name }
func (e Evidence) EntityKind() Kind     { return KindEvidence }
func (e Evidence) EntityID() string     { return e.ID }
func (e Evidence) DisplayLabel() string { return e.Name }
func (i Incident) EntityKind() Kind     { return KindIncident }
func (i Incident) EntityID() string     { return i.ID }
func (i Incident) DisplayLabel() string { return i.Title }
func (c Case) EntityKind() Kind         { return KindCase }
func (c Case) EntityID() string         { return c.ID }
func (c Case) DisplayLabel() string     { return c.Title }

func (s StatusUpdate) EntityKind() Kind     { return KindStatusUpdate }
func (s StatusUpdate) EntityID() string     { return s.ID }
func (s StatusUpdate) DisplayLabel() string { return s.Message }

type PersonPatch struct {
	FirstName              *string
	LastName               *string
	Alias                  *string
	Ethnicity              *string
	Gender                 *Gender
	Age                    *int
	Height                 *string
	Build                  *string
	DistinguishingFeatures *string
	Modus                  *string
	IsPersonOfInterest     *bool
}

type VehiclePatch struct {
	LicensePlate           *string
	State                  *string
	Make                   *string
	Model                  *string
	Year                   *int
	Color                  *string
	DistinguishingFeatures *string
	IsVehicleOfInterest    *bool
}

type IncidentPatch struct {
	Title       *string
	EventType   *EventType
	Description *string
	DateTime    *time.Time
	Status      *Status
	LocationID  *string
	ReporterID  *string
}

type CasePatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	AssignedTo  *string
}

// Links maps a relation name to the complete new set of counterpart ids.
// A relation missing from the map is left untouched.
type Links map[string][]string

type ListFilter struct {
	Status    Status
	EventType EventType
	Priority  Priority
	Flagged   *bool
	Search    string
	Limit     int
}

type DashboardStat struct {
	Title     string  `json:"title"`
	Value     string  `json:"value"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
	Period    string  `json:"period"`
}

// CountQuery counts rows of one kind, optionally restricted by filter fields
// and a createdAt window [From, To).
type CountQuery struct {
	Kind   Kind
	Filter ListFilter
	From   *time.Time
	To     *time.Time
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
