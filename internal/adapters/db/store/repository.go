package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

var _ domain.Store = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Find(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error) {
	kt, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := kt.find(r.db.WithContext(ctx).Where("id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound(kind, id)
	}
	return rows[0], nil
}

func (r *Repository) List(ctx context.Context, kind domain.Kind, filter domain.ListFilter) ([]domain.Entity, error) {
	kt, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	q, err := applyFilter(r.db.WithContext(ctx), kind, kt, filter)
	if err != nil {
		return nil, err
	}
	q = q.Order(kt.order())
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return kt.find(q)
}

func (r *Repository) Count(ctx context.Context, query domain.CountQuery) (int64, error) {
	kt, err := tableFor(query.Kind)
	if err != nil {
		return 0, err
	}
	q, err := applyFilter(r.db.WithContext(ctx).Table(kt.table), query.Kind, kt, query.Filter)
	if err != nil {
		return 0, err
	}
	if query.From != nil || query.To != nil {
		if kt.untimed {
			return 0, fmt.Errorf("%w: %s has no creation time", domain.ErrInvalidFilter, query.Kind)
		}
		if query.From != nil {
			q = q.Where("created_at >= ?", query.From.UTC())
		}
		if query.To != nil {
			q = q.Where("created_at < ?", query.To.UTC())
		}
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the row and everything that references it. It reports false
// without error when no row had that id.
func (r *Repository) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	kt, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	deleted := false
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range cascades[kind] {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		res := tx.Exec("DELETE FROM "+kt.table+" WHERE id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *Repository) Related(ctx context.Context, rel domain.Relation, ownerID string) ([]domain.Entity, error) {
	plan, err := planFor(rel)
	if err != nil {
		return nil, err
	}
	target, err := tableFor(rel.Target)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	switch rel.Shape {
	case domain.ShapeParent:
		refs := make([]sql.NullString, 0, 1)
		if err := db.Table(plan.table).Where("id = ?", ownerID).Pluck(plan.target, &refs).Error; err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			return nil, notFound(rel.Owner, ownerID)
		}
		if !refs[0].Valid {
			return []domain.Entity{}, nil
		}
		return r.loadOrdered(ctx, target, []string{refs[0].String})

	case domain.ShapeJoin:
		if err := r.mustExist(ctx, rel.Owner, ownerID); err != nil {
			return nil, err
		}
		ids := make([]string, 0)
		if err := db.Table(plan.table).Where(plan.owner+" = ?", ownerID).Order("id ASC").Pluck(plan.target, &ids).Error; err != nil {
			return nil, err
		}
		return r.loadOrdered(ctx, target, ids)

	case domain.ShapeChildren:
		if err := r.mustExist(ctx, rel.Owner, ownerID); err != nil {
			return nil, err
		}
		return target.find(db.Where(plan.owner+" = ?", ownerID).Order(target.order()))
	}

	return nil, fmt.Errorf("%w: %s has shape %s", domain.ErrUnknownRelation, rel, rel.Shape)
}

func (r *Repository) ReplaceRelations(ctx context.Context, rel domain.Relation, ownerID string, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return (&Repository{db: tx}).replaceRelations(ctx, rel, ownerID, ids)
	})
}

// replaceRelations must run inside a transaction: it clears the old set
// before writing the new one.
func (r *Repository) replaceRelations(ctx context.Context, rel domain.Relation, ownerID string, ids []string) error {
	if !rel.Replaceable() {
		return fmt.Errorf("%w: %s", domain.ErrNotReplaceable, rel)
	}
	plan, err := planFor(rel)
	if err != nil {
		return err
	}
	if err := r.mustExist(ctx, rel.Owner, ownerID); err != nil {
		return err
	}
	ids, err = uniqueIDs(ids)
	if err != nil {
		return err
	}
	if err := r.mustExistAll(ctx, rel.Target, ids); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	switch rel.Shape {
	case domain.ShapeJoin:
		if err := db.Exec("DELETE FROM "+plan.table+" WHERE "+plan.owner+" = ?", ownerID).Error; err != nil {
			return err
		}
		insert := "INSERT INTO " + plan.table + " (" + plan.owner + ", " + plan.target + ") VALUES (?, ?)"
		for _, id := range ids {
			if err := db.Exec(insert, ownerID, id).Error; err != nil {
				return err
			}
		}
	case domain.ShapeChildren:
		if err := db.Exec("UPDATE "+plan.table+" SET "+plan.owner+" = NULL WHERE "+plan.owner+" = ?", ownerID).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := db.Exec("UPDATE "+plan.table+" SET "+plan.owner+" = ? WHERE id IN ?", ownerID, ids).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// applyLinks replaces every relation named in links, in name order so that
// failures are reproducible.
func (r *Repository) applyLinks(ctx context.Context, kind domain.Kind, ownerID string, links domain.Links) error {
	names := make([]string, 0, len(links))
	for name := range links {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rel, err := domain.LookupRelation(kind, name)
		if err != nil {
			return err
		}
		if err := r.replaceRelations(ctx, rel, ownerID, links[name]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) CreatePerson(ctx context.Context, value domain.Person) (domain.Person, error) {
	m := PersonModel{
		ID:                     idOrNew(value.ID),
		FirstName:              value.FirstName,
		LastName:               value.LastName,
		Alias:                  value.Alias,
		Ethnicity:              value.Ethnicity,
		Gender:                 genderString(value.Gender),
		Age:                    value.Age,
		Height:                 value.Height,
		Build:                  value.Build,
		DistinguishingFeatures: value.DistinguishingFeatures,
		Modus:                  value.Modus,
		IsPersonOfInterest:     value.IsPersonOfInterest,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Person{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) UpdatePerson(ctx context.Context, id string, patch domain.PersonPatch) (domain.Person, error) {
	updates := r.baseUpdates()
	setString(updates, "first_name", patch.FirstName)
	setString(updates, "last_name", patch.LastName)
	setString(updates, "alias", patch.Alias)
	setString(updates, "ethnicity", patch.Ethnicity)
	if patch.Gender != nil {
		updates["gender"] = string(*patch.Gender)
	}
	if patch.Age != nil {
		updates["age"] = *patch.Age
	}
	setString(updates, "height", patch.Height)
	setString(updates, "build", patch.Build)
	setString(updates, "distinguishing_features", patch.DistinguishingFeatures)
	setString(updates, "modus", patch.Modus)
	if patch.IsPersonOfInterest != nil {
		updates["is_person_of_interest"] = *patch.IsPersonOfInterest
	}

	if err := r.update(ctx, &PersonModel{}, domain.KindPerson, id, updates); err != nil {
		return domain.Person{}, err
	}
	m, err := first[PersonModel](ctx, r.db, domain.KindPerson, id)
	if err != nil {
		return domain.Person{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateVehicle(ctx context.Context, value domain.Vehicle) (domain.Vehicle, error) {
	m := VehicleModel{
		ID:                     idOrNew(value.ID),
		LicensePlate:           value.LicensePlate,
		State:                  value.State,
		Make:                   value.Make,
		Model:                  value.Model,
		Year:                   value.Year,
		Color:                  value.Color,
		DistinguishingFeatures: value.DistinguishingFeatures,
		IsVehicleOfInterest:    value.IsVehicleOfInterest,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Vehicle{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) UpdateVehicle(ctx context.Context, id string, patch domain.VehiclePatch) (domain.Vehicle, error) {
	updates := r.baseUpdates()
	setString(updates, "license_plate", patch.LicensePlate)
	setString(updates, "state", patch.State)
	setString(updates, "make", patch.Make)
	setString(updates, "model", patch.Model)
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}
	setString(updates, "color", patch.Color)
	setString(updates, "distinguishing_features", patch.DistinguishingFeatures)
	if patch.IsVehicleOfInterest != nil {
		updates["is_vehicle_of_interest"] = *patch.IsVehicleOfInterest
	}

	if err := r.update(ctx, &VehicleModel{}, domain.KindVehicle, id, updates); err != nil {
		return domain.Vehicle{}, err
	}
	m, err := first[VehicleModel](ctx, r.db, domain.KindVehicle, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateLocation(ctx context.Context, value domain.Location) (domain.Location, error) {
	m := LocationModel{
		ID:        idOrNew(value.ID),
		Address:   value.Address,
		City:      value.City,
		State:     value.State,
		ZipCode:   value.ZipCode,
		Latitude:  value.Latitude,
		Longitude: value.Longitude,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Location{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateTag(ctx context.Context, value domain.Tag) (domain.Tag, error) {
	var taken int64
	if err := r.db.WithContext(ctx).Model(&TagModel{}).Where("LOWER(name) = LOWER(?)", value.Name).Count(&taken).Error; err != nil {
		return domain.Tag{}, err
	}
	if taken > 0 {
		return domain.Tag{}, fmt.Errorf("%w: tag %q already exists", domain.ErrInvalidInput, value.Name)
	}

	m := TagModel{ID: idOrNew(value.ID), Name: value.Name, Color: value.Color}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Tag{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateProduct(ctx context.Context, value domain.Product) (domain.Product, error) {
	incidentID := nilIfEmpty(value.IncidentID)
	if err := r.checkRef(ctx, domain.KindIncident, incidentID); err != nil {
		return domain.Product{}, err
	}
	m := ProductModel{
		ID:          idOrNew(value.ID),
		Name:        value.Name,
		Description: value.Description,
		Quantity:    value.Quantity,
		Value:       value.Value,
		IncidentID:  incidentID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Product{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateEvidence(ctx context.Context, value domain.Evidence) (domain.Evidence, error) {
	incidentID := nilIfEmpty(value.IncidentID)
	if err := r.checkRef(ctx, domain.KindIncident, incidentID); err != nil {
		return domain.Evidence{}, err
	}
	m := EvidenceModel{
		ID:          idOrNew(value.ID),
		Name:        value.Name,
		Type:        value.Type,
		Description: value.Description,
		FileURL:     value.FileURL,
		IncidentID:  incidentID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Evidence{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) SetEvidenceFile(ctx context.Context, id, fileURL string) (domain.Evidence, error) {
	updates := r.baseUpdates()
	updates["file_url"] = fileURL
	if err := r.update(ctx, &EvidenceModel{}, domain.KindEvidence, id, updates); err != nil {
		return domain.Evidence{}, err
	}
	m, err := first[EvidenceModel](ctx, r.db, domain.KindEvidence, id)
	if err != nil {
		return domain.Evidence{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) CreateIncident(ctx context.Context, value domain.Incident, links domain.Links) (domain.Incident, error) {
	var result domain.Incident
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := &Repository{db: tx}
		locationID := nilIfEmpty(value.LocationID)
		reporterID := nilIfEmpty(value.ReporterID)
		if err := txr.checkRef(ctx, domain.KindLocation, locationID); err != nil {
			return err
		}
		if err := txr.checkRef(ctx, domain.KindPerson, reporterID); err != nil {
			return err
		}

		m := IncidentModel{
			ID:          idOrNew(value.ID),
			Title:       value.Title,
			EventType:   string(value.EventType),
			Description: value.Description,
			DateTime:    value.DateTime.UTC(),
			Status:      string(value.Status),
			LocationID:  locationID,
			ReporterID:  reporterID,
		}
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			return err
		}
		if err := txr.applyLinks(ctx, domain.KindIncident, m.ID, links); err != nil {
			return err
		}
		result = m.toDomain()
		return nil
	})
	return result, err
}

func (r *Repository) UpdateIncident(ctx context.Context, id string, patch domain.IncidentPatch, links domain.Links) (domain.Incident, error) {
	var result domain.Incident
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := &Repository{db: tx}
		updates := txr.baseUpdates()
		setString(updates, "title", patch.Title)
		if patch.EventType != nil {
			updates["event_type"] = string(*patch.EventType)
		}
		setString(updates, "description", patch.Description)
		if patch.DateTime != nil {
			updates["date_time"] = patch.DateTime.UTC()
		}
		if patch.Status != nil {
			updates["status"] = string(*patch.Status)
		}
		if err := txr.setRef(ctx, updates, "location_id", domain.KindLocation, patch.LocationID); err != nil {
			return err
		}
		if err := txr.setRef(ctx, updates, "reporter_id", domain.KindPerson, patch.ReporterID); err != nil {
			return err
		}

		if err := txr.update(ctx, &IncidentModel{}, domain.KindIncident, id, updates); err != nil {
			return err
		}
		if err := txr.applyLinks(ctx, domain.KindIncident, id, links); err != nil {
			return err
		}
		m, err := first[IncidentModel](ctx, tx, domain.KindIncident, id)
		if err != nil {
			return err
		}
		result = m.toDomain()
		return nil
	})
	return result, err
}

func (r *Repository) ListRecentIncidents(ctx context.Context, limit int) ([]domain.Incident, error) {
	rows := make([]IncidentModel, 0)
	if err := r.db.WithContext(ctx).Order("date_time DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Incident, 0, len(rows))
	for _, m := range rows {
		result = append(result, m.toDomain())
	}
	return result, nil
}

func (r *Repository) CreateCase(ctx context.Context, value domain.Case, links domain.Links) (domain.Case, error) {
	var result domain.Case
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := CaseModel{
			ID:          idOrNew(value.ID),
			Title:       value.Title,
			Description: value.Description,
			Status:      string(value.Status),
			Priority:    string(value.Priority),
			AssignedTo:  value.AssignedTo,
		}
		if err := tx.WithContext(ctx).Create(&m).Error; err != nil {
			return err
		}
		if err := (&Repository{db: tx}).applyLinks(ctx, domain.KindCase, m.ID, links); err != nil {
			return err
		}
		result = m.toDomain()
		return nil
	})
	return result, err
}

func (r *Repository) UpdateCase(ctx context.Context, id string, patch domain.CasePatch, links domain.Links) (domain.Case, error) {
	var result domain.Case
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := &Repository{db: tx}
		updates := txr.baseUpdates()
		setString(updates, "title", patch.Title)
		setString(updates, "description", patch.Description)
		if patch.Status != nil {
			updates["status"] = string(*patch.Status)
		}
		if patch.Priority != nil {
			updates["priority"] = string(*patch.Priority)
		}
		setString(updates, "assigned_to", patch.AssignedTo)

		if err := txr.update(ctx, &CaseModel{}, domain.KindCase, id, updates); err != nil {
			return err
		}
		if err := txr.applyLinks(ctx, domain.KindCase, id, links); err != nil {
			return err
		}
		m, err := first[CaseModel](ctx, tx, domain.KindCase, id)
		if err != nil {
			return err
		}
		result = m.toDomain()
		return nil
	})
	return result, err
}

func (r *Repository) AddStatusUpdate(ctx context.Context, value domain.StatusUpdate) (domain.StatusUpdate, error) {
	if err := r.mustExist(ctx, domain.KindCase, value.CaseID); err != nil {
		return domain.StatusUpdate{}, err
	}
	m := StatusUpdateModel{
		ID:      idOrNew(value.ID),
		CaseID:  value.CaseID,
		Message: value.Message,
		UserID:  value.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.StatusUpdate{}, err
	}
	return m.toDomain(), nil
}

func (r *Repository) baseUpdates() map[string]any {
	return map[string]any{"updated_at": r.db.NowFunc()}
}

func (r *Repository) update(ctx context.Context, model any, kind domain.Kind, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(kind, id)
	}
	return nil
}

// setRef stages a foreign key change. An empty id clears the reference.
func (r *Repository) setRef(ctx context.Context, updates map[string]any, column string, kind domain.Kind, id *string) error {
	if id == nil {
		return nil
	}
	if strings.TrimSpace(*id) == "" {
		updates[column] = nil
		return nil
	}
	if err := r.mustExist(ctx, kind, *id); err != nil {
		return err
	}
	updates[column] = *id
	return nil
}

func (r *Repository) checkRef(ctx context.Context, kind domain.Kind, id *string) error {
	if id == nil {
		return nil
	}
	return r.mustExist(ctx, kind, *id)
}

func (r *Repository) mustExist(ctx context.Context, kind domain.Kind, id string) error {
	kt, err := tableFor(kind)
	if err != nil {
		return err
	}
	var count int64
	if err := r.db.WithContext(ctx).Table(kt.table).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(kind, id)
	}
	return nil
}

func (r *Repository) mustExistAll(ctx context.Context, kind domain.Kind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	kt, err := tableFor(kind)
	if err != nil {
		return err
	}
	found := make([]string, 0, len(ids))
	if err := r.db.WithContext(ctx).Table(kt.table).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return notFound(kind, id)
		}
	}
	return nil
}

// loadOrdered fetches rows by id and returns them in the order of ids.
func (r *Repository) loadOrdered(ctx context.Context, kt kindTable, ids []string) ([]domain.Entity, error) {
	if len(ids) == 0 {
		return []domain.Entity{}, nil
	}
	rows, err := kt.find(r.db.WithContext(ctx).Where("id IN ?", ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Entity, len(rows))
	for _, e := range rows {
		byID[e.EntityID()] = e
	}
	result := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

func first[M any](ctx context.Context, db *gorm.DB, kind domain.Kind, id string) (M, error) {
	var m M
	err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, notFound(kind, id)
	}
	return m, err
}

func applyFilter(q *gorm.DB, kind domain.Kind, kt kindTable, f domain.ListFilter) (*gorm.DB, error) {
	if f.Status != "" {
		if !kt.status {
			return nil, unsupportedFilter(kind, "status")
		}
		q = q.Where("status = ?", string(f.Status))
	}
	if f.EventType != "" {
		if !kt.eventType {
			return nil, unsupportedFilter(kind, "eventType")
		}
		q = q.Where("event_type = ?", string(f.EventType))
	}
	if f.Priority != "" {
		if !kt.priority {
			return nil, unsupportedFilter(kind, "priority")
		}
		q = q.Where("priority = ?", string(f.Priority))
	}
	if f.Flagged != nil {
		if kt.flag == "" {
			return nil, unsupportedFilter(kind, "flagged")
		}
		q = q.Where(kt.flag+" = ?", *f.Flagged)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + escapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, 0, len(kt.search))
		args := make([]any, 0, len(kt.search))
		for _, col := range kt.search {
			clauses = append(clauses, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, like)
		}
		q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return q, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func unsupportedFilter(kind domain.Kind, field string) error {
	return fmt.Errorf("%w: %s cannot be filtered by %s", domain.ErrInvalidFilter, kind, field)
}

func notFound(kind domain.Kind, id string) error {
	return fmt.Errorf("%w: %s %q", domain.ErrNotFound, kind, id)
}

func uniqueIDs(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, fmt.Errorf("%w: empty id in relation set", domain.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}

func setString(updates map[string]any, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func nilIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func idOrNew(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return uuid.Must(uuid.NewV7()).String()
}
