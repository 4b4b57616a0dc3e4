package application

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
)

const (
	statsWindow = 30 * 24 * time.Hour
	statsPeriod = "last month"

	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// DashboardStats reports the three headline counters. Change compares rows
// created in the last 30 days with the 30 days before that.
func (s *CaseService) DashboardStats(ctx context.Context) ([]domain.DashboardStat, error) {
	flagged := true
	metrics := []struct {
		title string
		query domain.CountQuery
	}{
		{"Total Incidents", domain.CountQuery{Kind: domain.KindIncident}},
		{"Open Cases", domain.CountQuery{Kind: domain.KindCase, Filter: domain.ListFilter{Status: domain.StatusOpen}}},
		{"Persons of Interest", domain.CountQuery{Kind: domain.KindPerson, Filter: domain.ListFilter{Flagged: &flagged}}},
	}

	now := s.now().UTC()
	currentFrom := now.Add(-statsWindow)
	previousFrom := currentFrom.Add(-statsWindow)

	stats := make([]domain.DashboardStat, 0, len(metrics))
	for _, m := range metrics {
		total, err := s.store.Count(ctx, m.query)
		if err != nil {
			return nil, err
		}
		current, err := s.countBetween(ctx, m.query, currentFrom, now)
		if err != nil {
			return nil, err
		}
		previous, err := s.countBetween(ctx, m.query, previousFrom, currentFrom)
		if err != nil {
			return nil, err
		}

		change, direction := monthOverMonth(current, previous)
		stats = append(stats, domain.DashboardStat{
			Title:     m.title,
			Value:     strconv.FormatInt(total, 10),
			Change:    change,
			Direction: direction,
			Period:    statsPeriod,
		})
	}
	return stats, nil
}

func (s *CaseService) countBetween(ctx context.Context, q domain.CountQuery, from, to time.Time) (int64, error) {
	q.From = &from
	q.To = &to
	return s.store.Count(ctx, q)
}

// monthOverMonth returns the absolute percentage change rounded to one
// decimal. Growth from zero counts as 100%.
func monthOverMonth(current, previous int64) (float64, string) {
	switch {
	case current == previous:
		return 0, DirectionNeutral
	case previous == 0:
		return 100, DirectionUp
	}

	pct := float64(current-previous) / float64(previous) * 100
	direction := DirectionUp
	if pct < 0 {
		direction = DirectionDown
	}
	return math.Round(math.Abs(pct)*10) / 10, direction
}
