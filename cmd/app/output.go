package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/anilpal6795/crime-linker/internal/application"
	"github.com/anilpal6795/crime-linker/internal/domain"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatMaybe[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func printPeople(items []domain.Person) {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			p.ID,
			p.DisplayLabel(),
			formatMaybe(p.Alias),
			formatMaybe(p.Gender),
			formatMaybe(p.Age),
			strconv.FormatBool(p.IsPersonOfInterest),
		})
	}
	printTable([]string{"ID", "NAME", "ALIAS", "GENDER", "AGE", "POI"}, rows)
}

func printVehicles(items []domain.Vehicle) {
	rows := make([][]string, 0, len(items))
	for _, v := range items {
		rows = append(rows, []string{
			v.ID,
			v.LicensePlate,
			strings.TrimSpace(formatMaybe(v.Make) + " " + formatMaybe(v.Model)),
			formatMaybe(v.Color),
			strconv.FormatBool(v.IsVehicleOfInterest),
		})
	}
	printTable([]string{"ID", "PLATE", "VEHICLE", "COLOR", "VOI"}, rows)
}

func printIncidents(items []domain.Incident) {
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{
			i.ID,
			i.Title,
			string(i.EventType),
			string(i.Status),
			formatTime(i.DateTime),
		})
	}
	printTable([]string{"ID", "TITLE", "TYPE", "STATUS", "WHEN"}, rows)
}

func printCases(items []domain.Case) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, []string{
			c.ID,
			c.Title,
			string(c.Status),
			string(c.Priority),
			formatMaybe(c.AssignedTo),
			formatTime(c.UpdatedAt),
		})
	}
	printTable([]string{"ID", "TITLE", "STATUS", "PRIORITY", "ASSIGNED_TO", "UPDATED_AT"}, rows)
}

func printEntities(items []domain.Entity) {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, []string{e.EntityID(), string(e.EntityKind()), e.DisplayLabel()})
	}
	printTable([]string{"ID", "KIND", "LABEL"}, rows)
}

func printGraph(g domain.Graph) {
	nodes := make([][]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, []string{n.ID, n.Type, n.Label})
	}
	printTable([]string{"NODE", "TYPE", "LABEL"}, nodes)
	fmt.Println()

	edges := make([][]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, []string{e.Source, e.Label, e.Target})
	}
	printTable([]string{"SOURCE", "LABEL", "TARGET"}, edges)
}

func printStats(items []domain.DashboardStat) {
	rows := make([][]string, 0, len(items))
	for _, s := range items {
		rows = append(rows, []string{
			s.Title,
			s.Value,
			strconv.FormatFloat(s.Change, 'f', 1, 64) + "%",
			s.Direction,
			s.Period,
		})
	}
	printTable([]string{"METRIC", "VALUE", "CHANGE", "DIRECTION", "PERIOD"}, rows)
}

func printStatusUpdate(u domain.StatusUpdate) {
	printKV([][2]string{
		{"id", u.ID},
		{"case_id", u.CaseID},
		{"message", u.Message},
		{"user_id", u.UserID},
		{"created_at", formatTime(u.CreatedAt)},
	})
}

func printSeedResult(r application.SeedResult) {
	printKV([][2]string{
		{"people", strconv.Itoa(r.People)},
		{"vehicles", strconv.Itoa(r.Vehicles)},
		{"locations", strconv.Itoa(r.Locations)},
		{"tags", strconv.Itoa(r.Tags)},
		{"incidents", strconv.Itoa(r.Incidents)},
		{"products", strconv.Itoa(r.Products)},
		{"evidence", strconv.Itoa(r.Evidence)},
		{"cases", strconv.Itoa(r.Cases)},
		{"status_updates", strconv.Itoa(r.Updates)},
		{"incident_id", r.IncidentID},
		{"case_id", r.CaseID},
	})
}
