package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderColleges(w io.Writer, colleges []domain.NormalizedCollege) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Location", "Type", "Setting", "Students", "Admit", "SAT", "Net Price"})
	for _, c := range colleges {
		t.AppendRow(table.Row{
			c.ScorecardID,
			c.Name,
			location(c),
			c.SchoolType,
			c.LocationType,
			c.EnrollmentSize,
			percent(c.AcceptanceRate),
			number(c.AvgSAT),
			dollars(c.EstimatedCost),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})
	t.Render()
}

func renderCollege(w io.Writer, c domain.NormalizedCollege) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(c.Name)

	website := "-"
	if c.WebsiteURL != nil {
		website = *c.WebsiteURL
	}
	programs := "-"
	if len(c.StrongPrograms) > 0 {
		names := make([]string, len(c.StrongPrograms))
		for i, p := range c.StrongPrograms {
			names[i] = string(p)
		}
		programs = strings.Join(names, ", ")
	}

	t.AppendRows([]table.Row{
		{"Scorecard ID", c.ScorecardID},
		{"Location", location(c)},
		{"Region", c.Region},
		{"Website", website},
		{"Type", c.SchoolType},
		{"Setting", c.LocationType},
		{"Students", c.EnrollmentSize},
		{"Acceptance rate", percent(c.AcceptanceRate)},
		{"Average SAT", number(c.AvgSAT)},
		{"Average ACT", number(c.AvgACT)},
		{"Net price", dollars(c.EstimatedCost)},
		{"In-state tuition", dollars(c.InStateTuition)},
		{"Out-of-state tuition", dollars(c.OutOfStateTuition)},
		{"Graduation rate", percent(c.GraduationRate)},
		{"Median earnings (10 yr)", dollars(c.MedianEarnings)},
		{"Student/faculty ratio", number(c.StudentFacultyRatio)},
		{"Strong programs", programs},
	})
	t.Render()
}

func location(c domain.NormalizedCollege) string {
	switch {
	case c.City != "" && c.State != "":
		return c.City + ", " + c.State
	case c.State != "":
		return c.State
	default:
		return c.City
	}
}

func percent(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *f*100)
}

func number(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *f)
}

func dollars(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("$%.0f", *f)
}
