// Package cli prints the catalog and lead counters for operators.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/talentshive/training-site/internal/service"
)

type CatalogPrinter struct {
	catalog service.CatalogService
	stats   service.StatsService
	out     io.Writer
}

func NewCatalogPrinter(catalog service.CatalogService, stats service.StatsService, out io.Writer) *CatalogPrinter {
	return &CatalogPrinter{catalog: catalog, stats: stats, out: out}
}

func (p *CatalogPrinter) Print(ctx context.Context) error {
	if err := p.printCourses(ctx); err != nil {
		return err
	}
	if err := p.printInstructors(ctx); err != nil {
		return err
	}
	return p.printStats(ctx)
}

func (p *CatalogPrinter) heading(title string) {
	color.New(color.FgYellow).Fprintf(p.out, "\n%s\n", title)
}

func (p *CatalogPrinter) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func (p *CatalogPrinter) printCourses(ctx context.Context) error {
	courses, err := p.catalog.ListCourses(ctx)
	if err != nil {
		return err
	}

	p.heading("Courses")
	table := p.newTable([]string{"ID", "Title", "Category", "Level", "Duration", "Standard", "Professional", "Seats", "Popular"})
	for _, c := range courses {
		popular := ""
		if c.IsPopular {
			popular = "yes"
		}
		table.Append([]string{
			c.ID,
			c.Title,
			c.Category,
			c.Level,
			c.Duration,
			c.StandardPrice.StringFixed(2),
			c.ProfessionalPrice.StringFixed(2),
			strconv.Itoa(c.MaxStudents),
			popular,
		})
	}
	table.Render()
	return nil
}

func (p *CatalogPrinter) printInstructors(ctx context.Context) error {
	instructors, err := p.catalog.ListInstructors(ctx)
	if err != nil {
		return err
	}

	p.heading("Instructors")
	table := p.newTable([]string{"ID", "Name", "Title", "Expertise", "Students", "Rating"})
	for _, i := range instructors {
		table.Append([]string{
			i.ID,
			i.Name,
			i.Title,
			strings.Join(i.Expertise, ", "),
			strconv.Itoa(i.StudentsCount),
			i.Rating.StringFixed(1),
		})
	}
	table.Render()
	return nil
}

func (p *CatalogPrinter) printStats(ctx context.Context) error {
	stats, err := p.stats.Get(ctx)
	if err != nil {
		return err
	}

	p.heading("Stats")
	table := p.newTable([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Students enrolled", strconv.Itoa(stats.StudentsEnrolled)},
		{"Courses offered", strconv.Itoa(stats.CoursesOffered)},
		{"Instructors", strconv.Itoa(stats.InstructorsCount)},
		{"Success rate", fmt.Sprintf("%d%%", stats.SuccessRate)},
		{"Applications", strconv.Itoa(stats.TotalApplications)},
		{"Pending", strconv.Itoa(stats.PendingApplications)},
		{"Approved", strconv.Itoa(stats.ApprovedApplications)},
		{"Rejected", strconv.Itoa(stats.RejectedApplications)},
	})
	table.Render()
	return nil
}
