package report

import (
	"io"

	"github.com/rodaine/table"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

// View selects which slice of the report a table shows.
type View string

const (
	ViewAll       View = "all"
	ViewBroken    View = "broken"
	ViewRedirects View = "redirects"
)

// WriteTable renders the chosen view as an aligned terminal table.
func (r *Report) WriteTable(w io.Writer, view View) {
	var records []models.LinkRecord
	switch view {
	case ViewBroken:
		records = r.Broken()
	case ViewRedirects:
		records = r.Redirects()
	default:
		records = r.All()
	}

	tbl := table.New("Page", "Link", "Type", "Status Code", "Status").WithWriter(w)
	for _, rec := range records {
		tbl.AddRow(rec.Page, rec.Link, rec.Type, rec.Status(), rec.Outcome)
	}
	tbl.Print()
}
