package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// csvRow column order and naming are the compatibility contract for
// downstream consumers of the exported report.
type csvRow struct {
	Page       string `csv:"Page"`
	Link       string `csv:"Link"`
	Type       string `csv:"Type"`
	StatusCode string `csv:"Status Code"`
	Status     string `csv:"Status"`
}

// WriteCSV writes every record, in display order, as CSV.
func (r *Report) WriteCSV(w io.Writer) error {
	rows := make([]*csvRow, 0, len(r.Records))
	for _, rec := range r.All() {
		rows = append(rows, &csvRow{
			Page:       rec.Page,
			Link:       rec.Link,
			Type:       string(rec.Type),
			StatusCode: rec.Status(),
			Status:     string(rec.Outcome),
		})
	}
	return gocsv.Marshal(&rows, w)
}

// SaveCSV writes the report to path, creating or truncating the file.
func (r *Report) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", path, err)
	}
	defer f.Close()
	return r.WriteCSV(f)
}

// DefaultCSVName names the export after the audited host.
func DefaultCSVName(host string) string {
	return fmt.Sprintf("broken_links_%s.csv", host)
}
