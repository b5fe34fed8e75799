package report

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahalashfaq/linkaudit/internal/models"
)

func sampleRecords() []models.LinkRecord {
	return []models.LinkRecord{
		{Page: "https://example.com/b", Link: "https://example.com/ok", Type: models.LinkInternal, StatusCode: 200, Outcome: models.OutcomeOK},
		{Page: "https://example.com/a", Link: "https://example.com/gone", Type: models.LinkInternal, StatusCode: 404, Outcome: models.OutcomeBroken},
		{Page: "https://example.com/a", Link: "https://example.com/moved", Type: models.LinkInternal, StatusCode: 301, Outcome: models.OutcomeRedirect},
		{Page: "https://example.com/b", Link: "https://dead.invalid/", Type: models.LinkExternal, StatusCode: 0, Outcome: models.OutcomeError},
	}
}

func buildReport(t *testing.T) *Report {
	t.Helper()
	agg := NewAggregator()
	for _, rec := range sampleRecords() {
		agg.Append(rec)
	}
	return agg.Finalize(2, 3*time.Second)
}

func TestAggregatorConcurrentAppends(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Append(models.LinkRecord{Page: "p", Link: "l", Outcome: models.OutcomeOK})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, agg.Len())
	assert.Len(t, agg.Finalize(1, time.Second).Records, 50)
}

func TestReportCounts(t *testing.T) {
	rep := buildReport(t)

	assert.Equal(t, 2, rep.PagesVisited)
	// Broken folds in transport errors; redirects stay separate.
	assert.Equal(t, 2, rep.BrokenCount())
	assert.Equal(t, 1, rep.RedirectCount())
	assert.Equal(t, 3*time.Second, rep.Elapsed)
}

func TestAllOrderedByOutcomeThenPage(t *testing.T) {
	rep := buildReport(t)

	all := rep.All()
	require.Len(t, all, 4)
	assert.Equal(t, models.OutcomeBroken, all[0].Outcome)
	assert.Equal(t, models.OutcomeError, all[1].Outcome)
	assert.Equal(t, models.OutcomeOK, all[2].Outcome)
	assert.Equal(t, models.OutcomeRedirect, all[3].Outcome)
}

func TestFilteredViews(t *testing.T) {
	rep := buildReport(t)

	broken := rep.Broken()
	require.Len(t, broken, 2)
	for _, rec := range broken {
		assert.Contains(t, []models.Outcome{models.OutcomeBroken, models.OutcomeError}, rec.Outcome)
	}

	redirects := rep.Redirects()
	require.Len(t, redirects, 1)
	assert.Equal(t, "https://example.com/moved", redirects[0].Link)
}

func TestWriteCSVColumnContract(t *testing.T) {
	rep := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, rep.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Page,Link,Type,Status Code,Status", lines[0])
	assert.Contains(t, buf.String(), "transport error")
	assert.Contains(t, buf.String(), "404")
}

func TestWriteTableViews(t *testing.T) {
	rep := buildReport(t)

	var all bytes.Buffer
	rep.WriteTable(&all, ViewAll)
	assert.Contains(t, all.String(), "Status Code")
	assert.Contains(t, all.String(), "https://example.com/ok")

	var broken bytes.Buffer
	rep.WriteTable(&broken, ViewBroken)
	assert.Contains(t, broken.String(), "https://example.com/gone")
	assert.NotContains(t, broken.String(), "https://example.com/moved")
}

func TestDefaultCSVName(t *testing.T) {
	assert.Equal(t, "broken_links_example.com.csv", DefaultCSVName("example.com"))
}
