package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/dnikolaeva/collectdesk/internal/types"
)

func renderSummary(t *testing.T, report *types.SummaryReport) string {
	t.Helper()
	var buf bytes.Buffer
	err := writeTo(&buf, func(w *csv.Writer) error {
		return WriteSummary(w, report)
	})
	if err != nil {
		t.Fatalf("writeTo() error = %v", err)
	}
	return buf.String()
}

func TestWriteSummarySections(t *testing.T) {
	report := &types.SummaryReport{
		Totals: types.Statistics{
			CollectorsCount:  3,
			CollectionsCount: 5,
			CatalogCount:     12,
			ItemsCount:       40,
		},
		RecentCollections: 2,
		ActiveCollectors:  3,
		ByType: []types.CollectionTypeStat{
			{CollectionType: "Stamps", Count: 3},
			{CollectionType: "Coins", Count: 2},
		},
		ByCountry: []types.CountryStat{
			{Country: "Germany", CollectorCount: 2},
		},
		TopCollectors: []types.TopCollector{
			{Surname: "Ivanova", Name: "Daria", CollectionsCount: 4},
		},
	}

	out := renderSummary(t, report)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	wantLines := []string{
		"metric,value",
		"collectors,3",
		"collections,5",
		"catalog items,12",
		"items in collections,40",
		"collections created last 30 days,2",
		"active collectors,3",
		"",
		"collection type,collections",
		"Stamps,3",
		"Coins,2",
		"",
		"country,collectors",
		"Germany,2",
		"",
		"surname,name,collections",
		"Ivanova,Daria,4",
	}
	if len(lines) != len(wantLines) {
		t.Fatalf("rendered %d lines, want %d:\n%s", len(lines), len(wantLines), out)
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestWriteSummaryEmptyReport(t *testing.T) {
	out := renderSummary(t, &types.SummaryReport{})

	if !strings.Contains(out, "collectors,0") {
		t.Errorf("output missing zero totals:\n%s", out)
	}
	// Section headers are present even with no breakdown rows.
	for _, header := range []string{"collection type,collections", "country,collectors", "surname,name,collections"} {
		if !strings.Contains(out, header) {
			t.Errorf("output missing section header %q:\n%s", header, out)
		}
	}
}
