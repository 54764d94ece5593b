package export

import (
	"encoding/csv"
	"strconv"

	"github.com/dnikolaeva/collectdesk/internal/types"
)

// WriteSummary renders the summary report as CSV sections: totals first,
// then the per-type and per-country breakdowns, then the most active
// collectors.
func WriteSummary(w *csv.Writer, report *types.SummaryReport) error {
	rows := [][]string{
		{"metric", "value"},
		{"collectors", strconv.FormatInt(report.Totals.CollectorsCount, 10)},
		{"collections", strconv.FormatInt(report.Totals.CollectionsCount, 10)},
		{"catalog items", strconv.FormatInt(report.Totals.CatalogCount, 10)},
		{"items in collections", strconv.FormatInt(report.Totals.ItemsCount, 10)},
		{"collections created last 30 days", strconv.FormatInt(report.RecentCollections, 10)},
		{"active collectors", strconv.FormatInt(report.ActiveCollectors, 10)},
		{},
		{"collection type", "collections"},
	}
	for _, st := range report.ByType {
		rows = append(rows, []string{st.CollectionType, strconv.FormatInt(st.Count, 10)})
	}

	rows = append(rows, []string{}, []string{"country", "collectors"})
	for _, st := range report.ByCountry {
		rows = append(rows, []string{st.Country, strconv.FormatInt(st.CollectorCount, 10)})
	}

	rows = append(rows, []string{}, []string{"surname", "name", "collections"})
	for _, tc := range report.TopCollectors {
		rows = append(rows, []string{tc.Surname, tc.Name, strconv.FormatInt(tc.CollectionsCount, 10)})
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
