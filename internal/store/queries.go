package store

import (
	"context"
	"fmt"

	"github.com/dnikolaeva/collectdesk/internal/types"
)

// Collectors returns every collector joined with its country name.
func (s *Store) Collectors(ctx context.Context) ([]types.Collector, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT c.id, c.surname, c.name,
		       COALESCE(c.patronymic, ''), COALESCE(c.email, ''),
		       c.id_country, COALESCE(c.description, ''),
		       COALESCE(co.country, '')
		FROM collector c
		LEFT JOIN country co ON c.id_country = co.id
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list collectors: %w", err)
	}
	defer rows.Close()

	collectors := []types.Collector{}
	for rows.Next() {
		var c types.Collector
		if err := rows.Scan(&c.ID, &c.Surname, &c.Name, &c.Patronymic, &c.Email,
			&c.IDCountry, &c.Description, &c.Country); err != nil {
			return nil, fmt.Errorf("scan collector: %w", err)
		}
		collectors = append(collectors, c)
	}
	return collectors, rows.Err()
}

// Collections returns every collection joined with its type name.
func (s *Store) Collections(ctx context.Context) ([]types.Collection, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT col.id, col.name, col.author, col.id_collection_type,
		       COALESCE(to_char(col.date_of_creation, 'YYYY-MM-DD'), ''),
		       COALESCE(col.number_of_items, 0),
		       COALESCE(col.description, ''),
		       COALESCE(ct.collection_type, '')
		FROM collection col
		LEFT JOIN collection_type ct ON col.id_collection_type = ct.id
		ORDER BY col.id`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	collections := []types.Collection{}
	for rows.Next() {
		var c types.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Author, &c.IDCollectionType,
			&c.DateOfCreation, &c.NumberOfItems, &c.Description, &c.CollectionType); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// Catalog returns every catalog item joined with its country name.
func (s *Store) Catalog(ctx context.Context) ([]types.CatalogItem, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT cat.id, cat.name, COALESCE(cat.rare, ''),
		       cat.id_country,
		       COALESCE(to_char(cat.release_date, 'YYYY-MM-DD'), ''),
		       COALESCE(cat.description, ''),
		       COALESCE(co.country, '')
		FROM catalog cat
		LEFT JOIN country co ON cat.id_country = co.id
		ORDER BY cat.id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	items := []types.CatalogItem{}
	for rows.Next() {
		var it types.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Rare, &it.IDCountry,
			&it.ReleaseDate, &it.Description, &it.Country); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Countries returns the country lookup table.
func (s *Store) Countries(ctx context.Context) ([]types.Country, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `SELECT id, country FROM country ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := []types.Country{}
	for rows.Next() {
		var c types.Country
		if err := rows.Scan(&c.ID, &c.Country); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// CollectionTypes returns the collection_type lookup table.
func (s *Store) CollectionTypes(ctx context.Context) ([]types.CollectionType, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `SELECT id, collection_type FROM collection_type ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list collection types: %w", err)
	}
	defer rows.Close()

	collectionTypes := []types.CollectionType{}
	for rows.Next() {
		var ct types.CollectionType
		if err := rows.Scan(&ct.ID, &ct.CollectionType); err != nil {
			return nil, fmt.Errorf("scan collection type: %w", err)
		}
		collectionTypes = append(collectionTypes, ct)
	}
	return collectionTypes, rows.Err()
}

// Statistics returns the dashboard counters in a single round trip.
func (s *Store) Statistics(ctx context.Context) (types.Statistics, error) {
	var stats types.Statistics
	pool, err := s.acquirePool()
	if err != nil {
		return stats, err
	}

	err = pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM collector),
			(SELECT COUNT(*) FROM collection),
			(SELECT COUNT(*) FROM catalog),
			(SELECT COUNT(*) FROM collection_item)`).
		Scan(&stats.CollectorsCount, &stats.CollectionsCount, &stats.CatalogCount, &stats.ItemsCount)
	if err != nil {
		return stats, fmt.Errorf("load statistics: %w", err)
	}
	return stats, nil
}

// CollectionTypeStats returns collection counts grouped by type.
func (s *Store) CollectionTypeStats(ctx context.Context) ([]types.CollectionTypeStat, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT COALESCE(ct.collection_type, ''), COUNT(c.id)
		FROM collection c
		LEFT JOIN collection_type ct ON c.id_collection_type = ct.id
		GROUP BY ct.collection_type
		ORDER BY COUNT(c.id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("collection type stats: %w", err)
	}
	defer rows.Close()

	stats := []types.CollectionTypeStat{}
	for rows.Next() {
		var st types.CollectionTypeStat
		if err := rows.Scan(&st.CollectionType, &st.Count); err != nil {
			return nil, fmt.Errorf("scan type stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// CountryStats returns the ten countries with the most collectors.
func (s *Store) CountryStats(ctx context.Context) ([]types.CountryStat, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT COALESCE(co.country, ''), COUNT(c.id)
		FROM collector c
		LEFT JOIN country co ON c.id_country = co.id
		GROUP BY co.country
		ORDER BY COUNT(c.id) DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("country stats: %w", err)
	}
	defer rows.Close()

	stats := []types.CountryStat{}
	for rows.Next() {
		var st types.CountryStat
		if err := rows.Scan(&st.Country, &st.CollectorCount); err != nil {
			return nil, fmt.Errorf("scan country stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// SummaryReport collects the aggregate data contract for the spreadsheet
// exporter: dashboard totals plus activity breakdowns.
func (s *Store) SummaryReport(ctx context.Context) (*types.SummaryReport, error) {
	pool, err := s.acquirePool()
	if err != nil {
		return nil, err
	}

	report := &types.SummaryReport{}

	report.Totals, err = s.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	err = pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM collection
			 WHERE date_of_creation >= now() - interval '30 days'),
			(SELECT COUNT(DISTINCT author) FROM collection)`).
		Scan(&report.RecentCollections, &report.ActiveCollectors)
	if err != nil {
		return nil, fmt.Errorf("activity counters: %w", err)
	}

	report.ByType, err = s.CollectionTypeStats(ctx)
	if err != nil {
		return nil, err
	}
	report.ByCountry, err = s.CountryStats(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT c.surname, c.name, COUNT(col.id)
		FROM collector c
		LEFT JOIN collection col ON col.author = c.id
		GROUP BY c.id, c.surname, c.name
		ORDER BY COUNT(col.id) DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top collectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc types.TopCollector
		if err := rows.Scan(&tc.Surname, &tc.Name, &tc.CollectionsCount); err != nil {
			return nil, fmt.Errorf("scan top collector: %w", err)
		}
		report.TopCollectors = append(report.TopCollectors, tc)
	}
	return report, rows.Err()
}
