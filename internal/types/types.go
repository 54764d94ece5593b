// Package types contains shared type definitions used across the collectdesk application.
package types

// =============================================================================
// Lookup Types
// =============================================================================

// Country represents a row of the country lookup table.
type Country struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
}

// CollectionType represents a row of the collection_type lookup table.
type CollectionType struct {
	ID             int64  `json:"id"`
	CollectionType string `json:"collectionType"`
}

// =============================================================================
// Entity Types
// =============================================================================

// Collector represents a collector row joined with its country name.
type Collector struct {
	ID          int64  `json:"id"`
	Surname     string `json:"surname"`
	Name        string `json:"name"`
	Patronymic  string `json:"patronymic"`
	Email       string `json:"email"`
	IDCountry   *int64 `json:"idCountry,omitempty"`
	Description string `json:"description"`
	Country     string `json:"country,omitempty"`
}

// Collection represents a collection row joined with its type name.
type Collection struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Author           int64  `json:"author"`
	IDCollectionType *int64 `json:"idCollectionType,omitempty"`
	DateOfCreation   string `json:"dateOfCreation"` // YYYY-MM-DD
	NumberOfItems    int64  `json:"numberOfItems"`
	Description      string `json:"description"`
	CollectionType   string `json:"collectionType,omitempty"`
}

// CatalogItem represents a catalog row joined with its country name.
type CatalogItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Rare        string `json:"rare"`
	IDCountry   *int64 `json:"idCountry,omitempty"`
	ReleaseDate string `json:"releaseDate"` // YYYY-MM-DD
	Description string `json:"description"`
	Country     string `json:"country,omitempty"`
}

// CollectionItem links a collection to a catalog entry. It has no dependents
// of its own: every cascade delete removes these rows first.
type CollectionItem struct {
	ID           int64 `json:"id"`
	IDCollection int64 `json:"idCollection"`
	IDCatalog    int64 `json:"idCatalog"`
	Quantity     int64 `json:"quantity"`
}

// =============================================================================
// Input Payloads (GUI -> backend)
// =============================================================================

// CollectorData carries the editable fields of a collector.
type CollectorData struct {
	Surname     string `json:"surname"`
	Name        string `json:"name"`
	Patronymic  string `json:"patronymic"`
	Email       string `json:"email"`
	IDCountry   *int64 `json:"idCountry"`
	Description string `json:"description"`
}

// CollectionData carries the editable fields of a collection.
type CollectionData struct {
	Name             string `json:"name"`
	Author           int64  `json:"author"`
	IDCollectionType *int64 `json:"idCollectionType"`
	DateOfCreation   string `json:"dateOfCreation"` // YYYY-MM-DD
	NumberOfItems    int64  `json:"numberOfItems"`
	Description      string `json:"description"`
}

// CatalogItemData carries the editable fields of a catalog item.
type CatalogItemData struct {
	Name        string `json:"name"`
	Rare        string `json:"rare"`
	IDCountry   *int64 `json:"idCountry"`
	ReleaseDate string `json:"releaseDate"` // YYYY-MM-DD
	Description string `json:"description"`
}

// =============================================================================
// Dashboard / Report Types
// =============================================================================

// Statistics holds the dashboard counters.
type Statistics struct {
	CollectorsCount  int64 `json:"collectorsCount"`
	CollectionsCount int64 `json:"collectionsCount"`
	CatalogCount     int64 `json:"catalogCount"`
	ItemsCount       int64 `json:"itemsCount"`
}

// CollectionTypeStat is one bar of the collections-by-type chart.
type CollectionTypeStat struct {
	CollectionType string `json:"collectionType"`
	Count          int64  `json:"count"`
}

// CountryStat is one bar of the collectors-by-country chart.
type CountryStat struct {
	Country        string `json:"country"`
	CollectorCount int64  `json:"collectorCount"`
}

// TopCollector is one row of the most-active-collectors report table.
type TopCollector struct {
	Surname          string `json:"surname"`
	Name             string `json:"name"`
	CollectionsCount int64  `json:"collectionsCount"`
}

// SummaryReport is the data contract handed to the spreadsheet exporter.
type SummaryReport struct {
	Totals            Statistics           `json:"totals"`
	RecentCollections int64                `json:"recentCollections"` // created in the last 30 days
	ActiveCollectors  int64                `json:"activeCollectors"`  // collectors owning at least one collection
	ByType            []CollectionTypeStat `json:"byType"`
	ByCountry         []CountryStat        `json:"byCountry"`
	TopCollectors     []TopCollector       `json:"topCollectors"`
}
