package store

import (
	"context"

	"github.com/dnikolaeva/collectdesk/internal/types"
)

// Single-statement inserts and updates run on the shared autocommit pool.
// Row destruction never happens here: deletes of collectors, collections and
// catalog items go through the cascade transactions in cascade.go.

// AddCollector inserts a collector and returns the generated id.
func (s *Store) AddCollector(ctx context.Context, data types.CollectorData) (int64, error) {
	return s.insertReturningID(ctx, `
		INSERT INTO collector (surname, name, patronymic, email, id_country, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		data.Surname, data.Name, data.Patronymic, data.Email, data.IDCountry, data.Description)
}

// UpdateCollector rewrites all editable fields of a collector.
func (s *Store) UpdateCollector(ctx context.Context, collectorID int64, data types.CollectorData) (int64, error) {
	return s.Exec(ctx, `
		UPDATE collector
		SET surname = $1, name = $2, patronymic = $3, email = $4, id_country = $5, description = $6
		WHERE id = $7`,
		data.Surname, data.Name, data.Patronymic, data.Email, data.IDCountry, data.Description, collectorID)
}

// AddCollection inserts a collection and returns the generated id. A missing
// collection type falls back to the first lookup row.
func (s *Store) AddCollection(ctx context.Context, data types.CollectionData) (int64, error) {
	typeID := data.IDCollectionType
	if typeID == nil {
		fallback := int64(1)
		typeID = &fallback
	}
	return s.insertReturningID(ctx, `
		INSERT INTO collection (name, author, id_collection_type, date_of_creation, number_of_items, description)
		VALUES ($1, $2, $3, NULLIF($4, '')::date, $5, $6)
		RETURNING id`,
		data.Name, data.Author, typeID, data.DateOfCreation, data.NumberOfItems, data.Description)
}

// UpdateCollection rewrites all editable fields of a collection.
func (s *Store) UpdateCollection(ctx context.Context, collectionID int64, data types.CollectionData) (int64, error) {
	return s.Exec(ctx, `
		UPDATE collection
		SET name = $1, author = $2, id_collection_type = $3,
		    date_of_creation = NULLIF($4, '')::date, number_of_items = $5, description = $6
		WHERE id = $7`,
		data.Name, data.Author, data.IDCollectionType, data.DateOfCreation,
		data.NumberOfItems, data.Description, collectionID)
}

// AddCatalogItem inserts a catalog item and returns the generated id. A
// missing country falls back to the first lookup row.
func (s *Store) AddCatalogItem(ctx context.Context, data types.CatalogItemData) (int64, error) {
	countryID := data.IDCountry
	if countryID == nil {
		fallback := int64(1)
		countryID = &fallback
	}
	return s.insertReturningID(ctx, `
		INSERT INTO catalog (name, rare, id_country, release_date, description)
		VALUES ($1, $2, $3, NULLIF($4, '')::date, $5)
		RETURNING id`,
		data.Name, data.Rare, countryID, data.ReleaseDate, data.Description)
}

// UpdateCatalogItem rewrites all editable fields of a catalog item.
func (s *Store) UpdateCatalogItem(ctx context.Context, itemID int64, data types.CatalogItemData) (int64, error) {
	return s.Exec(ctx, `
		UPDATE catalog
		SET name = $1, rare = $2, id_country = $3,
		    release_date = NULLIF($4, '')::date, description = $5
		WHERE id = $6`,
		data.Name, data.Rare, data.IDCountry, data.ReleaseDate, data.Description, itemID)
}

// AddCollectionItem links a catalog entry into a collection.
func (s *Store) AddCollectionItem(ctx context.Context, item types.CollectionItem) (int64, error) {
	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	return s.insertReturningID(ctx, `
		INSERT INTO collection_item (id_collection, id_catalog, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`,
		item.IDCollection, item.IDCatalog, quantity)
}
