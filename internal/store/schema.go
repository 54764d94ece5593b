package store

import (
	"context"
	"fmt"
)

// The schema declares plain foreign keys without ON DELETE CASCADE: the
// application alone is responsible for dependency-order deletion.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS country (
		id BIGSERIAL PRIMARY KEY,
		country TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS collection_type (
		id BIGSERIAL PRIMARY KEY,
		collection_type TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS collector (
		id BIGSERIAL PRIMARY KEY,
		surname TEXT NOT NULL,
		name TEXT NOT NULL,
		patronymic TEXT,
		email TEXT,
		id_country BIGINT REFERENCES country(id),
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS collection (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		author BIGINT NOT NULL REFERENCES collector(id),
		id_collection_type BIGINT REFERENCES collection_type(id),
		date_of_creation DATE,
		number_of_items BIGINT DEFAULT 0,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS catalog (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		rare TEXT,
		id_country BIGINT REFERENCES country(id),
		release_date DATE,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS collection_item (
		id BIGSERIAL PRIMARY KEY,
		id_collection BIGINT NOT NULL REFERENCES collection(id),
		id_catalog BIGINT NOT NULL REFERENCES catalog(id),
		quantity BIGINT DEFAULT 1
	)`,
}

var seedCountries = []string{
	"Russia", "United States", "Germany", "France",
	"United Kingdom", "Italy", "Japan", "China",
}

var seedCollectionTypes = []string{
	"Stamps", "Coins", "Banknotes", "Postcards",
	"Badges", "Books", "Art", "Other",
}

// Migrate creates the six application tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	pool, err := s.acquirePool()
	if err != nil {
		return err
	}
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Seed fills the lookup tables. Existing rows are left untouched.
func (s *Store) Seed(ctx context.Context) error {
	pool, err := s.acquirePool()
	if err != nil {
		return err
	}
	for _, country := range seedCountries {
		if _, err := pool.Exec(ctx,
			`INSERT INTO country (country) VALUES ($1) ON CONFLICT (country) DO NOTHING`, country); err != nil {
			return fmt.Errorf("seed country: %w", err)
		}
	}
	for _, ct := range seedCollectionTypes {
		if _, err := pool.Exec(ctx,
			`INSERT INTO collection_type (collection_type) VALUES ($1) ON CONFLICT (collection_type) DO NOTHING`, ct); err != nil {
			return fmt.Errorf("seed collection type: %w", err)
		}
	}
	return nil
}
