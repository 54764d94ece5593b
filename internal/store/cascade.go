package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dnikolaeva/collectdesk/internal/debug"
)

// The three cascade deletes are the only multi-statement transactions in the
// application. Each one deliberately bypasses the shared pool and opens a
// dedicated connection: mixing a multi-statement transaction with pooled
// autocommit connections would risk statement interleaving from unrelated
// callers. The schema declares no ON DELETE CASCADE, so dependency rows are
// removed here, depth-first, before the row they depend on.

// DeleteCollector removes a collector together with all of its collections
// and their collection items, atomically.
func (s *Store) DeleteCollector(ctx context.Context, collectorID int64) error {
	return s.runCascade(ctx, "collector", collectorID, deleteCollectorTx)
}

// DeleteCollection removes a collection together with its collection items,
// atomically.
func (s *Store) DeleteCollection(ctx context.Context, collectionID int64) error {
	return s.runCascade(ctx, "collection", collectionID, deleteCollectionTx)
}

// DeleteCatalogItem removes a catalog item together with every
// collection_item row referencing it, atomically.
func (s *Store) DeleteCatalogItem(ctx context.Context, itemID int64) error {
	return s.runCascade(ctx, "catalog_item", itemID, deleteCatalogItemTx)
}

// runCascade opens a dedicated connection, wraps fn in a transaction and
// guarantees commit-or-rollback plus connection close on every path. A
// connect failure aborts before any transaction exists, so there is nothing
// to roll back.
func (s *Store) runCascade(ctx context.Context, entity string, id int64, fn func(context.Context, pgx.Tx, int64) error) error {
	conn, err := pgx.Connect(ctx, s.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open delete connection: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}

	if err := fn(ctx, tx, id); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			debug.LogTransaction("rollback failed", map[string]interface{}{
				"entity": entity, "id": id, "error": rbErr.Error(),
			})
		}
		debug.LogTransaction("cascade delete rolled back", map[string]interface{}{
			"entity": entity, "id": id, "error": err.Error(),
		})
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}
	debug.LogTransaction("cascade delete committed", map[string]interface{}{
		"entity": entity, "id": id,
	})
	return nil
}

// deleteCollectorTx unwinds the deepest dependency chain: collection items
// under each of the collector's collections, then the collections, then the
// collector row itself.
func deleteCollectorTx(ctx context.Context, tx pgx.Tx, collectorID int64) error {
	rows, err := tx.Query(ctx, `SELECT id FROM collection WHERE author = $1`, collectorID)
	if err != nil {
		return fmt.Errorf("scan dependent collections: %w", err)
	}
	var collectionIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan collection id: %w", err)
		}
		collectionIDs = append(collectionIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan dependent collections: %w", err)
	}

	for _, collectionID := range collectionIDs {
		if _, err := tx.Exec(ctx, `DELETE FROM collection_item WHERE id_collection = $1`, collectionID); err != nil {
			return fmt.Errorf("delete items of collection %d: %w", collectionID, err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM collection WHERE author = $1`, collectorID); err != nil {
		return fmt.Errorf("delete collections of collector %d: %w", collectorID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM collector WHERE id = $1`, collectorID); err != nil {
		return fmt.Errorf("delete collector %d: %w", collectorID, err)
	}
	return nil
}

// deleteCollectionTx counts dependent collection items and removes them in
// one statement before the collection row. A zero count skips the dependency
// delete entirely.
func deleteCollectionTx(ctx context.Context, tx pgx.Tx, collectionID int64) error {
	var count int64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM collection_item WHERE id_collection = $1`, collectionID).
		Scan(&count)
	if err != nil {
		return fmt.Errorf("count dependent items: %w", err)
	}

	if count > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM collection_item WHERE id_collection = $1`, collectionID); err != nil {
			return fmt.Errorf("delete dependent items: %w", err)
		}
		debug.LogTransaction("deleted dependent collection items", map[string]interface{}{
			"collection": collectionID, "count": count,
		})
	}

	if _, err := tx.Exec(ctx, `DELETE FROM collection WHERE id = $1`, collectionID); err != nil {
		return fmt.Errorf("delete collection %d: %w", collectionID, err)
	}
	return nil
}

// deleteCatalogItemTx mirrors deleteCollectionTx for the catalog side of the
// collection_item join table.
func deleteCatalogItemTx(ctx context.Context, tx pgx.Tx, itemID int64) error {
	var count int64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM collection_item WHERE id_catalog = $1`, itemID).
		Scan(&count)
	if err != nil {
		return fmt.Errorf("count dependent items: %w", err)
	}

	if count > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM collection_item WHERE id_catalog = $1`, itemID); err != nil {
			return fmt.Errorf("delete dependent items: %w", err)
		}
		debug.LogTransaction("deleted dependent collection items", map[string]interface{}{
			"catalog_item": itemID, "count": count,
		})
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("delete catalog item %d: %w", itemID, err)
	}
	return nil
}
