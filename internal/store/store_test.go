package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dnikolaeva/collectdesk/internal/config"
	"github.com/dnikolaeva/collectdesk/internal/core"
)

func newUnconnectedStore() *Store {
	state := core.NewAppState()
	state.SetEmitter(&core.NoopEventEmitter{})
	return New(config.Database{Host: "localhost", Port: 5432}, state)
}

func TestOperationsFailWithoutConnection(t *testing.T) {
	s := newUnconnectedStore()
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"Query", func() error { _, err := s.Query(ctx, `SELECT 1`); return err }},
		{"Exec", func() error { _, err := s.Exec(ctx, `DELETE FROM country`); return err }},
		{"Collectors", func() error { _, err := s.Collectors(ctx); return err }},
		{"Collections", func() error { _, err := s.Collections(ctx); return err }},
		{"Catalog", func() error { _, err := s.Catalog(ctx); return err }},
		{"Statistics", func() error { _, err := s.Statistics(ctx); return err }},
		{"Migrate", func() error { return s.Migrate(ctx) }},
		{"Seed", func() error { return s.Seed(ctx) }},
	}

	for _, tc := range checks {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			var notConnected *core.NotConnectedError
			if !errors.As(err, &notConnected) {
				t.Errorf("%s error = %v, want NotConnectedError", tc.name, err)
			}
		})
	}
}

func TestReadyReflectsPoolState(t *testing.T) {
	s := newUnconnectedStore()
	if s.Ready() {
		t.Error("Ready() = true before Connect")
	}
}

func TestCloseWithoutConnectionIsSafe(t *testing.T) {
	s := newUnconnectedStore()
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
