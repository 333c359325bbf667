package main

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/census"
	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
	"github.com/oikos-research/friction-cli/internal/store"
)

// loadDerived parses the census extract and computes the friction fields on
// every row. Degenerate rows (s_total <= 0 or sigma >= 1) are logged and
// dropped; the count comes back with the malformed-row count so callers can
// report both.
func loadDerived() ([]model.Municipality, int, int, error) {
	records, malformed, err := census.LoadExtract(cfg.Data.ExtractPath, census.ExtractOptions{
		SkipRows: cfg.Match.SkipRows,
		Level:    cfg.Match.Level,
	})
	if err != nil {
		return nil, 0, 0, err
	}

	out := make([]model.Municipality, 0, len(records))
	degenerate := 0
	for _, m := range records {
		if err := friction.Derive(&m); err != nil {
			zap.L().Warn("dropping degenerate census row", zap.String("name", m.Name), zap.Error(err))
			degenerate++
			continue
		}
		out = append(out, m)
	}
	return out, malformed, degenerate, nil
}

// initStore opens the configured SQLite database and runs migrations.
func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// latestJoined loads the joined table of the most recent join run.
func latestJoined(ctx context.Context, st *store.SQLiteStore) ([]model.Joined, error) {
	run, err := st.LatestRun(ctx, store.RunJoin)
	if err != nil {
		return nil, eris.Wrap(err, "no join run found, run `friction-cli join` first")
	}
	return st.LoadJoined(ctx, run.ID)
}

// runParams serializes command parameters for the runs table.
func runParams(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
