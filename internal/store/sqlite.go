package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/oikos-research/friction-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	params     TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS municipalities (
	run_id           TEXT NOT NULL REFERENCES runs(id),
	matched_name     TEXT NOT NULL,
	name             TEXT NOT NULL,
	match_score      INTEGER NOT NULL,
	code             INTEGER,
	s_total          INTEGER NOT NULL,
	s_occupied       INTEGER,
	s_empty          INTEGER NOT NULL,
	for_rent         INTEGER,
	for_sale         INTEGER,
	vacation         INTEGER,
	secondary        INTEGER,
	other_reason     INTEGER,
	sigma            REAL NOT NULL,
	f                REAL NOT NULL,
	share_market     REAL,
	share_tourism    REAL,
	share_system     REAL,
	population       INTEGER,
	empty_per_capita REAL,
	geom             BLOB,
	PRIMARY KEY (run_id, matched_name)
);

CREATE TABLE IF NOT EXISTS simulations (
	run_id           TEXT NOT NULL REFERENCES runs(id),
	matched_name     TEXT NOT NULL,
	sigma            REAL NOT NULL,
	sigma_new        REAL NOT NULL,
	f_new            REAL NOT NULL,
	price_change_pct REAL NOT NULL,
	archetype_base   TEXT,
	archetype_sim    TEXT,
	PRIMARY KEY (run_id, matched_name)
);

CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind, created_at);
CREATE INDEX IF NOT EXISTS idx_municipalities_sigma ON municipalities(run_id, sigma);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, kind, params string) (*Run, error) {
	if params == "" {
		params = "{}"
	}
	run := &Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, params, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Kind, run.Params, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) LatestRun(ctx context.Context, kind string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, params, created_at FROM runs WHERE kind = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		kind,
	).Scan(&run.ID, &run.Kind, &run.Params, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: no %s runs recorded", kind)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest run")
	}
	return &run, nil
}

func (s *SQLiteStore) SaveJoined(ctx context.Context, runID string, records []model.Joined) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save joined")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO municipalities (
	run_id, matched_name, name, match_score, code,
	s_total, s_occupied, s_empty, for_rent, for_sale, vacation, secondary, other_reason,
	sigma, f, share_market, share_tourism, share_system,
	population, empty_per_capita, geom
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare save joined")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, r.MatchedName, r.Name, r.MatchScore, r.Code,
			r.STotal, r.SOccupied, r.SEmpty, r.ForRent, r.ForSale, r.Vacation, r.Secondary, r.OtherReason,
			r.Sigma, r.F, r.ShareMarket, r.ShareTourism, r.ShareSystemFailure,
			r.Population, r.EmptyPerCapita, r.Geometry.EWKB,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert municipality %s", r.MatchedName)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit save joined")
}

func (s *SQLiteStore) LoadJoined(ctx context.Context, runID string) ([]model.Joined, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT matched_name, name, match_score, code,
	s_total, s_occupied, s_empty, for_rent, for_sale, vacation, secondary, other_reason,
	sigma, f, share_market, share_tourism, share_system,
	population, empty_per_capita, geom
FROM municipalities WHERE run_id = ? ORDER BY sigma DESC, matched_name`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load joined")
	}
	defer rows.Close()

	var out []model.Joined
	for rows.Next() {
		var r model.Joined
		if err := rows.Scan(
			&r.MatchedName, &r.Name, &r.MatchScore, &r.Code,
			&r.STotal, &r.SOccupied, &r.SEmpty, &r.ForRent, &r.ForSale, &r.Vacation, &r.Secondary, &r.OtherReason,
			&r.Sigma, &r.F, &r.ShareMarket, &r.ShareTourism, &r.ShareSystemFailure,
			&r.Population, &r.EmptyPerCapita, &r.Geometry.EWKB,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan municipality")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate municipalities")
	}
	if len(out) == 0 {
		return nil, eris.Errorf("sqlite: run %s has no joined records", runID)
	}
	return out, nil
}

func (s *SQLiteStore) SaveSimulations(ctx context.Context, runID string, records []model.Simulated) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save simulations")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO simulations (
	run_id, matched_name, sigma, sigma_new, f_new, price_change_pct, archetype_base, archetype_sim
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare save simulations")
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, r.MatchedName, r.Sigma, r.SigmaNew, r.FNew, r.PriceChangePct, r.ArchetypeBase, r.ArchetypeSim,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert simulation %s", r.MatchedName)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit save simulations")
}
