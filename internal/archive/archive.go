// Package archive keeps finished replays in a SQLite database.
package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/tatianab/adventure-sim/internal/models"
)

// ErrNotFound is returned when a replay id is not in the archive.
var ErrNotFound = errors.New("replay not found")

const schema = `
CREATE TABLE IF NOT EXISTS replays (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	game_data TEXT NOT NULL,
	initial_location INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS steps (
	replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	location_id INTEGER NOT NULL,
	description TEXT NOT NULL,
	command TEXT,
	PRIMARY KEY (replay_id, seq)
);`

// Summary describes an archived replay without its steps.
type Summary struct {
	ID        int64
	Name      string
	GameData  string
	Steps     int
	CreatedAt time.Time
}

// Store persists replays in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("archive path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveReplay stores r and returns its archive id.
func (s *Store) SaveReplay(ctx context.Context, r models.Replay) (int64, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO replays (name, game_data, initial_location, created_at) VALUES (?, ?, ?, ?)`,
		r.Name, r.GameData, r.InitialLocation, time.Now().UTC().UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, "insert replay")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for seq, step := range r.Steps {
		var command sql.NullString
		if seq > 0 {
			command = sql.NullString{String: step.Command, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO steps (replay_id, seq, location_id, description, command) VALUES (?, ?, ?, ?, ?)`,
			id, seq, step.LocationID, step.Description, command); err != nil {
			return 0, errors.Wrapf(err, "insert step %d", seq)
		}
	}
	return id, errors.Wrap(tx.Commit(), "commit replay")
}

// GetReplay loads the replay stored under id.
func (s *Store) GetReplay(ctx context.Context, id int64) (models.Replay, error) {
	var r models.Replay
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT name, game_data, initial_location FROM replays WHERE id = ?`, id).
		Scan(&r.Name, &r.GameData, &r.InitialLocation)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Replay{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	if err != nil {
		return models.Replay{}, errors.Wrap(err, "get replay")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT location_id, description, command FROM steps WHERE replay_id = ? ORDER BY seq`, id)
	if err != nil {
		return models.Replay{}, errors.Wrap(err, "list steps")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			step    models.Step
			command sql.NullString
		)
		if err := rows.Scan(&step.LocationID, &step.Description, &command); err != nil {
			return models.Replay{}, errors.Wrap(err, "scan step")
		}
		step.Command = command.String
		r.Steps = append(r.Steps, step)
		r.IDLog = append(r.IDLog, step.LocationID)
		if command.Valid {
			r.Commands = append(r.Commands, command.String)
		}
	}
	return r, rows.Err()
}

// ListReplays returns every archived replay, newest first.
func (s *Store) ListReplays(ctx context.Context) ([]Summary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT r.id, r.name, r.game_data, r.created_at, COUNT(st.seq)
FROM replays r LEFT JOIN steps st ON st.replay_id = r.id
GROUP BY r.id
ORDER BY r.id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list replays")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			created int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.GameData, &created, &sum.Steps); err != nil {
			return nil, errors.Wrap(err, "scan replay")
		}
		sum.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}
