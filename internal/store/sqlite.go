package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		starts_at   TEXT NOT NULL,
		ends_at     TEXT,
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		exported_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_records_starts ON records(starts_at);
	CREATE INDEX IF NOT EXISTS idx_records_exported ON records(exported_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add stages a record. The record is stored verbatim as tagged JSON so
// unknown item variants survive a round trip through the inbox.
func (s *SQLiteStore) Add(ctx context.Context, rec model.Record) (*StagedRecord, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	now := time.Now().UTC()
	staged := &StagedRecord{
		ID:        s.newID(),
		Title:     rec.Title,
		StartsAt:  rec.Start,
		EndsAt:    rec.End,
		Payload:   string(payload),
		CreatedAt: now,
	}

	var endsAt *string
	if rec.End != nil {
		v := rec.End.Format(time.RFC3339Nano)
		endsAt = &v
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, title, starts_at, ends_at, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		staged.ID, staged.Title, rec.Start.Format(time.RFC3339Nano), endsAt,
		staged.Payload, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return staged, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*StagedRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, starts_at, ends_at, payload, created_at, exported_at
		 FROM records WHERE id = ?`, id)
	staged, err := scanStaged(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return staged, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]StagedRecord, error) {
	query := `SELECT id, title, starts_at, ends_at, payload, created_at, exported_at FROM records`
	if !p.All {
		query += ` WHERE exported_at IS NULL`
	}
	query += ` ORDER BY starts_at, created_at`
	if p.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StagedRecord
	for rows.Next() {
		staged, err := scanStaged(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *staged)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("record not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) MarkExported(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE records SET exported_at = ? WHERE id IN (`+placeholders+`)`, args...)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStaged(row scanner) (*StagedRecord, error) {
	var staged StagedRecord
	var startsAt, createdAt string
	var endsAt, exportedAt *string

	if err := row.Scan(&staged.ID, &staged.Title, &startsAt, &endsAt,
		&staged.Payload, &createdAt, &exportedAt); err != nil {
		return nil, err
	}

	var err error
	if staged.StartsAt, err = time.Parse(time.RFC3339Nano, startsAt); err != nil {
		return nil, fmt.Errorf("parse starts_at: %w", err)
	}
	if staged.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if endsAt != nil {
		t, err := time.Parse(time.RFC3339Nano, *endsAt)
		if err != nil {
			return nil, fmt.Errorf("parse ends_at: %w", err)
		}
		staged.EndsAt = &t
	}
	if exportedAt != nil {
		t, err := time.Parse(time.RFC3339Nano, *exportedAt)
		if err != nil {
			return nil, fmt.Errorf("parse exported_at: %w", err)
		}
		staged.ExportedAt = &t
	}
	return &staged, nil
}
