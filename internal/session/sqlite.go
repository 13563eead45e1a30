package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// SQLiteStore is a Store that survives bot restarts.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and initializes
// the schema. Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	conn.SetMaxOpenConns(1)

	store := &SQLiteStore{conn: conn}
	if err := store.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		user_id INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT '',
		step INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT '',
		gender INTEGER NOT NULL DEFAULT 0,
		birth_date TEXT NOT NULL DEFAULT '',
		entry_date TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, userID int64) (Session, error) {
	query := `
	SELECT user_id, id, language, step, status, gender, birth_date, entry_date, updated_at
	FROM sessions WHERE user_id = ?
	`
	var (
		sess      Session
		step      int
		status    string
		gender    int
		updatedAt int64
	)
	err := s.conn.QueryRowContext(ctx, query, userID).Scan(
		&sess.UserID, &sess.ID, &sess.Language, &step, &status, &gender,
		&sess.BirthDate, &sess.EntryDate, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	sess.Step = Step(step)
	sess.Status = domain.StatusCode(status)
	sess.Gender = domain.Gender(gender)
	sess.UpdatedAt = time.UnixMilli(updatedAt)
	return sess, nil
}

func (s *SQLiteStore) Put(ctx context.Context, sess Session) error {
	query := `
	INSERT INTO sessions (user_id, id, language, step, status, gender, birth_date, entry_date, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		id = excluded.id,
		language = excluded.language,
		step = excluded.step,
		status = excluded.status,
		gender = excluded.gender,
		birth_date = excluded.birth_date,
		entry_date = excluded.entry_date,
		updated_at = excluded.updated_at
	`
	_, err := s.conn.ExecContext(ctx, query,
		sess.UserID,
		sess.ID,
		sess.Language,
		int(sess.Step),
		string(sess.Status),
		int(sess.Gender),
		sess.BirthDate,
		sess.EntryDate,
		sess.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, userID int64) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PurgeIdle(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return int(n), nil
}
