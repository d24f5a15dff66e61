// Package sqlite provides the SQLite-backed transaction history.
package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"walletlink/internal/domain"
	"walletlink/internal/store/sqlite/migrations"
)

// ErrAlreadyExists indicates a record with the same id was already appended.
var ErrAlreadyExists = errors.New("record already exists")

// Store persists transaction records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite history store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping sqlite db")
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "run migrations")
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

// AppendTransaction inserts one record. Records are immutable once written.
func (s *Store) AppendTransaction(ctx context.Context, rec domain.TransactionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return errors.New("transaction id is required")
	}
	createdAt := rec.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO transactions (
		   id,
		   lamports,
		   recipient,
		   success,
		   created_at,
		   method,
		   duration_ms,
		   signature,
		   reason
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		int64(rec.Lamports),
		rec.Recipient,
		boolToInt(rec.Success),
		toMillis(createdAt),
		string(rec.Method),
		rec.Duration.Milliseconds(),
		rec.Signature,
		rec.Reason,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return errors.Wrap(err, "append transaction")
	}
	return nil
}

// ListTransactions returns up to limit records, newest first. A limit of zero
// or less returns every record.
func (s *Store) ListTransactions(ctx context.Context, limit int) ([]domain.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, lamports, recipient, success, created_at, method, duration_ms, signature, reason
		 FROM transactions
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	defer rows.Close()

	var out []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		var lamports int64
		var success int
		var createdAt int64
		var durationMS int64
		var method string
		if err := rows.Scan(
			&rec.ID,
			&lamports,
			&rec.Recipient,
			&success,
			&createdAt,
			&method,
			&durationMS,
			&rec.Signature,
			&rec.Reason,
		); err != nil {
			return nil, errors.Wrap(err, "list transactions")
		}
		rec.Lamports = uint64(lamports)
		rec.Success = success != 0
		rec.Timestamp = fromMillis(createdAt)
		rec.Method = domain.ConnectionMethod(method)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "transactions.id")
}

var _ domain.HistoryStore = (*Store)(nil)
