package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx operations the query layer needs. It is
// satisfied by both *pgxpool.Pool and pgx.Tx, so the same queries serve
// ad-hoc reads and transactional imports.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// TxStore runs entity queries against a DBTX. Bind it to a pgx.Tx for an
// import call, or to the pool for read-only paths.
type TxStore struct {
	db DBTX
}

// NewTxStore binds a TxStore to a DBTX.
func NewTxStore(db DBTX) *TxStore {
	return &TxStore{db: db}
}

// Ping verifies the backing connection with a trivial query.
func (s *TxStore) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRow(ctx, `SELECT 1`).Scan(&one)
}
