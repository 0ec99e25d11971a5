package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBTX is what every repository method runs against: the pool for plain
// reads, or the *sqlx.Tx of the current unit of work.
type DBTX = sqlx.ExtContext

type TxManager interface {
	// Conn returns the pool for reads that need no transaction.
	Conn() DBTX
	// WithTx runs fn inside one transaction. It commits once if fn returns
	// nil and rolls back otherwise, including on panic.
	WithTx(ctx context.Context, fn func(tx DBTX) error) error
}

type sqlxTxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) TxManager {
	return &sqlxTxManager{db: db}
}

func (m *sqlxTxManager) Conn() DBTX {
	return m.db
}

func (m *sqlxTxManager) WithTx(ctx context.Context, fn func(tx DBTX) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
