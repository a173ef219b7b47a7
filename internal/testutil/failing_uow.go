package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/tracksheet/internal/db"
)

// FailingUoW runs transactions against DB but makes the first write whose
// SQL contains FailOn return Err, so callers can assert that a partial save
// rolls back. Reads are never intercepted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn string
	Err    error

	mu       sync.Mutex
	Executed []string
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Statements returns the SQL of every write attempted so far, failed one
// included.
func (u *FailingUoW) Statements() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.Executed...)
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (t *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.uow.mu.Lock()
	t.uow.Executed = append(t.uow.Executed, query)
	t.uow.mu.Unlock()

	if t.uow.FailOn != "" && strings.Contains(query, t.uow.FailOn) {
		return nil, t.uow.Err
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}
