package core

import (
	"context"
	"database/sql"
)

// DBExecutor is the statement-execution surface shared by *sqlx.DB and
// *sqlx.Tx; repositories accept it wherever a query may run either directly
// or inside a transaction they own.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
