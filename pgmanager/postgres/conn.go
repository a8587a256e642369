package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Conn is the slice of a pgx connection the Manager relies on.
// *pgx.Conn satisfies it, as do pgxmock connections in tests.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// Dialer opens a Conn from a keyword/value connection string.
type Dialer func(ctx context.Context, connString string) (Conn, error)

// dialPgx connects with the simple query protocol: statements are sent as
// text, may hold several commands and leave no prepared statement behind.
func dialPgx(ctx context.Context, connString string) (Conn, error) {
	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
