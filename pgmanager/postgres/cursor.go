package postgres

import (
	"context"
)

// Row is the first row of a result set, one value per column.
type Row []any

// Cursor executes statements on the Manager's connection and remembers the
// shape of the last result. It never outlives that connection: closing the
// Manager closes the cursor first.
type Cursor struct {
	conn         Conn
	closed       bool
	columns      []string
	rowsAffected int64
	onClose      func()
}

func newCursor(conn Conn, onClose func()) *Cursor {
	return &Cursor{conn: conn, onClose: onClose}
}

// Execute runs sql verbatim and returns its first row, or nil when the
// statement yields no rows. Remaining rows are discarded.
func (c *Cursor) Execute(ctx context.Context, sql string) (Row, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	if c.Closed() {
		return nil, ErrCursorClosed
	}

	rows, err := c.conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var row Row

	if rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row = Row(values)
	}

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))

	for i, f := range fields {
		columns[i] = f.Name
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	c.columns = columns
	c.rowsAffected = rows.CommandTag().RowsAffected()

	return row, nil
}

// Columns returns the column names of the last successful statement.
func (c *Cursor) Columns() []string {
	if c == nil {
		return nil
	}

	out := make([]string, len(c.columns))
	copy(out, c.columns)

	return out
}

// RowsAffected returns the row count reported by the last successful statement.
func (c *Cursor) RowsAffected() int64 {
	if c == nil {
		return 0
	}

	return c.rowsAffected
}

// Closed reports whether the cursor can no longer execute statements.
func (c *Cursor) Closed() bool {
	return c == nil || c.closed
}

// Close releases the cursor. The connection stays open; the next
// Manager.Cursor call creates a fresh cursor. Close is idempotent.
func (c *Cursor) Close() error {
	if c.Closed() {
		return nil
	}

	c.closed = true
	c.conn = nil

	if c.onClose != nil {
		c.onClose()
	}

	return nil
}
