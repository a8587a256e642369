package postgres

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/config"
	"github.com/LerianStudio/lib-pgmanager/pgmanager/log"
	"github.com/LerianStudio/lib-pgmanager/pgmanager/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// defaultLogOutput receives diagnostics when Config.Logger is nil.
var defaultLogOutput io.Writer = os.Stdout

// Config holds the collaborators of a Manager. Every field is optional.
type Config struct {
	// Logger receives lifecycle diagnostics. Defaults to info-level status
	// lines on stdout.
	Logger log.Logger
	// TracerProvider defaults to the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider
	// MeterProvider defaults to the global OpenTelemetry provider.
	MeterProvider metric.MeterProvider
	// Dialer opens the connection. Defaults to pgx.Connect.
	Dialer Dialer
}

// Manager owns at most one PostgreSQL connection and at most one cursor.
//
// Manager is not safe for concurrent use.
type Manager struct {
	logger    log.Logger
	telemetry *telemetry
	dial      Dialer
	sessionID string

	state   State
	conn    Conn
	cursor  *Cursor
	section config.Section
}

// New builds an Unconnected Manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewGoLogger(defaultLogOutput, log.LevelInfo)
	}

	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}

	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}

	if cfg.Dialer == nil {
		cfg.Dialer = dialPgx
	}

	sessionID := uuid.NewString()

	tel, err := newTelemetry(cfg.TracerProvider, cfg.MeterProvider, sessionID)
	if err != nil {
		return nil, err
	}

	return &Manager{
		logger:    cfg.Logger.With(log.String("component", "postgres"), log.String("session_id", sessionID)),
		telemetry: tel,
		dial:      cfg.Dialer,
		sessionID: sessionID,
		state:     StateUnconnected,
	}, nil
}

// SessionID identifies this Manager in logs and spans.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Section returns the parameters of the current connection. It is empty
// unless the Manager is connected.
func (m *Manager) Section() config.Section {
	return m.section
}

// Connect loads the named section from the INI file at configPath and opens
// a connection with exactly its parameters.
//
// Invalid input, an unreadable file or a missing section return a
// *ConfigurationError and leave the Manager Unconnected.
func (m *Manager) Connect(ctx context.Context, configPath, sectionName string) error {
	if ctx == nil {
		return ErrNilContext
	}

	if err := m.checkConnectable(); err != nil {
		return err
	}

	section, err := config.LoadSection(configPath, sectionName)
	if err != nil {
		m.logger.Log(ctx, log.LevelWarn, "postgres configuration rejected",
			log.String("config_path", configPath),
			log.String("section", sectionName),
			log.Err(err),
		)

		return &ConfigurationError{Path: configPath, Section: sectionName, Err: err}
	}

	return m.connect(ctx, configPath, section)
}

// ConnectSection opens a connection with the parameters of an already
// loaded section.
func (m *Manager) ConnectSection(ctx context.Context, section config.Section) error {
	if ctx == nil {
		return ErrNilContext
	}

	if err := m.checkConnectable(); err != nil {
		return err
	}

	return m.connect(ctx, "", section)
}

func (m *Manager) checkConnectable() error {
	switch m.state {
	case StateClosed:
		return ErrManagerClosed
	case StateConnected, StateCursorOpen:
		return ErrAlreadyConnected
	default:
		return nil
	}
}

func (m *Manager) connect(ctx context.Context, configPath string, section config.Section) error {
	params := section.Params()

	connString, err := ConnString(params)
	if err != nil {
		return &ConfigurationError{Path: configPath, Section: section.Name(), Err: err}
	}

	dbName, _ := section.Get("dbname")
	host, _ := section.Get("host")

	ctx, span := m.telemetry.start(ctx, spanConnect,
		attribute.String("db.namespace", dbName),
		attribute.String("server.address", host),
	)
	defer span.End()

	m.logger.Log(ctx, log.LevelInfo, "connecting to postgres",
		log.String("section", section.Name()),
		log.String("conn_string", RedactedConnString(params)),
	)

	conn, err := m.dial(ctx, connString)
	if err != nil {
		connErr := &ConnectionError{Err: err}

		opentelemetry.HandleSpanError(span, "failed to connect to postgres", connErr)
		m.logger.Log(ctx, log.LevelError, "failed to connect to postgres",
			log.String("section", section.Name()),
			log.String("error", connErr.Error()),
		)

		return connErr
	}

	m.conn = conn
	m.section = section
	m.state = StateConnected

	m.logger.Log(ctx, log.LevelInfo, "connected to postgres", log.String("section", section.Name()))

	return nil
}

// Cursor returns the open cursor, creating one when none exists or the
// previous one was closed. It returns nil when the Manager is not connected.
func (m *Manager) Cursor() *Cursor {
	if m.conn == nil || m.state == StateClosed {
		return nil
	}

	if m.cursor != nil && !m.cursor.Closed() {
		return m.cursor
	}

	var cursor *Cursor

	cursor = newCursor(m.conn, func() {
		if m.cursor == cursor && m.state == StateCursorOpen {
			m.state = StateConnected
		}
	})

	m.cursor = cursor
	m.state = StateCursorOpen

	return cursor
}

// ExecuteSQL runs sql verbatim through the cursor and returns the first row,
// or nil when the statement yields no rows.
//
// The statement is not parameterized or escaped; callers own its safety.
func (m *Manager) ExecuteSQL(ctx context.Context, sql string) (Row, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	cursor := m.Cursor()
	if cursor == nil {
		if m.state == StateClosed {
			return nil, &ExecutionError{Err: ErrManagerClosed}
		}

		return nil, &ExecutionError{Err: ErrNotConnected}
	}

	operation := operationName(sql)

	ctx, span := m.telemetry.start(ctx, spanExecute, attribute.String("db.operation.name", operation))
	defer span.End()

	started := time.Now()
	row, err := cursor.Execute(ctx, sql)
	m.telemetry.recordStatement(ctx, operation, started, err)

	if err != nil {
		execErr := &ExecutionError{Err: err}

		opentelemetry.HandleSpanError(span, "failed to execute statement", execErr)
		m.logger.Log(ctx, log.LevelError, "failed to execute statement",
			log.String("operation", operation),
			log.String("error", execErr.Error()),
		)

		return nil, execErr
	}

	span.SetAttributes(
		attribute.Bool("pgmanager.row_returned", row != nil),
		attribute.Int64("db.response.rows_affected", cursor.RowsAffected()),
	)

	if row != nil {
		opentelemetry.HandleSpanEvent(span, "record.fetched", attribute.Int("db.response.columns", len(row)))
	}

	if m.logger.Enabled(log.LevelDebug) {
		m.logger.Log(ctx, log.LevelDebug, "record fetched",
			log.Any("columns", cursor.Columns()),
			log.Any("record", []any(row)),
		)
	}

	m.logger.Log(ctx, log.LevelInfo, "statement executed",
		log.String("operation", operation),
		log.Bool("row_returned", row != nil),
		log.Int64("rows_affected", cursor.RowsAffected()),
		log.Duration("elapsed", time.Since(started)),
	)

	return row, nil
}

// Close closes the cursor, then the connection, and moves the Manager to
// Closed. It never fails when nothing was opened and is idempotent. A nil
// ctx is replaced by context.Background so cleanup always runs.
func (m *Manager) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if m.state == StateClosed {
		return nil
	}

	if m.cursor != nil {
		m.cursor.onClose = nil
		_ = m.cursor.Close()
		m.cursor = nil
	}

	var errs []error

	if m.conn != nil {
		var span trace.Span

		ctx, span = m.telemetry.start(ctx, spanClose)

		if err := m.conn.Close(ctx); err != nil {
			connErr := &ConnectionError{Err: err}
			opentelemetry.HandleSpanError(span, "failed to close postgres connection", connErr)
			errs = append(errs, connErr)
		}

		span.End()

		m.conn = nil
	}

	m.section = config.Section{}
	m.state = StateClosed

	if err := errors.Join(errs...); err != nil {
		m.logger.Log(ctx, log.LevelWarn, "postgres connection closed with errors", log.String("error", err.Error()))
		return err
	}

	m.logger.Log(ctx, log.LevelInfo, "closed postgres connection")

	return nil
}
