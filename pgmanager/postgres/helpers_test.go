//go:build unit

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pzap "github.com/LerianStudio/lib-pgmanager/pgmanager/zap"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const databaseINI = `
[postgresql]
host=localhost
port=5432
dbname=testdb
user=alice
password=secret
`

const scenarioConnString = "host=localhost port=5432 dbname=testdb user=alice password=secret"

type harness struct {
	manager     *Manager
	mock        pgxmock.PgxConnIface
	dialed      []string
	logs        *observer.ObservedLogs
	spans       *tracetest.InMemoryExporter
	metrics     *sdkmetric.ManualReader
	configPath  string
	dialErr     error
	dialContext context.Context
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	mock, err := pgxmock.NewConn(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)

	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	h := &harness{
		mock:       mock,
		logs:       logs,
		spans:      spans,
		metrics:    reader,
		configPath: writeConfig(t, databaseINI),
	}

	manager, err := New(Config{
		Logger:         pzap.Wrap(zap.New(core)),
		TracerProvider: tp,
		MeterProvider:  mp,
		Dialer:         h.dial,
	})
	require.NoError(t, err)

	h.manager = manager

	return h
}

func (h *harness) dial(ctx context.Context, connString string) (Conn, error) {
	h.dialed = append(h.dialed, connString)
	h.dialContext = ctx

	if h.dialErr != nil {
		return nil, h.dialErr
	}

	return h.mock, nil
}

func (h *harness) connect(t *testing.T) {
	t.Helper()

	require.NoError(t, h.manager.Connect(context.Background(), h.configPath, "postgresql"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
