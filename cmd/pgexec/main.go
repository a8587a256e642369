// Command pgexec runs one SQL statement against the database described by an
// INI section and prints the first row of its result.
//
//	pgexec --config database.ini --section postgresql "SELECT 1"
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/log"
	"github.com/LerianStudio/lib-pgmanager/pgmanager/postgres"
	pzap "github.com/LerianStudio/lib-pgmanager/pgmanager/zap"
)

const noRows = "(no rows)"

var errEmptyStatement = errors.New("sql statement must not be empty")

type options struct {
	configPath string
	section    string
	logLevel   string
	logFormat  string
	timeout    time.Duration
	quiet      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, nil).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand wires the CLI. A nil dialer connects with pgx.
func newRootCommand(stdout io.Writer, dialer postgres.Dialer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "pgexec [flags] SQL",
		Short:         "Execute one SQL statement and print the first row",
		Long:          `pgexec reads connection parameters from a section of an INI file, executes a single statement and prints the first row of the result, tab separated. Statements that return no rows print "(no rows)".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), stdout, cmd.ErrOrStderr(), dialer, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "database.ini", "INI file holding the connection parameters")
	cmd.Flags().StringVarP(&opts.section, "section", "s", "postgresql", "INI section to connect with")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", pzap.EncodingConsole, "Log encoding (json or console)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Discard diagnostics; only the row and errors are printed")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort connect and execution after this duration (0 disables)")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, dialer postgres.Dialer, opts *options, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return errEmptyStatement
	}

	logger, err := newLogger(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	defer func() { _ = logger.Sync(context.WithoutCancel(ctx)) }()

	if opts.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	cfg := postgres.Config{Logger: logger, Dialer: dialer}

	err = postgres.WithManager(ctx, cfg, opts.configPath, opts.section, func(ctx context.Context, m *postgres.Manager) error {
		row, err := m.ExecuteSQL(ctx, sql)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(stdout, formatRow(row))

		return err
	})
	if err != nil {
		log.SafeError(logger, ctx, "pgexec failed", err, false)
		fmt.Fprintln(stderr, "pgexec:", err)

		return err
	}

	return nil
}

func newLogger(opts *options) (log.Logger, error) {
	if opts.quiet {
		return log.NewNop(), nil
	}

	return pzap.New(pzap.Config{
		Environment: pzap.EnvironmentProduction,
		Level:       opts.logLevel,
		Encoding:    opts.logFormat,
	})
}

func formatRow(row postgres.Row) string {
	if row == nil {
		return noRows
	}

	cols := make([]string, len(row))

	for i, v := range row {
		if v == nil {
			cols[i] = "NULL"
			continue
		}

		cols[i] = fmt.Sprint(v)
	}

	return strings.Join(cols, "\t")
}
