package postgres

import (
	"context"
	"errors"
)

// WithManager connects a new Manager to the named section, hands it to fn and
// always closes it afterwards, including when fn fails or panics. Close
// errors are joined with the error returned by fn.
func WithManager(
	ctx context.Context,
	cfg Config,
	configPath, sectionName string,
	fn func(ctx context.Context, m *Manager) error,
) (err error) {
	if ctx == nil {
		return ErrNilContext
	}

	m, err := New(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := m.Close(context.WithoutCancel(ctx)); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if err := m.Connect(ctx, configPath, sectionName); err != nil {
		return err
	}

	return fn(ctx, m)
}
