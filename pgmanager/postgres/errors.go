package postgres

import (
	"errors"
	"fmt"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/security"
)

var (
	ErrNilContext          = errors.New("context must not be nil")
	ErrNotConnected        = errors.New("postgres manager is not connected")
	ErrAlreadyConnected    = errors.New("postgres manager is already connected")
	ErrManagerClosed       = errors.New("postgres manager is closed")
	ErrCursorClosed        = errors.New("cursor is closed")
	ErrInvalidParameterKey = errors.New("invalid connection parameter key")
)

// ConfigurationError reports that connection parameters could not be
// resolved: empty path or section name, unreadable file, missing section or
// keys the connection string grammar cannot carry.
type ConfigurationError struct {
	Path    string
	Section string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e == nil || e.Err == nil {
		return "invalid postgres configuration"
	}

	if e.Section == "" {
		return "invalid postgres configuration: " + e.Err.Error()
	}

	return fmt.Sprintf("invalid postgres configuration for section %q: %v", e.Section, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// ConnectionError reports that the driver could not establish or release a
// session. Its message never carries credentials.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	if e == nil || e.Err == nil {
		return "postgres connection failed"
	}

	return "postgres connection failed: " + security.SanitizeText(e.Err.Error())
}

func (e *ConnectionError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// ExecutionError reports a statement that could not be executed or whose
// result could not be read.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	if e == nil || e.Err == nil {
		return "postgres statement failed"
	}

	return "postgres statement failed: " + security.SanitizeText(e.Err.Error())
}

func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}
