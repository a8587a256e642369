package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	ErrEmptyConfigPath  = errors.New("config file path is required")
	ErrEmptySectionName = errors.New("config section name is required")
	ErrReadConfig       = errors.New("failed to read config file")
	ErrSectionNotFound  = errors.New("config section not found")
	// ErrMissingSectionHeader reports a key/value line before the first [section].
	ErrMissingSectionHeader = errors.New("config file contains no section header before its first parameter")
)

// DefaultSectionName holds parameters inherited by every section.
const DefaultSectionName = "DEFAULT"

var loadOptions = ini.LoadOptions{
	// Passwords may legitimately contain ';' or '#', end with '\' or be quoted.
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=:",
}

// LoadSection reads the INI file at path and returns the named section.
func LoadSection(path, name string) (Section, error) {
	if strings.TrimSpace(path) == "" {
		return Section{}, ErrEmptyConfigPath
	}

	if err := validateSectionName(name); err != nil {
		return Section{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Section{}, fmt.Errorf("%w %q: %w", ErrReadConfig, path, err)
	}

	return ParseSection(data, name)
}

// ParseSection parses INI content held in memory and returns the named section.
func ParseSection(data []byte, name string) (Section, error) {
	if err := validateSectionName(name); err != nil {
		return Section{}, err
	}

	if err := checkSectionHeader(data); err != nil {
		return Section{}, err
	}

	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return Section{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	return sectionFrom(file, name)
}

func validateSectionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptySectionName
	}

	return nil
}

// checkSectionHeader requires the first line that is neither blank nor a
// comment to open a section.
func checkSectionHeader(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())

		switch {
		case text == "", strings.HasPrefix(text, ";"), strings.HasPrefix(text, "#"):
			continue
		case strings.HasPrefix(text, "["):
			return nil
		default:
			return fmt.Errorf("%w: line %d", ErrMissingSectionHeader, line)
		}
	}

	return scanner.Err()
}

func sectionFrom(file *ini.File, name string) (Section, error) {
	// The default section is a source of inherited keys, not a section of its own.
	if name == DefaultSectionName {
		return Section{}, fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}

	raw, err := file.GetSection(name)
	if err != nil {
		return Section{}, fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}

	section := Section{name: name}

	if defaults, err := file.GetSection(DefaultSectionName); err == nil {
		for _, key := range defaults.Keys() {
			section.set(key.Name(), key.String())
		}
	}

	for _, key := range raw.Keys() {
		section.set(key.Name(), key.String())
	}

	return section, nil
}
