//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const databaseINI = `
[postgresql]
host=localhost
port=5432
dbname=testdb
user=alice
password=secret

[replica]
host = replica.internal
Port = 6432
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadSectionKeepsFileOrder(t *testing.T) {
	path := writeConfig(t, databaseINI)

	section, err := LoadSection(path, "postgresql")
	require.NoError(t, err)

	assert.Equal(t, "postgresql", section.Name())
	assert.Equal(t, []Param{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: "5432"},
		{Key: "dbname", Value: "testdb"},
		{Key: "user", Value: "alice"},
		{Key: "password", Value: "secret"},
	}, section.Params())
}

func TestLoadSectionLowercasesKeysAndTrimsValues(t *testing.T) {
	path := writeConfig(t, databaseINI)

	section, err := LoadSection(path, "replica")
	require.NoError(t, err)

	assert.Equal(t, []string{"host", "port"}, section.Keys())

	port, ok := section.Get("PORT")
	require.True(t, ok)
	assert.Equal(t, "6432", port)
}

func TestLoadSectionErrors(t *testing.T) {
	path := writeConfig(t, databaseINI)

	tests := []struct {
		name    string
		path    string
		section string
		wantErr error
	}{
		{name: "empty path", path: "", section: "postgresql", wantErr: ErrEmptyConfigPath},
		{name: "blank path", path: "   ", section: "postgresql", wantErr: ErrEmptyConfigPath},
		{name: "empty section", path: path, section: "", wantErr: ErrEmptySectionName},
		{name: "missing section", path: path, section: "mysql", wantErr: ErrSectionNotFound},
		{name: "section names are case sensitive", path: path, section: "PostgreSQL", wantErr: ErrSectionNotFound},
		{name: "default is not a section", path: path, section: DefaultSectionName, wantErr: ErrSectionNotFound},
		{name: "missing file", path: filepath.Join(t.TempDir(), "absent.ini"), section: "postgresql", wantErr: ErrReadConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, err := LoadSection(tt.path, tt.section)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, section.Len())
		})
	}
}

func TestParseSectionInheritsDefaults(t *testing.T) {
	data := []byte(`
; shared by every section
[DEFAULT]
connect_timeout=5
sslmode=disable
port=5432

[postgresql]
host=localhost
port=6543
`)

	section, err := ParseSection(data, "postgresql")
	require.NoError(t, err)

	assert.Equal(t, []Param{
		{Key: "connect_timeout", Value: "5"},
		{Key: "sslmode", Value: "disable"},
		{Key: "port", Value: "6543"},
		{Key: "host", Value: "localhost"},
	}, section.Params())
}

func TestParseSectionKeepsInlineCommentCharacters(t *testing.T) {
	data := []byte(`
[postgresql]
password=p;ss#word
`)

	section, err := ParseSection(data, "postgresql")
	require.NoError(t, err)

	password, ok := section.Get("password")
	require.True(t, ok)
	assert.Equal(t, "p;ss#word", password)
}

func TestParseSectionInterpolatesReferences(t *testing.T) {
	data := []byte(`
[postgresql]
user=alice
application_name=%(user)s-cli
`)

	section, err := ParseSection(data, "postgresql")
	require.NoError(t, err)

	name, ok := section.Get("application_name")
	require.True(t, ok)
	assert.Equal(t, "alice-cli", name)
}

func TestParseSectionEmptySection(t *testing.T) {
	section, err := ParseSection([]byte("[postgresql]\n"), "postgresql")

	require.NoError(t, err)
	assert.Zero(t, section.Len())
	assert.Empty(t, section.Map())
}

func TestParseSectionRejectsParametersBeforeFirstHeader(t *testing.T) {
	data := []byte(`
# database settings
connect_timeout=5

[postgresql]
host=localhost
`)

	section, err := ParseSection(data, "postgresql")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSectionHeader)
	assert.Contains(t, err.Error(), "line 3")
	assert.Zero(t, section.Len())
}

func TestLoadSectionRejectsParametersBeforeFirstHeader(t *testing.T) {
	path := writeConfig(t, "host=localhost\n[postgresql]\nport=5432\n")

	_, err := LoadSection(path, "postgresql")

	assert.ErrorIs(t, err, ErrMissingSectionHeader)
}

func TestParseSectionKeepsTrailingBackslash(t *testing.T) {
	data := []byte("[postgresql]\npassword=abc\\\nhost=localhost\n")

	section, err := ParseSection(data, "postgresql")
	require.NoError(t, err)

	assert.Equal(t, []Param{
		{Key: "password", Value: `abc\`},
		{Key: "host", Value: "localhost"},
	}, section.Params())
}

func TestParseSectionKeepsSurroundingQuotes(t *testing.T) {
	data := []byte(`
[postgresql]
password="quoted"
application_name='cli'
`)

	section, err := ParseSection(data, "postgresql")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"password":         `"quoted"`,
		"application_name": `'cli'`,
	}, section.Map())
}
