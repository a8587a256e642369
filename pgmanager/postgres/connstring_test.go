//go:build unit

package postgres

import (
	"testing"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioParams() []config.Param {
	return []config.Param{
		{Key: "host", Value: "localhost"},
		{Key: "port", Value: "5432"},
		{Key: "dbname", Value: "testdb"},
		{Key: "user", Value: "alice"},
		{Key: "password", Value: "secret"},
	}
}

func TestConnString(t *testing.T) {
	got, err := ConnString(scenarioParams())

	require.NoError(t, err)
	assert.Equal(t, scenarioConnString, got)
}

func TestConnStringEmpty(t *testing.T) {
	got, err := ConnString(nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConnStringQuoting(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain", value: "alice", want: "k=alice"},
		{name: "symbols stay bare", value: "p@ss;w#rd=1", want: "k=p@ss;w#rd=1"},
		{name: "empty", value: "", want: "k=''"},
		{name: "space", value: "my app", want: "k='my app'"},
		{name: "tab", value: "a\tb", want: "k='a\tb'"},
		{name: "single quote", value: "it's", want: `k='it\'s'`},
		{name: "backslash", value: `C:\certs`, want: `k='C:\\certs'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConnString([]config.Param{{Key: "k", Value: tt.value}})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnStringRejectsInvalidKeys(t *testing.T) {
	for _, key := range []string{"", "bad key", "a=b", "it's", `back\slash`, "tab\tkey"} {
		t.Run(key, func(t *testing.T) {
			_, err := ConnString([]config.Param{{Key: key, Value: "x"}})

			assert.ErrorIs(t, err, ErrInvalidParameterKey)
		})
	}
}

func TestRedactedConnString(t *testing.T) {
	params := append(scenarioParams(), config.Param{Key: "sslpassword", Value: "key pass"})

	got := RedactedConnString(params)

	assert.Equal(t, "host=localhost port=5432 dbname=testdb user=alice password=*** sslpassword=***", got)
	assert.NotContains(t, got, "secret")
}
