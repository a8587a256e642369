//go:build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSectionReplacesRepeatedKeysInPlace(t *testing.T) {
	section := NewSection("postgresql",
		Param{Key: "host", Value: "a"},
		Param{Key: "Port", Value: "5432"},
		Param{Key: "HOST", Value: "b"},
	)

	assert.Equal(t, []string{"host", "port"}, section.Keys())
	assert.Equal(t, map[string]string{"host": "b", "port": "5432"}, section.Map())
}

func TestSectionParamsReturnsCopy(t *testing.T) {
	section := NewSection("postgresql", Param{Key: "host", Value: "localhost"})

	params := section.Params()
	params[0].Value = "mutated"

	value, ok := section.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "localhost", value)
}

func TestSectionGetMissingKey(t *testing.T) {
	section := NewSection("postgresql")

	value, ok := section.Get("host")
	assert.False(t, ok)
	assert.Empty(t, value)
}
