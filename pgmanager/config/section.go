package config

import (
	"slices"
	"strings"
)

// Param is a single connection parameter.
type Param struct {
	Key   string
	Value string
}

// Section is the ordered, read-only parameter set of one INI section.
type Section struct {
	name   string
	params []Param
}

// NewSection builds a Section from params. Keys are lowercased and a repeated
// key replaces the earlier value in place.
func NewSection(name string, params ...Param) Section {
	s := Section{name: name}

	for _, p := range params {
		s.set(p.Key, p.Value)
	}

	return s
}

// Name returns the section name.
func (s Section) Name() string {
	return s.name
}

// Len returns the number of parameters.
func (s Section) Len() int {
	return len(s.params)
}

// Params returns a copy of the parameters in file order.
func (s Section) Params() []Param {
	return slices.Clone(s.params)
}

// Keys returns the parameter keys in file order.
func (s Section) Keys() []string {
	keys := make([]string, len(s.params))
	for i, p := range s.params {
		keys[i] = p.Key
	}

	return keys
}

// Get returns the value stored under key.
func (s Section) Get(key string) (string, bool) {
	key = normalizeKey(key)

	for _, p := range s.params {
		if p.Key == key {
			return p.Value, true
		}
	}

	return "", false
}

// Map returns the parameters as a map. Ordering is lost.
func (s Section) Map() map[string]string {
	m := make(map[string]string, len(s.params))
	for _, p := range s.params {
		m[p.Key] = p.Value
	}

	return m
}

func (s *Section) set(key, value string) {
	key = normalizeKey(key)

	for i := range s.params {
		if s.params[i].Key == key {
			s.params[i].Value = value
			return
		}
	}

	s.params = append(s.params, Param{Key: key, Value: value})
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
