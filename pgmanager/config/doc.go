// Package config loads PostgreSQL connection parameters from a named section
// of an INI file.
//
// Parameters keep file order. Keys are lowercased, keys from the [DEFAULT]
// section are inherited by every section, and %(name)s references are
// interpolated. Values are kept as written, including surrounding quotes and
// trailing backslashes. A parameter before the first section header is an
// error. Values are never allow-listed: every key is handed to the driver
// verbatim.
package config
