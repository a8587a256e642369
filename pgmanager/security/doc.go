// Package security detects credential-bearing connection parameters and
// scrubs secrets from text before it reaches logs, spans or error messages.
package security
