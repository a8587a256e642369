// Package log defines the logging interface used across lib-pgmanager and the
// typed fields attached to every event.
//
// Adapters (such as the zap package) implement Logger so the connection
// manager can emit diagnostics without depending on a concrete backend.
package log
