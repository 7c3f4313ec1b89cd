// Package logging provides structured logging utilities for groupavail.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Logger construction with level and text/JSON format
//   - PII sanitization (invitee address hashing)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "finder.search")
//	logger.Info("search completed",
//	    logging.Slots(len(slots)),
//	    logging.Status(logging.StatusSuccess))
//
// Hash invitee addresses before logging:
//
//	logger.Debug("fetching calendar",
//	    logging.Calendar(invitee))
//
// # Security Considerations
//
// Calendar owners are identified by a truncated SHA-256 of their lowercased
// address so log lines for one person correlate without exposing them.
package logging
