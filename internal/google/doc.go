// Package google manages OAuth2 tokens for read-only Google Calendar access.
//
// Tokens are stored per named account as JSON files in the user cache
// directory and refreshed transparently through the TokenProvider.
package google
