// Package cmd implements the command-line interface for groupavail.
//
// This package provides the following commands:
//   - find: List the time slots in which every invitee is free
//   - serve: Start the MCP server to provide tools for AI assistants
//   - auth: Store a Google OAuth token for an account
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
package cmd
