// Package common provides shared helpers for the MCP tool packages:
// account selection, argument parsing and the instrumentation wrapper that
// every tool handler is registered through.
package common
