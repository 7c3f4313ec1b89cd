// Package availability_tools provides the MCP tools that search group
// availability.
//
// find_group_availability returns the free slots shared by a group of
// invitees, rendered as text, HTML, JSON or YAML. query_busy_intervals
// returns the merged busy intervals the slots are computed from.
//
// Both tools take the same search arguments. Omitted values fall back to the
// server configuration, and the configured user is always part of the group.
package availability_tools
