// Package format presents availability slots to people.
//
// Slots are grouped by day in the output zone. Zones of the Americas read on
// a 12-hour clock ("09:00 am"), all others on a 24-hour clock. Text, HTML,
// JSON and YAML renderers are available through New.
package format
