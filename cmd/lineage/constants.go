package main

// Default limits for CLI commands.
const (
	DefaultListLimit   = 50
	DefaultSearchLimit = 20
	// DefaultHistoryLimit caps the audit entries shown by members show.
	DefaultHistoryLimit = 10
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
