package main

// Default limits for CLI commands.
const (
	DefaultTopLimit    = 10
	DefaultReviewLimit = 10
	DefaultSearchLimit = 10
)

// Valid import conflict strategies.
var validConflicts = []string{"skip", "overwrite"}
