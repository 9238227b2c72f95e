package main

// Default limits for CLI commands.
const (
	DefaultLogLimit      = 20
	DefaultVersionsLimit = 20
	DefaultRecallLimit   = 5
)
