package main

// Exit codes. Rendering problems are printed into the Markdown output and
// never change the exit code.
const (
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config file)
)
