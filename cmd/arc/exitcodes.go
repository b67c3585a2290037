package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (unresolvable database path, bad global config)
	ExitDataError    = 3 // Data error (validation failure, duplicate field)
	ExitStorageError = 4 // Storage error (unreadable/unwritable or malformed document)
	ExitNotFound     = 5 // Record not found
)
