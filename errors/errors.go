package errors

import "errors"

// ErrFileNotFound is returned when a file is not found.
var ErrFileNotFound = errors.New("file not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

// ErrConfig is returned when a required configuration value is missing,
// e.g. the internal infrastructure domain or the hosts file path.
var ErrConfig = errors.New("invalid configuration")

// ErrRuntime is returned when the custom entries file can't be used.
var ErrRuntime = errors.New("runtime error")

// ErrRoleResolution wraps any failure while querying or resolving role members.
var ErrRoleResolution = errors.New("could not add entries for roles")

// ErrSpecialEntries wraps any failure while adding appended or special entries.
var ErrSpecialEntries = errors.New("could not add special entries")

// ErrWrite wraps any failure writing the hosts file.
var ErrWrite = errors.New("could not write hosts file")
