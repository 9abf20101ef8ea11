package errors

import "errors"

// ErrLogExists is returned when an audit log file would be overwritten.
// Audit logs are write-once.
var ErrLogExists = errors.New("audit log already exists")

// ErrInvalidLogName is returned for log names that are not a plain
// *.json file name inside the log directory.
var ErrInvalidLogName = errors.New("invalid audit log name")
