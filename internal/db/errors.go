package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrKeyExists     = errors.New("db: key already exists")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants name the failing engine operation for error context.
const (
	OpCreateIndex = "create_index"
	OpDropIndex   = "drop_index"
	OpIndexInfo   = "index_info"
	OpPut         = "put"
	OpGet         = "get"
	OpDelete      = "delete"
	OpExists      = "exists"
	OpSearch      = "search"
	OpList        = "list"
	OpCount       = "count"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
