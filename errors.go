package blogdex

import "github.com/kailas-cloud/blogdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrValidation    = domain.ErrValidation
)

// ValidationError lists every invalid field of a rejected blog or search.
// Use errors.As() to inspect it.
type ValidationError = domain.ValidationError

// FieldViolation describes one invalid field.
type FieldViolation = domain.FieldViolation
