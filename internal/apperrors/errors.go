package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user lacks the capability required for the operation.
var ErrForbidden = errors.New("operation not permitted for this role")

// ErrUnauthorized indicates that no valid authenticated principal was supplied.
var ErrUnauthorized = errors.New("authentication required")

// ErrConflict indicates that the current status of a record does not allow the
// requested state transition.
var ErrConflict = errors.New("state transition not allowed")

// ErrMissingParameter indicates that a required query parameter was absent.
var ErrMissingParameter = errors.New("required parameter missing")

// ErrReferenced indicates that a record cannot be deleted because other
// protected records still reference it.
var ErrReferenced = errors.New("resource is referenced by other records")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
