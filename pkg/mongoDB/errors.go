package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors for the bootstrap failure taxonomy. Classified errors
// wrap both the sentinel and the original driver error.
var (
	ErrConnectivity        = errors.New("database unreachable")
	ErrPermission          = errors.New("permission denied")
	ErrConstraintViolation = errors.New("existing documents violate index constraint")
	ErrIndexConflict       = errors.New("index exists with a conflicting definition")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrInvalidSchema       = errors.New("invalid schema")
)

// MongoDB server error codes.
const (
	codeUnauthorized          = 13
	codeAuthenticationFailed  = 18
	codeNamespaceNotFound     = 26
	codeNamespaceExists       = 48
	codeIndexAlreadyExists    = 68
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

func hasCode(err error, codes ...int) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.HasErrorCode(c) {
			return true
		}
	}
	return false
}

func isNamespaceExists(err error) bool {
	return hasCode(err, codeNamespaceExists)
}

func isNamespaceNotFound(err error) bool {
	return hasCode(err, codeNamespaceNotFound)
}

// classifiedError tags a driver error with its failure class. It unwraps
// to the driver error alone, so the driver's own helpers (which follow
// single-error Unwrap) still see it; the class is matched through Is.
type classifiedError struct {
	kind error
	err  error
}

func (e *classifiedError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.err
}

func (e *classifiedError) Is(target error) bool {
	return target == e.kind
}

func classified(kind, err error) error {
	return &classifiedError{kind: kind, err: err}
}

// Classify wraps err with the sentinel of its failure class. Errors that
// fit no class are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConnectivity), errors.Is(err, ErrPermission),
		errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrIndexConflict):
		return err
	case hasCode(err, codeUnauthorized, codeAuthenticationFailed):
		return classified(ErrPermission, err)
	case mongo.IsDuplicateKeyError(err):
		return classified(ErrConstraintViolation, err)
	case hasCode(err, codeIndexAlreadyExists, codeIndexOptionsConflict, codeIndexKeySpecsConflict):
		return classified(ErrIndexConflict, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, context.DeadlineExceeded):
		return classified(ErrConnectivity, err)
	}
	return err
}

// ClassifyConnect classifies a connect or ping failure. Anything that is
// not an authentication problem means the server could not be reached.
func ClassifyConnect(err error) error {
	if err == nil {
		return nil
	}
	c := Classify(err)
	if errors.Is(c, ErrPermission) || errors.Is(c, ErrConnectivity) {
		return c
	}
	return classified(ErrConnectivity, err)
}
