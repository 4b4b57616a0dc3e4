package graphql

import (
	"errors"

	"github.com/anilpal6795/crime-linker/internal/domain"
	"github.com/anilpal6795/crime-linker/internal/logger"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeBadUserInput  = "BAD_USER_INPUT"
	CodeConfiguration = "CONFIGURATION"
	CodeInternal      = "INTERNAL"
)

// Error carries a machine readable code into the "extensions" member of the
// GraphQL error.
type Error struct {
	Code string
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &Error{Code: CodeNotFound, err: err}
	case errors.Is(err, domain.ErrInvalidInput):
		return &Error{Code: CodeBadUserInput, err: err}
	case domain.IsConfiguration(err):
		return &Error{Code: CodeConfiguration, err: err}
	default:
		logger.Error("graphql resolver failed", "err", err)
		return &Error{Code: CodeInternal, err: errors.New("internal error")}
	}
}
