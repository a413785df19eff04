package mathexpr

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression indicates arithmetic parsing or evaluation failures.
var ErrInvalidExpression = errors.New("invalid arithmetic expression")

func expressionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpression, fmt.Sprintf(format, args...))
}
