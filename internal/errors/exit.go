package errors

import "errors"

// Exit codes returned by the htmls2epub binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitConfigurationError indicates missing or invalid run options.
	ExitConfigurationError = 2

	// ExitIOError indicates a filesystem failure.
	ExitIOError = 3

	// ExitParseError indicates a malformed manifest or template document.
	ExitParseError = 4

	// ExitStructuralError indicates an invalid navigation hierarchy.
	ExitStructuralError = 5

	// ExitArchiveError indicates the archive could not be produced.
	ExitArchiveError = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrConfiguration):
		return ExitConfigurationError
	case errors.Is(err, ErrStructural):
		return ExitStructuralError
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrArchive):
		return ExitArchiveError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitIOError:
		return "I/O Error"
	case ExitParseError:
		return "Parse Error"
	case ExitStructuralError:
		return "Structural Error"
	case ExitArchiveError:
		return "Archive Error"
	default:
		return "Unknown"
	}
}
