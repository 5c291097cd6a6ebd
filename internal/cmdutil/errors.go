package cmdutil

import (
	"errors"
	"fmt"
	"strings"

	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/output"
)

// PrintError logs err in a user-friendly format. DetailErrors are printed as
// their multi-line block; other errors as a single log line.
func PrintError(msg string, err error) {
	var detail *herrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Type))
		output.Details(strings.TrimRight(detail.Error(), "\n"))
		return
	}
	output.Error(msg, "error", err)
}

// Fail prints err and returns it as an *ExitError carrying the exit code of
// its category, marked as printed.
func Fail(msg string, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *herrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	PrintError(msg, err)
	return &herrors.ExitError{
		Err:     err,
		Code:    herrors.ExitCodeFromError(err),
		Printed: true,
	}
}
