package output

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner runs action with a spinner titled title on stderr. Without
// a terminal the action runs directly and its duration is logged at debug
// level.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	start := time.Now()
	defer func() {
		Debug("step finished", "step", title, "elapsed", time.Since(start).Round(time.Millisecond))
	}()

	if !IsTTY() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return fmt.Errorf("running spinner: %w", err)
	}
	return actionErr
}
