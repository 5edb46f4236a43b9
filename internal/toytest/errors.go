package toytest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsafeOutDir is returned before spawning when cleanup is requested for
// an output directory that is not strictly below the working directory.
var ErrUnsafeOutDir = errors.New("output directory is not below the working directory")

// ProcessExecutionError reports a child process that exited non-zero or
// could not be started at all. A missing binary and a crashing assembler
// are deliberately indistinguishable here.
type ProcessExecutionError struct {
	Args     []string
	ExitCode int // -1 if the process never started or was killed
	Err      error
}

func (e *ProcessExecutionError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q returned non-zero exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("command %q failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ProcessExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a child process killed after exceeding its time limit.
type TimeoutError struct {
	Args    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %s", strings.Join(e.Args, " "), e.Timeout)
}
