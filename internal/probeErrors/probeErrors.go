package probeerrors

import (
	"errors"

	exitcodes "github.com/RobsonDevCode/growmate-probe/internal/constants/exitCodes"
)

type ProbeError struct {
	Code int
	Err  error
}

func New(code int, err error) *ProbeError {
	return &ProbeError{Code: code, Err: err}
}

func (e *ProbeError) Error() string {
	return e.Err.Error()
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// ExitCode finds the first ProbeError in the chain, anything else is a
// general failure.
func ExitCode(err error) int {
	if err == nil {
		return exitcodes.Success
	}

	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Code
	}

	return exitcodes.Failure
}
