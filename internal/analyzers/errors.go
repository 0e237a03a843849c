package analyzers

import (
	"fmt"

	"cdn-insight/internal/shared/svcerrors"
)

const (
	codeInvalidWindow     = "ANL_1000"
	codeNoValidTimestamps = "ANL_1001"
	codeInvalidFilterSpec = "ANL_1002"
)

// errInvalidWindow returns an error for a non-positive or non-finite window.
func errInvalidWindow(windowMinutes float64) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidWindow,
		fmt.Sprintf("windowMinutes must be a positive finite number, got %v", windowMinutes), nil)
}

// errNoValidTimestamps returns an error when no record carries a parseable
// timestamp, so no window can be anchored.
func errNoValidTimestamps() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeNoValidTimestamps,
		"no record has a valid timestamp; cannot anchor the time window", nil)
}

// errInvalidFilterSpec returns an error for a malformed filter variant.
func errInvalidFilterSpec(index int, spec string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidFilterSpec,
		fmt.Sprintf("filter at index %d is malformed: %s", index, spec), nil)
}
