package normalizers

import (
	"cdn-insight/internal/shared/svcerrors"
)

const (
	codeParseFailed = "NRM_1000"
)

// errParseFailed returns an error when the raw log text is empty or yields
// zero usable rows. Callers surface this as a request failure, never retry.
func errParseFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeParseFailed, "log text could not be parsed: "+msg, cause)
}
