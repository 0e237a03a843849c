package http

import (
	"fmt"

	"cdn-insight/internal/shared/svcerrors"
)

const (
	codeValidationFailed  = "HTTP_1000"
	codeRequestTooLarge   = "HTTP_1001"
	codeLogSourceDisabled = "HTTP_1002"
)

// errValidationFailed returns an error for request decoding and validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errRequestTooLarge returns an error when the (decompressed) body exceeds the limit.
func errRequestTooLarge(maxBytes int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeRequestTooLarge,
		fmt.Sprintf("request body too large: must be <= %d bytes", maxBytes), nil)
}

// errLogSourceDisabled returns an error when a source reference arrives but
// no object-storage source is configured.
func errLogSourceDisabled() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeLogSourceDisabled,
		"object-storage log source is not enabled on this server", nil)
}
