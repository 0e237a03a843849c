package logsources

import (
	"fmt"

	"cdn-insight/internal/models"
	"cdn-insight/internal/shared/svcerrors"
)

const (
	codeObjectTooLarge = "SRC_1000"
	codeFetchFailed    = "SRC_9000"
)

// errObjectTooLarge returns an error when the referenced object exceeds the
// configured text size limit.
func errObjectTooLarge(ref *models.S3ObjectRef, maxBytes int) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeObjectTooLarge,
		fmt.Sprintf("log object s3://%s/%s exceeds %d bytes", ref.Bucket, ref.Key, maxBytes), nil)
}

// errFetchFailed returns an error when the object cannot be retrieved or read.
func errFetchFailed(ref *models.S3ObjectRef, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeFetchFailed,
		fmt.Errorf("logSourceFetchFailed s3://%s/%s: %w", ref.Bucket, ref.Key, cause))
}
