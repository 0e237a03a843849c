package logsources

import (
	"context"
	"io"
	"strings"
	"time"

	"cdn-insight/internal/models"
	"cdn-insight/internal/shared/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
)

//go:generate mockgen -source=s3_source.go -destination=./mocks/log_source_mock.go -package=mocks
type LogSource interface {
	// Fetch retrieves the raw log text behind an object reference for one
	// synchronous analysis call. Nothing is stored.
	Fetch(ctx context.Context, ref *models.S3ObjectRef) (string, error)
}

type s3Source struct {
	client   *s3.Client
	timeout  time.Duration
	maxBytes int
}

// NewS3Source loads the default AWS configuration for the given region and
// builds an S3-backed log source. maxBytes caps the decompressed text size.
func NewS3Source(ctx context.Context, region string, timeout time.Duration, maxBytes int) (LogSource, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &s3Source{
		client:   s3.NewFromConfig(awsCfg),
		timeout:  timeout,
		maxBytes: maxBytes,
	}, nil
}

func (s *s3Source) Fetch(ctx context.Context, ref *models.S3ObjectRef) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetObject(fetchCtx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		metricObjectsFetchedTotal.WithLabelValues(codeFetchFailed).Inc()
		return "", errFetchFailed(ref, err)
	}
	defer out.Body.Close()

	reader := io.Reader(out.Body)
	if isGzipObject(ref.Key, out.ContentEncoding) {
		gzReader, err := gzip.NewReader(out.Body)
		if err != nil {
			metricObjectsFetchedTotal.WithLabelValues(codeFetchFailed).Inc()
			return "", errFetchFailed(ref, err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	buf, err := io.ReadAll(io.LimitReader(reader, int64(s.maxBytes)+1))
	if err != nil {
		metricObjectsFetchedTotal.WithLabelValues(codeFetchFailed).Inc()
		return "", errFetchFailed(ref, err)
	}
	if len(buf) > s.maxBytes {
		metricObjectsFetchedTotal.WithLabelValues(codeObjectTooLarge).Inc()
		return "", errObjectTooLarge(ref, s.maxBytes)
	}

	metricObjectsFetchedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return string(buf), nil
}

func isGzipObject(key string, contentEncoding *string) bool {
	if strings.HasSuffix(strings.ToLower(key), ".gz") {
		return true
	}
	return contentEncoding != nil && strings.EqualFold(*contentEncoding, "gzip")
}
