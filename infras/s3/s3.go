package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/shared/constant"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores raw documents the service must keep for audit, such as processor events.
type S3 interface {
	Put(ctx context.Context, key, contentType string, body []byte) (err error)
	Enabled() bool
}

type s3Impl struct {
	client *s3.Client
	bucket string
	otel   otel.Otel
}

func (svc *s3Impl) Enabled() bool {
	return true
}

func (svc *s3Impl) Put(ctx context.Context, key, contentType string, body []byte) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to put object to S3")

		return fmt.Errorf("failed to put object to S3: %w", err)
	}

	return nil
}

// DatedKey lays objects out as prefix/YYYY-MM-DD/name.
func DatedKey(prefix string, at time.Time, name string) string {
	return path.Join(prefix, at.Format(constant.BookingDateFormat), name)
}

type disabledImpl struct{}

func (d *disabledImpl) Enabled() bool {
	return false
}

func (d *disabledImpl) Put(_ context.Context, _, _ string, _ []byte) error {
	return nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Conf := config.External.S3
	if !s3Conf.Enable {
		log.Warn().Msg("S3 archive disabled")

		return &disabledImpl{}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Conf.AccessKeyID,
		s3Conf.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Conf.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Conf.APIEndpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: client,
		bucket: s3Conf.BucketName,
		otel:   otel,
	}
}
