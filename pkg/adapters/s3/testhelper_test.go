package s3_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/s3"
)

// fakeServer starts an in-memory S3 server with one bucket.
// It returns the server URL; the server is closed when the test completes.
func fakeServer(t testing.TB, bucket string) string {
	t.Helper()

	faker := gofakes3.New(s3mem.New())
	ts := httptest.NewServer(faker.Server())
	t.Cleanup(ts.Close)

	ctx := context.Background()
	sdkConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		),
	)
	require.NoError(t, err)

	client := awss3.NewFromConfig(sdkConfig, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(ts.URL)
		o.UsePathStyle = true
	})
	_, err = client.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoError(t, err)

	return ts.URL
}

// testSlot creates an S3 slot backed by gofakes3.
func testSlot(t testing.TB, bucket, prefix string) *s3.Slot {
	t.Helper()
	url := fakeServer(t, bucket)

	slot, err := s3.New(context.Background(), s3.Config{
		Bucket:          bucket,
		Prefix:          prefix,
		Endpoint:        url,
		Region:          "us-east-1",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return slot
}
