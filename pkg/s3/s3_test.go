package s3

import (
	"testing"

	"pool-fund/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cfg *aws.Config, bucket string) *Client {
	t.Helper()
	sess, err := session.NewSession(cfg)
	require.NoError(t, err)
	return &Client{s3Client: s3.New(sess), bucket: bucket}
}

func TestNewClient_DisabledWithoutBucket(t *testing.T) {
	client, err := NewClient(&config.Config{})

	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  *aws.Config
		want string
	}{
		{
			name: "aws region",
			cfg:  &aws.Config{Region: aws.String("eu-west-1")},
			want: "https://webhooks.s3.eu-west-1.amazonaws.com/webhooks/2026/01/02/evt_1.json",
		},
		{
			name: "minio without ssl",
			cfg:  &aws.Config{Region: aws.String("us-east-1"), Endpoint: aws.String("http://localhost:9000"), DisableSSL: aws.Bool(true)},
			want: "http://localhost:9000/webhooks/webhooks/2026/01/02/evt_1.json",
		},
		{
			name: "minio with ssl",
			cfg:  &aws.Config{Region: aws.String("us-east-1"), Endpoint: aws.String("https://minio.internal")},
			want: "https://minio.internal/webhooks/webhooks/2026/01/02/evt_1.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.cfg, "webhooks")
			assert.Equal(t, tt.want, client.objectURL("webhooks/2026/01/02/evt_1.json"))
		})
	}
}
