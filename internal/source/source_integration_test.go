//go:build integration

package source

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"nn2go/internal/config"
)

const (
	accessKey = "minioadmin"
	secretKey = "minioadmin"
)

func startMinIO(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     accessKey,
				"MINIO_ROOT_PASSWORD": secretKey,
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestLoadFromMinIO(t *testing.T) {
	endpoint := startMinIO(t)
	ctx := context.Background()
	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
	})
	require.NoError(t, err)
	require.NoError(t, client.MakeBucket(ctx, "models", minio.MakeBucketOptions{}))
	_, err = client.PutObject(ctx, "models", "nets/m.graph", bytes.NewReader([]byte(text)),
		int64(len(text)), minio.PutObjectOptions{ContentType: "text/plain"})
	require.NoError(t, err)

	l := &Loader{S3: config.S3{Endpoint: endpoint, AccessKey: accessKey, SecretKey: secretKey}}
	got, err := l.Load(ctx, "s3://models/nets/m.graph")
	require.NoError(t, err)
	assert.Equal(t, text, got)

	_, err = l.Load(ctx, "s3://models/nets/none.graph")
	assert.Error(t, err)
}
