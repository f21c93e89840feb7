package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkPut(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	loc, err := sink.Put(context.Background(), "events/my_mod.txt", []byte("log = \"hi\"\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "events", "my_mod.txt"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "log = \"hi\"\n", string(got))
}

func TestFileSinkStaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{Dir: dir}

	loc, err := sink.Put(context.Background(), "../../escape.txt", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.txt"), loc)

	_, err = sink.Put(context.Background(), "  ", []byte("x"))
	assert.ErrorContains(t, err, "artifact name is required")
	_, err = sink.Put(context.Background(), "/", []byte("x"))
	assert.ErrorContains(t, err, "invalid artifact name")
}

func TestNewS3SinkValidation(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     S3Config
		wantErr string
	}{
		{name: "no endpoint", cfg: S3Config{AccessKey: "a", SecretKey: "b", Bucket: "c"}, wantErr: "endpoint is required"},
		{name: "no credentials", cfg: S3Config{Endpoint: "localhost:9000", Bucket: "c"}, wantErr: "access key and secret key are required"},
		{name: "no bucket", cfg: S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, wantErr: "bucket is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewS3Sink(tc.cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	sink, err := NewS3Sink(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "scripts", Prefix: "/mods/"})
	require.NoError(t, err)
	key, err := sink.objectKey("events/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "mods/events/x.txt", key)
}

func TestS3ConfigFromEnv(t *testing.T) {
	t.Setenv("BLUEPRINT_S3_ENDPOINT", "minio:9000")
	t.Setenv("BLUEPRINT_S3_ACCESS_KEY", "")
	t.Setenv("MINIO_ROOT_USER", "root")
	t.Setenv("BLUEPRINT_S3_SECRET_KEY", "secret")
	t.Setenv("BLUEPRINT_S3_BUCKET", "")
	t.Setenv("BLUEPRINT_S3_REGION", "")
	t.Setenv("BLUEPRINT_S3_USE_SSL", "true")

	cfg := S3ConfigFromEnv()
	assert.Equal(t, "minio:9000", cfg.Endpoint)
	assert.Equal(t, "root", cfg.AccessKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, "blueprint-scripts", cfg.Bucket)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.True(t, cfg.UseSSL)
}
