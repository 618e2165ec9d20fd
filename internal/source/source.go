// Package source reads graph files from a path, standard input ("-") or
// an S3 compatible object store ("s3://bucket/key").
package source

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"nn2go/internal/config"
	"nn2go/internal/fail"
)

const Stdin = "-"

type Loader struct {
	Stdin io.Reader
	S3    config.S3
	Log   *zap.Logger
}

// Load returns the text of src. Schemes other than s3 and paths that are
// not regular files are unsupported inputs.
func (l *Loader) Load(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	var (
		data []byte
		err  error
	)
	switch {
	case src == Stdin:
		if l.Stdin == nil {
			return "", fail.Unsupported("no standard input")
		}
		data, err = io.ReadAll(l.Stdin)
		err = errors.Wrap(err, "read standard input")
	case strings.Contains(src, "://"):
		data, err = l.object(ctx, src)
	default:
		data, err = file(src)
	}
	if err != nil {
		return "", err
	}
	log.Debug("loaded model source", zap.String("source", src), zap.Int("bytes", len(data)))
	return string(data), nil
}

func file(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	if !fi.Mode().IsRegular() {
		return nil, fail.Unsupported("%s is not a regular file", path)
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrap(err, "read model")
}

// Object splits an s3:// URL into bucket and key.
func Object(src string) (bucket, key string, err error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", "", fail.Unsupported("%s: %v", src, err)
	}
	if u.Scheme != "s3" {
		return "", "", fail.Unsupported("%s: scheme %q is not s3", src, u.Scheme)
	}
	bucket, key = u.Host, strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fail.Unsupported("%s: want s3://bucket/key", src)
	}
	return bucket, key, nil
}

func (l *Loader) object(ctx context.Context, src string) ([]byte, error) {
	bucket, key, err := Object(src)
	if err != nil {
		return nil, err
	}
	if l.S3.Endpoint == "" {
		return nil, fail.Unsupported("%s: no s3.endpoint is configured", src)
	}
	client, err := minio.New(l.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(l.S3.AccessKey, l.S3.SecretKey, ""),
		Secure: l.S3.Secure,
		Region: l.S3.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "s3 client")
	}
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", src)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", src)
	}
	return data, nil
}
