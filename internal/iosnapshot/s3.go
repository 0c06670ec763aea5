package iosnapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gnames/gnsys"
	"github.com/gnames/trialwh/pkg/config"
)

func isS3(source string) bool {
	return strings.HasPrefix(source, "s3://")
}

// parseS3 splits s3://bucket/key into bucket and key.
func parseS3(source string) (string, string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("expected s3://bucket/key, got %q", source)
	}
	return u.Host, key, nil
}

// download copies an S3 object to the snapshots cache directory and
// returns the local path. Earlier downloads are removed.
func download(
	ctx context.Context,
	cfg *config.Config,
	source string,
) (string, error) {
	bucket, key, err := parseS3(source)
	if err != nil {
		return "", SnapshotS3Error(source, err)
	}

	client, err := newClient(ctx, cfg.S3)
	if err != nil {
		return "", SnapshotS3Error(source, err)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", SnapshotS3Error(source, err)
	}
	defer out.Body.Close()

	dir := filepath.Join(config.CacheDir(cfg.HomeDir), "snapshots")
	if err = gnsys.MakeDir(dir); err != nil {
		return "", SnapshotReadError(source, err)
	}
	// only the latest snapshot is kept
	if err = gnsys.CleanDir(dir); err != nil {
		return "", SnapshotReadError(source, err)
	}
	local := filepath.Join(dir, path.Base(key))

	f, err := os.Create(local)
	if err != nil {
		return "", SnapshotReadError(source, err)
	}
	defer f.Close()

	n, err := io.Copy(f, out.Body)
	if err != nil {
		return "", SnapshotS3Error(source, err)
	}

	slog.Info("Snapshot downloaded", "source", source, "path", local,
		"bytes", n)
	return local, nil
}

func newClient(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
