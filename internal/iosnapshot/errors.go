package iosnapshot

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

func SnapshotReadError(source string, err error) error {
	msg := "Cannot read snapshot <em>%s</em>"
	return &gn.Error{
		Code: errcode.SnapshotReadError,
		Msg:  msg,
		Vars: []any{source},
		Err:  fmt.Errorf("cannot read snapshot %q: %w", source, err),
	}
}

func SnapshotDecodeError(source string, err error) error {
	msg := `Snapshot <em>%s</em> is not valid JSON

<em>How to fix:</em>
  A snapshot is an array of trials, or an object
  with "metadata" and "trials" fields.`

	return &gn.Error{
		Code: errcode.SnapshotDecodeError,
		Msg:  msg,
		Vars: []any{source},
		Err:  fmt.Errorf("cannot decode snapshot %q: %w", source, err),
	}
}

func SnapshotS3Error(source string, err error) error {
	msg := `Cannot download snapshot <em>%s</em>

<em>How to fix:</em>
  1. Check AWS credentials and region
  2. Check s3.endpoint and s3.use_path_style for MinIO`

	return &gn.Error{
		Code: errcode.SnapshotS3Error,
		Msg:  msg,
		Vars: []any{source},
		Err:  fmt.Errorf("cannot get %q from S3: %w", source, err),
	}
}
