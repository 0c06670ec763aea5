package iorefresh

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

func ReadRawError(err error) error {
	msg := `Cannot read raw trials

<em>How to fix:</em>
  Import a snapshot with <em>trialwh import</em>,
  or set refresh.snapshot in config.yaml.`

	return &gn.Error{
		Code: errcode.RefreshReadRawError,
		Msg:  msg,
		Err:  fmt.Errorf("read raw trials: %w", err),
	}
}

func StagingLoadError(err error) error {
	msg := `Cannot load staging tables, previous staging data is kept`
	return &gn.Error{
		Code: errcode.RefreshStagingLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("load staging: %w", err),
	}
}

func WarehouseLoadError(err error) error {
	msg := `Cannot load warehouse tables, previous warehouse data is kept`
	return &gn.Error{
		Code: errcode.RefreshWarehouseLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("load warehouse: %w", err),
	}
}

func AuditError(err error) error {
	msg := "Refresh finished, but the run was not recorded in etl_runs"
	return &gn.Error{
		Code: errcode.RefreshAuditError,
		Msg:  msg,
		Err:  fmt.Errorf("append etl run: %w", err),
	}
}
