package ioquality

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

func TableError(table string, err error) error {
	msg := "Cannot check quality of <em>%s</em>"
	return &gn.Error{
		Code: errcode.QualityTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("quality of %s: %w", table, err),
	}
}
