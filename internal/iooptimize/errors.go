package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

func IndexError(query string, err error) error {
	msg := `Cannot create fact index

<em>How to fix:</em>
  Make sure the schema exists: <em>trialwh migrate</em>`

	return &gn.Error{
		Code: errcode.OptimizerIndexError,
		Msg:  msg,
		Err:  fmt.Errorf("index %q: %w", query, err),
	}
}

func ViewCreationError(view string, err error) error {
	msg := "Cannot create view <em>%s</em>"
	return &gn.Error{
		Code: errcode.OptimizerViewCreationError,
		Msg:  msg,
		Vars: []any{view},
		Err:  fmt.Errorf("view %s: %w", view, err),
	}
}

func VacuumError(query string, err error) error {
	msg := "Cannot update statistics with <em>%s</em>"
	return &gn.Error{
		Code: errcode.OptimizerVacuumError,
		Msg:  msg,
		Vars: []any{query},
		Err:  fmt.Errorf("%s: %w", query, err),
	}
}
