package iometrics

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/trialwh/pkg/errcode"
)

func RegisterError(name string, err error) error {
	msg := "Cannot register metric <em>%s</em>"
	return &gn.Error{
		Code: errcode.MetricsRegisterError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("register %s: %w", name, err),
	}
}

func PushError(url string, err error) error {
	msg := `Cannot push metrics to <em>%s</em>

<em>How to fix:</em>
  Check metrics.push_url, or leave it empty to disable pushing.`

	return &gn.Error{
		Code: errcode.MetricsPushError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("push to %s: %w", url, err),
	}
}
