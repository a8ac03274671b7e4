package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chaimtop/studygo/core"
)

// renderError maps every classified failure to a non-fatal user-visible
// notice, the same way a screen would.
func renderError(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		var b strings.Builder
		b.WriteString("invalid input:")
		for _, fld := range vErr.Fields {
			fmt.Fprintf(&b, "\n  %s: %s", fld.Field, fld.Error)
		}
		if len(vErr.Fields) == 0 {
			b.WriteString(" " + vErr.Error())
		}
		return b.String()
	}

	if errors.Is(err, core.ErrSessionExpired) {
		return "登录已过期，请重新登录 (run: student login -code <code>)"
	}

	var bErr *core.BusinessError
	if errors.As(err, &bErr) {
		if bErr.Code == "ALREADY_SUBMITTED" {
			return "已提交过该作业"
		}
		return bErr.Error()
	}

	if core.IsTransportError(err) {
		return "网络错误，请稍后重试 (" + err.Error() + ")"
	}
	return err.Error()
}
