package obs

import (
	"errors"
	"strings"

	"github.com/noah-isme/devtools-playground/internal/common"
)

// Outcome converts an operation error into a low-cardinality metric label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}
