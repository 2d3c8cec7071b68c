package security

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/noah-isme/devtools-playground/internal/common"
)

// CodePayloadTooLarge is returned when a request body exceeds the limit.
const CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

// BodyLimit enforces a maximum request payload size.
type BodyLimit struct {
	Max int64
}

// Middleware rejects requests exceeding the configured limit with HTTP 413.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > b.Max && r.ContentLength != -1 {
			b.reject(w)
			return
		}

		limited := io.LimitReader(r.Body, b.Max+1)
		buf, err := io.ReadAll(limited)
		if err != nil && !errors.Is(err, io.EOF) {
			common.JSONError(w, http.StatusBadRequest, common.CodeBadRequest, "invalid request body", nil)
			return
		}
		if int64(len(buf)) > b.Max {
			b.reject(w)
			return
		}

		_ = r.Body.Close()

		r.Body = io.NopCloser(bytes.NewReader(buf))
		r.ContentLength = int64(len(buf))
		next.ServeHTTP(w, r)
	})
}

func (b BodyLimit) reject(w http.ResponseWriter) {
	common.JSONError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body too large",
		map[string]any{"max_bytes": b.Max})
}
