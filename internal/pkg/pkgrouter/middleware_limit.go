package pkgrouter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
)

// RejectFunc sees an error before the middleware writes it and returns the
// error to write.
type RejectFunc func(ctx context.Context, err error) error

// MaxBodySize rejects requests whose declared Content-Length exceeds limit and
// caps the body reader for the rest, so handlers see *http.MaxBytesError once
// the limit is crossed. A non-positive limit disables the check. Rejections
// pass through onReject, in order, before they are written.
func (r *Router) MaxBodySize(limit int64, onReject ...RejectFunc) Middleware {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.ContentLength > limit {
				err := pkgerror.NewTooLarge(fmt.Errorf("content length %d exceeds %d bytes", req.ContentLength, limit))
				for _, fn := range onReject {
					err = fn(req.Context(), err)
				}
				r.Fail(w, req, err)
				return
			}

			req.Body = http.MaxBytesReader(w, req.Body, limit)
			next.ServeHTTP(w, req)
		})
	}
}
