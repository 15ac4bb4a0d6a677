package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkglog"
)

// Generator produces correlation ids for requests that arrive without one.
type Generator interface {
	Generate() string
}

// HeaderCorrelationID is echoed on every response.
const HeaderCorrelationID = "X-Correlation-ID"

const maxCorrelationIDLen = 128

// inboundIDHeaders are checked in order; proxies in front of the API tend to
// set one of the latter two.
//
//nolint:gochecknoglobals // read-only lookup list
var inboundIDHeaders = []string{HeaderCorrelationID, "X-Request-ID", "X-Amzn-Trace-Id"}

// cleanCorrelationID keeps printable ASCII only, so a client id can be echoed
// in a header and written to logs unchanged.
func cleanCorrelationID(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return ""
		}
	}
	return v
}

func incomingCorrelationID(h http.Header) string {
	for _, name := range inboundIDHeaders {
		if id := cleanCorrelationID(h.Get(name)); id != "" {
			return id
		}
	}
	return ""
}

func middlewareCorrelationID(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := incomingCorrelationID(r.Header)
			if id == "" && gen != nil {
				id = gen.Generate()
			}
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(pkglog.WithCorrelationID(r.Context(), id)))
		})
	}
}
