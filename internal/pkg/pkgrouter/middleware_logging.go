package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLoggedBodyBytes = 64 * 1024

const (
	masked           = "***"
	binaryOmitted    = "<binary body omitted>"
	multipartOmitted = "<multipart body omitted>"
)

//nolint:gochecknoglobals // lookup table
var sensitiveKeys = map[string]struct{}{
	"password":         {},
	"new_password":     {},
	"current_password": {},
	"access_token":     {},
	"refresh_token":    {},
	"secret_key":       {},
	"authorization":    {},
	"cookie":           {},
	"set-cookie":       {},
	"x-api-key":        {},
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func maskHeaders(headers http.Header) http.Header {
	out := headers.Clone()
	for k := range out {
		if isSensitive(k) {
			out[k] = []string{masked}
		}
	}
	return out
}

// maskData walks decoded JSON and returns a copy with sensitive keys replaced.
func maskData(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if isSensitive(k) {
				out[k] = masked
				continue
			}
			out[k] = maskData(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = maskData(child)
		}
		return out
	default:
		return v
	}
}

func routeOf(r *http.Request) string {
	if pattern := RoutePattern(r.Context()); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// peekBody reads up to maxLoggedBodyBytes+1 bytes and splices them back in
// front of the rest of the body so the handler still sees every byte.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1)) //nolint:errcheck // the handler sees the error on its own read
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return head
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "multipart/")
}

func maskForm(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		switch {
		case isSensitive(k):
			out[k] = masked
		case len(v) == 1:
			out[k] = v[0]
		default:
			out[k] = v
		}
	}
	return out
}

// parseAndMaskBody renders a body for the request log: JSON and form bodies
// are decoded and masked, other UTF-8 text is kept and anything else omitted.
func parseAndMaskBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var doc any
	if json.Unmarshal(body, &doc) == nil {
		return maskData(doc)
	}
	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			return maskForm(values)
		}
	}
	if !utf8.Valid(body) {
		return binaryOmitted
	}
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "...(truncated)"
	}
	return string(body)
}

func requestBodyForLog(r *http.Request) any {
	ct := r.Header.Get("Content-Type")
	if isMultipart(ct) {
		// uploads stream straight to the handler
		return multipartOmitted
	}
	return parseAndMaskBody(ct, peekBody(r))
}

func responseBodyForLog(rec *statusRecorder) any {
	if rec.body == nil || rec.body.Len() == 0 {
		return nil
	}
	if rec.capped {
		return map[string]any{"body": "<response body truncated>", "truncated": true}
	}

	raw := rec.body.Bytes()
	var doc any
	switch {
	case json.Unmarshal(raw, &doc) == nil:
		return maskData(doc)
	case utf8.Valid(raw):
		return string(raw)
	default:
		return binaryOmitted
	}
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeOf(r)

		slog.InfoContext(r.Context(), "request received",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"headers", maskHeaders(r.Header),
			"content_length", r.ContentLength,
			"body", requestBodyForLog(r),
		)

		rec := &statusRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		slog.InfoContext(r.Context(), "response sent",
			"method", r.Method,
			"route", route,
			"status", rec.Status(),
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
			"body", responseBodyForLog(rec),
		)
	})
}
