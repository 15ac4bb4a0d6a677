package pkgrouter

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/jonbrc/DataCubo-Back/internal/pkg/pkgerror"
)

// recoverer turns a handler panic into the router's 500 response. The stack is
// logged as a list of frames from this module only.
func (r *Router) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel compared by identity
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.ErrorContext(req.Context(), "panic while serving request",
				"panic", fmt.Sprint(rvr),
				"route", routeOf(req),
				"frames", moduleFrames(debug.Stack()),
			)
			r.Fail(w, req, pkgerror.NewServer(fmt.Errorf("panic: %v", rvr)))
		}()

		next.ServeHTTP(w, req)
	})
}

// moduleFrames extracts "internal/...go:line" locations from a debug.Stack dump.
func moduleFrames(stack []byte) []string {
	var frames []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)
		i := strings.Index(line, "/internal/")
		if i < 0 || !strings.Contains(line, ".go:") {
			continue
		}
		loc := line[i+1:]
		if sp := strings.IndexByte(loc, ' '); sp >= 0 {
			loc = loc[:sp]
		}
		frames = append(frames, loc)
	}
	return frames
}
