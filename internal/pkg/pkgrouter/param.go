package pkgrouter

import (
	"context"
	"net/http"
)

type routeContextKey struct{}

// RoutePattern returns the registered pattern that matched the request, or
// the empty string for requests that did not go through a route.
func RoutePattern(ctx context.Context) string {
	pattern, _ := ctx.Value(routeContextKey{}).(string)
	return pattern
}

func middlewareRoute(pattern string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routeContextKey{}, pattern)))
		})
	}
}
