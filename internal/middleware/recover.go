package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// RecoverMiddleware turns a panic into the fallback page.
func RecoverMiddleware(logger *zap.SugaredLogger, fallback http.HandlerFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Errorf("panic recovered: %v\n%s", rec, debug.Stack())
					fallback(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
