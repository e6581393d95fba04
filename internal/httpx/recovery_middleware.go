package httpx

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						zap.String("request_id", RequestIDFrom(r)),
						zap.Any("error", err),
						zap.ByteString("stack", debug.Stack()),
					)

					var wroteHeader bool
					if rw, ok := w.(*responseWriter); ok {
						wroteHeader = rw.wroteHeader()
					}

					if !wroteHeader {
						JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
