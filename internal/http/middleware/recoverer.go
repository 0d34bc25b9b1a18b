package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ctx := logg.WithField(r.Context(), "stack", string(debug.Stack()))
				respond.WriteError(ctx, logg, w, fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
