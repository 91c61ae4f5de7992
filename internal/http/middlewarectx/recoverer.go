package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
)

// Recoverer перехватывает панику обработчика, пишет её в лог со стеком
// и отвечает 500 с общим сообщением.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
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
				log := log.With(slog.String("request_id", middleware.GetReqID(r.Context())))
				log.Error("panic recovered", slog.String("stack", string(debug.Stack())))
				response.WriteError(w, r, log, fmt.Errorf("panic: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
