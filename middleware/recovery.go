// middleware/recovery.go
package middleware

import (
	"log"
	"net/http"

	sentry "github.com/getsentry/sentry-go"

	"isip/utils"
)

// RecoveryMiddleware recovers from panics, reports them to Sentry when a
// DSN is configured, and answers with a generic 500.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC recovered: %v", err)
				sentry.CurrentHub().Recover(err)
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
