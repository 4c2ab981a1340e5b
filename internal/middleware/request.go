package middleware

import (
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestInfo records who sent the request so the activity log can attribute
// the changes it makes. It must run after chi's RequestID and RealIP.
func RequestInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := audit.WithRequestInfo(r.Context(), audit.RequestInfo{
			RequestID: chimw.GetReqID(r.Context()),
			ClientIP:  r.RemoteAddr,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
