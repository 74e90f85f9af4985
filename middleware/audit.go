package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// auditWriter captures the status code for the after hook without
// replacing any handler machinery.
type auditWriter struct {
	http.ResponseWriter
	status int
}

func (w *auditWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Audit logs one structured entry per request: a before hook records the
// incoming method and path, an after hook records status, duration, and
// the bound userId when a session exists. This replaces the ad hoc
// wrapping of response methods the storefront used to do.
func Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"remote": r.RemoteAddr,
		})
		entry.Debug("Request received")

		aw := &auditWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(aw, r)

		if sess := SessionFrom(r.Context()); sess != nil {
			entry = entry.WithField("user_id", sess.UserID)
		}
		entry.WithFields(logrus.Fields{
			"status":      aw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	})
}
