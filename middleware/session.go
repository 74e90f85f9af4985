package middleware

import (
	"context"
	"net/http"

	"shopmart/core"
	"shopmart/session"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type contextKey string

const SessionContextKey = contextKey("session")

// Session binds a core.Session to every request. A valid cookie is reused;
// a missing, expired, or tampered cookie gets a freshly minted session and
// a new cookie. Requests are never rejected here: sessions are anonymous,
// so there is nothing to be unauthorized about.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *core.Session

		if cookie, err := r.Cookie(session.CookieName); err == nil {
			sess, err = session.ParseToken(cookie.Value)
			if err != nil {
				logrus.WithError(err).Debug("Session cookie rejected, minting a new session")
				sess = nil
			}
		}

		if sess == nil {
			sess = session.New()
			if err := session.SetCookie(w, sess); err != nil {
				logrus.WithError(err).Error("Failed to set session cookie")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"error": "Failed to establish session"})
				return
			}
			logrus.WithField("user_id", sess.UserID).Info("New session minted")
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session bound by the Session middleware, or nil
// when the request skipped it.
func SessionFrom(ctx context.Context) *core.Session {
	sess, _ := ctx.Value(SessionContextKey).(*core.Session)
	return sess
}

// WithSession binds an already-resolved session to a context. Handlers are
// normally fed by the Session middleware; this is for callers that hold a
// session some other way, such as tests.
func WithSession(ctx context.Context, sess *core.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, sess)
}
