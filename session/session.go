package session

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"time"

	"shopmart/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// CookieName is the session cookie carrying the signed userId.
const CookieName = "shopmart_session"

// TTL bounds a session; after expiry the client starts over with a fresh
// userId, while the persisted cart for the old id stays on disk untouched.
const TTL = 24 * time.Hour

var jwtSecret []byte

// SessionClaims represents the custom claims for the session JWT. The
// userId rides in the registered Subject field.
type SessionClaims struct {
	jwt.RegisteredClaims
	CSRFToken string `json:"csrfToken"`
}

// Init loads the signing secret from SESSION_SECRET, or generates an
// ephemeral one. An ephemeral secret invalidates every session cookie on
// restart, which for an anonymous demo cart only costs users their binding
// to a persisted cart, not any account.
func Init() {
	jwtSecret = []byte(os.Getenv("SESSION_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			logrus.WithError(err).Fatal("Failed to generate session secret")
		}
		logrus.Warn("SESSION_SECRET is not set, using an ephemeral secret. Sessions will not survive a restart.")
	}
}

// MintUserID generates a fresh collision-resistant user identifier.
func MintUserID() string {
	return ulid.Make().String()
}

// New creates a session with a fresh userId and CSRF token.
func New() *core.Session {
	return &core.Session{
		UserID:    MintUserID(),
		CSRFToken: uuid.NewString(),
	}
}

// CreateToken signs a session into a JWT string suitable for the cookie.
func CreateToken(s *core.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		CSRFToken: s.CSRFToken,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates a session cookie value and returns the session it
// carries. Expired or tampered tokens return an error; callers respond by
// minting a fresh session rather than rejecting the request.
func ParseToken(tokenString string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}

	return &core.Session{UserID: claims.Subject, CSRFToken: claims.CSRFToken}, nil
}

// SetCookie writes the session cookie for s onto the response.
func SetCookie(w http.ResponseWriter, s *core.Session) error {
	token, err := CreateToken(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(TTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
