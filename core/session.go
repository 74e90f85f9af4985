package core

type (
	// Session is the per-client context resolved by the session middleware.
	// UserID is minted on first contact and carried in a signed cookie;
	// CSRFToken is rotated with the cookie. The cart itself is not stored
	// here: it is hydrated lazily by the cart service on first read.
	Session struct {
		UserID    string `json:"userId"`
		CSRFToken string `json:"csrfToken"`
	}
)
