package domain

// Config carries the values the core layers need. It is built once at
// startup from the config file and passed by reference; nothing in the core
// reads ambient environment state.
type Config struct {
	// BaseURL is the externally visible origin, without trailing slash,
	// used when generating resource and auth service URLs.
	BaseURL string
	// TokenSecret seeds the HKDF-derived token signing keys.
	TokenSecret string
	// CookieName is the session cookie consulted for the current subject.
	CookieName string
}
