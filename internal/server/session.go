package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"communityconnect/pkg/types"
)

const redirectCookieName = "cc_redirect"

// setSessionCookie establishes the session: the Identity is encrypted
// into an httpOnly cookie. No session state is held server-side.
func (s *Service) setSessionCookie(w http.ResponseWriter, identity *types.Identity) error {
	encoded, err := s.cookie.Encode(s.config.SessionCookieName, identity)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func (s *Service) identityFromRequest(r *http.Request) (*types.Identity, error) {
	cookie, err := r.Cookie(s.config.SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("no session cookie: %w", err)
	}

	var identity types.Identity
	if err := s.cookie.Decode(s.config.SessionCookieName, cookie.Value, &identity); err != nil {
		return nil, fmt.Errorf("decode session cookie: %w", err)
	}

	if identity.AccountID == "" || !identity.AccountType.Valid() {
		return nil, fmt.Errorf("session cookie carries no identity")
	}

	return &identity, nil
}

func (s *Service) identityFromContext(ctx context.Context) (*types.Identity, error) {
	identity, ok := ctx.Value(contextKeyIdentity).(*types.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    path,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
