package server

import (
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"communityconnect/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	_, err := rand.Read(hashKey)
	require.NoError(t, err)
	_, err = rand.Read(blockKey)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Service{
		logger: logger,
		config: &types.Config{
			SessionCookieName: "cc_session",
			SessionMaxAgeSec:  3600,
		},
		cookie: securecookie.New(hashKey, blockKey),
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	svc := newTestService(t)

	identity := &types.Identity{
		AccountID:   "vol-1",
		AccountType: types.AccountTypeVolunteer,
		DisplayName: "Priya Sharma",
	}

	rec := httptest.NewRecorder()
	require.NoError(t, svc.setSessionCookie(rec, identity))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cc_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "vol-1", "identity must not be readable from the cookie")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])

	decoded, err := svc.identityFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, identity, decoded)
}

func TestSessionCookieRejectsTampering(t *testing.T) {
	svc := newTestService(t)

	rec := httptest.NewRecorder()
	require.NoError(t, svc.setSessionCookie(rec, &types.Identity{
		AccountID:   "org-1",
		AccountType: types.AccountTypeOrganisation,
	}))

	cookie := rec.Result().Cookies()[0]
	cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)

	_, err := svc.identityFromRequest(req)
	assert.Error(t, err)
}

func TestSessionCookieFromAnotherKeyIsRejected(t *testing.T) {
	issuer := newTestService(t)
	verifier := newTestService(t)

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.setSessionCookie(rec, &types.Identity{
		AccountID:   "vol-1",
		AccountType: types.AccountTypeVolunteer,
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, err := verifier.identityFromRequest(req)
	assert.Error(t, err)
}

func TestClearSessionCookie(t *testing.T) {
	svc := newTestService(t)

	rec := httptest.NewRecorder()
	svc.clearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cc_session", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
