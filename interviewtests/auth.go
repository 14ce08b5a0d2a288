package interviewtests

import (
	"context"

	"github.com/acat-interview/interview-contract-tests/actions"
	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

// LoginFunc is a login action, either actions.AdminLogin or actions.UserLogin.
type LoginFunc func(context.Context, *client.Client, *client.Session, servicedef.LoginParams) (*client.Response, error)

// NewSession creates a session that is not logged in. It is closed when the test ends.
func (t *T) NewSession() *client.Session {
	s, err := t.client.NewSession(nil)
	require.NoError(t, err)
	t.Defer(s.Close)
	t.Debug("created session %s", s.ID())
	return s
}

// Authenticate logs in on a new session and returns it. If the login does not succeed,
// or does not leave a token cookie for cookiePath in the session, the test fails
// immediately: every test that needs a session depends on this step.
func (t *T) Authenticate(login LoginFunc, creds servicedef.LoginParams, cookiePath string) *client.Session {
	s := t.NewSession()
	resp := t.RequireResponse(login(t.Ctx(), t.client, s, creds))
	require.Equal(t, servicedef.StatusOK, resp.StatusCode, "login as %s failed: %s", creds.Phone, string(resp.Body))
	env := RequireEnvelope(t, resp)
	require.Equal(t, servicedef.StatusOK, env.Status, "login as %s failed: %s", creds.Phone, env)
	_, ok := s.Cookie(cookiePath, servicedef.TokenCookieName)
	require.True(t, ok, "login as %s did not set a %q cookie for %s", creds.Phone, servicedef.TokenCookieName, cookiePath)
	return s
}

// AdminSession returns a session logged in as the seeded administrator.
func (t *T) AdminSession() *client.Session {
	f := t.Fixtures()
	return t.Authenticate(actions.AdminLogin,
		servicedef.LoginParams{Phone: f.AdminPhone, Password: f.AdminPassword}, servicedef.AdminCookiePath)
}

// UserSession returns a session logged in as the seeded user.
func (t *T) UserSession() *client.Session {
	f := t.Fixtures()
	return t.Authenticate(actions.UserLogin,
		servicedef.LoginParams{Phone: f.UserPhone, Password: f.UserPassword}, servicedef.UserCookiePath)
}
