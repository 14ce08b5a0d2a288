package interviewtests

import (
	"errors"
	"net/http"
	"strings"

	"github.com/acat-interview/interview-contract-tests/actions"
	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

// RequireNotAdmitted checks that a protected endpoint turned the caller away to a login
// page: either a redirect to it, or the login page itself served in place of the
// envelope. Either way no token cookie is set and the body is not an envelope.
func RequireNotAdmitted(t *T, resp *client.Response) {
	if resp.IsRedirect() {
		assert.NotEqual(t, "", resp.Header.Get("Location"), "redirect should have a Location")
	} else {
		assert.Equal(t, http.StatusOK, resp.StatusCode, "expected a redirect or a login page; body: %s", string(resp.Body))
		assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"),
			"expected a login page but got Content-Type %q; body: %s", resp.Header.Get("Content-Type"), string(resp.Body))
	}
	_, err := resp.JSON()
	var parseErr *client.ParseError
	assert.True(t, errors.As(err, &parseErr), "protected endpoint answered with an envelope: %s", string(resp.Body))
	AssertNoTokenCookie(t, resp)
}

// DoLoginRequiredTests checks that protected endpoints turn away callers without a
// suitable token instead of answering with an envelope.
func DoLoginRequiredTests(t *T) {
	f := t.Fixtures()
	adminRequest := actions.SetResultRequest(servicedef.SetResultParams{SlotID: f.ResultSlotID, Round: servicedef.RoundSecond})
	userRequest := actions.ResultRequest(servicedef.ResultParams{Round: servicedef.RoundFirst})

	t.RunParallel("admin endpoint without a session", func(t *T) {
		RequireNotAdmitted(t, t.RequireResponse(t.Client().Send(t.Ctx(), nil, adminRequest)))
	})

	t.RunParallel("user endpoint without a session", func(t *T) {
		RequireNotAdmitted(t, t.RequireResponse(t.Client().Send(t.Ctx(), nil, userRequest)))
	})

	t.RunParallel("user endpoint with a session that is not logged in", func(t *T) {
		RequireNotAdmitted(t, t.RequireResponse(t.Client().Send(t.Ctx(), t.NewSession(), userRequest)))
	})

	t.RunParallel("admin endpoint with a user session", func(t *T) {
		RequireNotAdmitted(t, t.RequireResponse(t.Client().Send(t.Ctx(), t.UserSession(), adminRequest)))
	})

	t.RunParallel("following redirects ends at a login page", func(t *T) {
		req := userRequest
		req.FollowRedirects = true
		resp := t.RequireResponse(t.Client().Send(t.Ctx(), nil, req))
		assert.False(t, resp.IsRedirect(), "redirects should have been followed")
		RequireNotAdmitted(t, resp)
	})
}
