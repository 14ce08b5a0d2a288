package interviewtests

import (
	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireEnvelope decodes the response body, failing the test immediately if it is not a
// JSON envelope.
func RequireEnvelope(t *T, resp *client.Response) servicedef.Envelope {
	env, err := resp.JSON()
	require.NoError(t, err)
	return env
}

// RequireOK checks that the operation succeeded: transport status and business status
// are both 200 and there is no error message.
func RequireOK(t *T, resp *client.Response) servicedef.Envelope {
	require.Equal(t, servicedef.StatusOK, resp.StatusCode, "unexpected HTTP status; body: %s", string(resp.Body))
	env := RequireEnvelope(t, resp)
	assert.Equal(t, servicedef.StatusOK, env.Status, "business status")
	assert.Equal(t, "", env.Error, "error message")
	return env
}

// RequireRejected checks that the operation was rejected with exactly the given message:
// transport status and business status are both 400.
func RequireRejected(t *T, resp *client.Response, message string) servicedef.Envelope {
	env := requireRejectedEnvelope(t, resp)
	assert.Equal(t, message, env.Error, "error message")
	return env
}

// RequireRejectedWithAnyMessage is RequireRejected for cases where the message is not
// part of the contract, only that there is one.
func RequireRejectedWithAnyMessage(t *T, resp *client.Response) servicedef.Envelope {
	env := requireRejectedEnvelope(t, resp)
	assert.NotEqual(t, "", env.Error, "error message")
	return env
}

func requireRejectedEnvelope(t *T, resp *client.Response) servicedef.Envelope {
	require.Equal(t, servicedef.StatusBadRequest, resp.StatusCode, "unexpected HTTP status; body: %s", string(resp.Body))
	env := RequireEnvelope(t, resp)
	assert.Equal(t, servicedef.StatusBadRequest, env.Status, "business status")
	return env
}

// RequireBadRequest only checks the transport status, for requests whose body the service
// could not accept at all and so need not answer with an envelope.
func RequireBadRequest(t *T, resp *client.Response) {
	require.Equal(t, servicedef.StatusBadRequest, resp.StatusCode, "unexpected HTTP status; body: %s", string(resp.Body))
}

// AssertNoTokenCookie checks that a response did not set the token cookie.
func AssertNoTokenCookie(t *T, resp *client.Response) {
	assert.Nil(t, resp.Cookie(servicedef.TokenCookieName), "token cookie should not have been set")
}
