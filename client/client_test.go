package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/framework"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *framework.CapturingLogger) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg, err := config.Default(server.URL)
	require.NoError(t, err)
	logger := &framework.CapturingLogger{}
	c := NewClient(cfg, logger)
	t.Cleanup(c.Close)
	return c, logger
}

func jsonHandler(status int, body string, extraHeaders http.Header) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	for k, vv := range extraHeaders {
		headers[k] = vv
	}
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

func TestSendPostsJSONPayloadToEndpointPath(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(jsonHandler(200, `{"status":200,"error":""}`, nil))
	c, _ := newTestClient(t, handler)

	resp, err := c.Send(context.Background(), nil, Request{
		Endpoint: servicedef.EndpointUserLogin,
		Payload:  servicedef.LoginParams{Phone: "15229300775", Password: "123456"},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.Len(t, requestsCh, 1)
	r := <-requestsCh
	assert.Equal(t, "POST", r.Request.Method)
	assert.Equal(t, "/user/login", r.Request.URL.Path)
	assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
	assert.NotEmpty(t, r.Request.Header.Get(requestIDHeader))
	assert.JSONEq(t, `{"phone":"15229300775","password":"123456"}`, string(r.Body))
}

func TestSendRawBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(400))
	c, _ := newTestClient(t, handler)

	resp, err := c.Send(context.Background(), nil, Request{Path: "/admin_login", RawBody: []byte("not a json")})
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	r := <-requestsCh
	assert.Equal(t, "not a json", string(r.Body))
	assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
}

func TestSendGetHasNoBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	c, _ := newTestClient(t, handler)

	_, err := c.Send(context.Background(), nil, Request{Method: "GET", Endpoint: servicedef.EndpointPing})
	require.NoError(t, err)

	r := <-requestsCh
	assert.Equal(t, "GET", r.Request.Method)
	assert.Empty(t, r.Body)
	assert.Empty(t, r.Request.Header.Get("Content-Type"))
}

func TestSendDoesNotFollowRedirectsByDefault(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/user/auth/result", httphelpers.HandlerWithResponse(302, http.Header{"Location": {"/user/login"}}, nil))
	mux.Handle("/user/login", httphelpers.HandlerWithResponse(200, nil, []byte("<html>login</html>")))
	c, _ := newTestClient(t, mux)

	resp, err := c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserResult})
	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
	assert.True(t, resp.IsRedirect())
	assert.Equal(t, "/user/login", resp.Header.Get("Location"))

	resp, err = c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserResult, FollowRedirects: true})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "<html>login</html>", string(resp.Body))
}

func TestSessionKeepsCookiesBetweenRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/user"})
		w.WriteHeader(200)
	})
	mux.HandleFunc("/user/auth/result", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "abc" {
			w.WriteHeader(401)
			return
		}
		w.WriteHeader(200)
	})
	c, _ := newTestClient(t, mux)

	session, err := c.NewSession(nil)
	require.NoError(t, err)
	defer session.Close()

	resp, err := c.Send(context.Background(), session, Request{Endpoint: servicedef.EndpointUserLogin})
	require.NoError(t, err)
	require.NotNil(t, resp.Cookie("token"))
	assert.Equal(t, "abc", resp.Cookie("token").Value)

	value, ok := session.Cookie("/user", "token")
	assert.True(t, ok)
	assert.Equal(t, "abc", value)
	_, ok = session.Cookie("/admin", "token")
	assert.False(t, ok, "cookie is scoped to /user")

	resp, err = c.Send(context.Background(), session, Request{Endpoint: servicedef.EndpointUserResult})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserResult})
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode, "anonymous requests carry no cookies")
}

func TestSessionsDoNotShareCookies(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
	}))

	s1, err := c.NewSession(nil)
	require.NoError(t, err)
	defer s1.Close()
	s2, err := c.NewSession(nil)
	require.NoError(t, err)
	defer s2.Close()

	_, err = c.Send(context.Background(), s1, Request{Path: "/"})
	require.NoError(t, err)

	_, ok := s1.Cookie("/", "token")
	assert.True(t, ok)
	_, ok = s2.Cookie("/", "token")
	assert.False(t, ok)
	assert.NotEqual(t, s1.ID(), s2.ID())
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	c, _ := newTestClient(t, httphelpers.HandlerWithStatus(200))
	session, err := c.NewSession(nil)
	require.NoError(t, err)
	session.Close()
	session.Close()
}

func TestResponseJSON(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(400, `{"status":400,"data":null,"msg":"参数错误","error":"无效参数","extra":1}`, nil))

	resp, err := c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserResult})
	require.NoError(t, err)

	env, err := resp.JSON()
	require.NoError(t, err)
	assert.Equal(t, 400, env.Status)
	assert.Equal(t, "无效参数", env.Error)
	assert.Equal(t, "参数错误", env.Msg)
	assert.True(t, env.Has("msg"))
	assert.True(t, env.Has("extra"))
	assert.False(t, env.Has("missing"))
}

func TestResponseJSONParseError(t *testing.T) {
	c, _ := newTestClient(t, httphelpers.HandlerWithResponse(400, nil, []byte("400 Bad Request")))

	resp, err := c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserLogin})
	require.NoError(t, err)

	_, err = resp.JSON()
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 400, parseErr.StatusCode)
	assert.Equal(t, "400 Bad Request", string(parseErr.Body))
}

func TestParseErrorTruncatesLongBodyOnCharacterBoundary(t *testing.T) {
	body := "x" + strings.Repeat("参数错误", 100)
	err := &ParseError{StatusCode: 400, Body: []byte(body), Err: errors.New("bad")}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg), "message should be valid UTF-8: %q", msg)
	assert.Contains(t, msg, `..."`)
	assert.NotContains(t, msg, `\x`, "no character should be split")
}

func TestResponseJSONRejectsNonObject(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `[1,2]`, nil))

	resp, err := c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointUserLogin})
	require.NoError(t, err)

	_, err = resp.JSON()
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestSendLogsCurlCommand(t *testing.T) {
	c, logger := newTestClient(t, jsonHandler(200, `{"status":200}`, nil))

	_, err := c.Send(context.Background(), nil, Request{
		Endpoint: servicedef.EndpointUserForget,
		Payload:  servicedef.ForgetParams{Param: "a@b.cn", TestMode: true},
	})
	require.NoError(t, err)

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Contains(t, output[0].Message, "curl -i -X POST -H 'Content-Type: application/json'")
	assert.Contains(t, output[0].Message, `--data-raw '{"param":"a@b.cn","test_mode":true}'`)
	assert.Contains(t, output[0].Message, "/user/forget")
	assert.Equal(t, `<< 200 {"status":200}`, output[1].Message)
}

func TestSendFailsWhenServiceIsUnreachable(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	cfg, err := config.Default(server.URL)
	require.NoError(t, err)
	server.Close()

	c := NewClient(cfg, nil)
	_, err = c.Send(context.Background(), nil, Request{Endpoint: servicedef.EndpointPing})
	assert.Error(t, err)
}

func TestSendHonorsContextCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = io.WriteString(w, "late")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Send(ctx, nil, Request{Endpoint: servicedef.EndpointPing})
	assert.ErrorIs(t, err, context.Canceled)
}
