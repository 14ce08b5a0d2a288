// Package stubservice is an in-memory implementation of the interview service. It keeps
// the contract the suite checks, from the dual-status envelope to the exact error
// messages, so that the harness can be run and tested without the real backend.
package stubservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/gin-gonic/gin"
)

// Options configures a Service. The zero value is usable.
type Options struct {
	// Fixtures is the seed data. Zero means config.DefaultFixtures.
	Fixtures config.Fixtures
	// Endpoints maps logical endpoint names to paths. Nil means
	// servicedef.DefaultEndpointPaths.
	Endpoints map[servicedef.EndpointName]string
	// JWTSecret signs token cookies. If empty a random secret is generated.
	JWTSecret []byte
	// LogOutput receives one access log line per request. Nil disables access logging.
	LogOutput io.Writer
	// RedirectUnauthenticated answers calls to protected endpoints that lack a valid
	// token with a 302 to the login page. Otherwise the login prompt page is served
	// directly with a 200, as the real service does.
	RedirectUnauthenticated bool
}

// Service is the stub backend. It is an http.Handler.
type Service struct {
	store     *store
	tokens    *tokenIssuer
	fixtures  config.Fixtures
	endpoints map[servicedef.EndpointName]string
	redirect  bool
	router    *gin.Engine
}

// envelope is the body of every JSON response.
type envelope struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
	Msg    string      `json:"msg"`
	Error  string      `json:"error"`
}

// New creates a Service seeded with opts.Fixtures.
func New(opts Options) (*Service, error) {
	fixtures := opts.Fixtures
	if fixtures == (config.Fixtures{}) {
		fixtures = config.DefaultFixtures
	}
	endpoints := opts.Endpoints
	if endpoints == nil {
		endpoints = servicedef.DefaultEndpointPaths
	}
	st, err := newStore(fixtures)
	if err != nil {
		return nil, err
	}
	tokens, err := newTokenIssuer(opts.JWTSecret)
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:     st,
		tokens:    tokens,
		fixtures:  fixtures,
		endpoints: endpoints,
		redirect:  opts.RedirectUnauthenticated,
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	if opts.LogOutput != nil {
		s.router.Use(gin.LoggerWithWriter(opts.LogOutput))
	}
	s.routes()
	return s, nil
}

func (s *Service) path(name servicedef.EndpointName) string {
	return s.endpoints[name]
}

func (s *Service) routes() {
	r := s.router
	r.GET(s.path(servicedef.EndpointPing), s.handlePing)

	r.GET(s.path(servicedef.EndpointAdminLogin), loginPage("admin"))
	r.POST(s.path(servicedef.EndpointAdminLogin), s.handleAdminLogin)
	adminAuth := s.requireToken(roleAdmin)
	r.POST(s.path(servicedef.EndpointAdminPostEmail), adminAuth, s.handlePostEmail)
	r.POST(s.path(servicedef.EndpointAdminSetPass), adminAuth, s.handleSetPass)
	r.POST(s.path(servicedef.EndpointAdminSetResult), adminAuth, s.handleSetResult)
	r.POST(s.path(servicedef.EndpointAdminSetSchedule), adminAuth, s.handleSetSchedule)

	r.GET(s.path(servicedef.EndpointUserLogin), loginPage("user"))
	r.POST(s.path(servicedef.EndpointUserLogin), s.handleUserLogin)
	r.POST(s.path(servicedef.EndpointUserRegister), s.handleRegister)
	r.POST(s.path(servicedef.EndpointUserForget), s.handleForget)
	r.POST(s.path(servicedef.EndpointUserResetPassword), s.handleResetPassword)
	userAuth := s.requireToken(roleUser)
	r.POST(s.path(servicedef.EndpointUserResult), userAuth, s.handleResult)
	r.POST(s.path(servicedef.EndpointUserSignup), userAuth, s.handleSignup)
	r.POST(s.path(servicedef.EndpointUserUpdate), userAuth, s.handleUpdate)
	r.POST(s.path(servicedef.EndpointUserConversation), userAuth, s.handleConversation)
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mails returns every mail the service would have sent so far.
func (s *Service) Mails() []Mail {
	s.store.lock.Lock()
	defer s.store.lock.Unlock()
	return append([]Mail(nil), s.store.mails...)
}

// LetterCount returns how many messages users have sent to administrators.
func (s *Service) LetterCount() int {
	s.store.lock.Lock()
	defer s.store.lock.Unlock()
	return len(s.store.letters)
}

func (s *Service) handlePing(c *gin.Context) {
	ok(c, "pong")
}

func loginPage(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeLoginPage(c, role, "")
	}
}

func writeLoginPage(c *gin.Context, role, redirect string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(
		`<!DOCTYPE html><html><body><form id="%s-login" data-redirect="%s"></form></body></html>`,
		role, html.EscapeString(redirect))))
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Status: servicedef.StatusOK, Data: data, Msg: servicedef.MsgTextSuccess})
}

// reject sends a 400 response whose business status is also 400. message must not be
// empty.
func reject(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Status: servicedef.StatusBadRequest, Msg: servicedef.MsgTextFailure, Error: message})
}

// bind decodes the JSON body into obj, rejecting the request if that fails. It reports
// whether the handler should continue.
func bind(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	msg := servicedef.MsgTextFailure
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		msg = servicedef.MsgTextTypeMismatch
	}
	c.JSON(http.StatusBadRequest, envelope{Status: servicedef.StatusBadRequest, Msg: msg, Error: err.Error()})
	return false
}
