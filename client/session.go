package client

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/acat-interview/interview-contract-tests/framework"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// Session is the cookie-bearing state of one test: the token cookie set by a login is
// sent with every later request made through the same Session. Sessions are never
// shared between tests, and must be closed when the test ends.
type Session struct {
	id        string
	baseURL   string
	jar       *cookiejar.Jar
	transport *http.Transport
	logger    framework.Logger
	closed    bool
	lock      sync.Mutex
}

// NewSession creates an empty Session. Its requests are logged to logger, prefixed with
// the session ID.
func (c *Client) NewSession(logger framework.Logger) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = c.logger
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		baseURL:   c.cfg.BaseURL(),
		jar:       jar,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
		logger:    framework.PrefixedLogger("[session "+id[:8]+"] ", logger),
	}, nil
}

// ID returns a unique identifier for the session, used in log output.
func (s *Session) ID() string {
	return s.id
}

// Cookie returns the value of a cookie that the session would send with a request to
// the given path.
func (s *Session) Cookie(path, name string) (string, bool) {
	u, err := url.Parse(s.baseURL + path)
	if err != nil {
		return "", false
	}
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Close releases the session's connections. It is safe to call more than once.
func (s *Session) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.transport.CloseIdleConnections()
	s.logger.Printf("closed")
}
