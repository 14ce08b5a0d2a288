package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/acat-interview/interview-contract-tests/servicedef"
)

// Response is a fully read response from the service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	cookies []*http.Cookie
}

const maxParseErrorBody = 200

// ParseError is returned by Response.JSON when the body is not a JSON envelope.
type ParseError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ParseError) Error() string {
	body := string(e.Body)
	if len(body) > maxParseErrorBody {
		cut := maxParseErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return fmt.Sprintf("response with status %d is not a JSON envelope (%s): %q", e.StatusCode, e.Err, body)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// JSON decodes the body as a service envelope. Only call it where the contract
// guarantees one.
func (r *Response) JSON() (servicedef.Envelope, error) {
	var env servicedef.Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return servicedef.Envelope{}, &ParseError{StatusCode: r.StatusCode, Body: r.Body, Err: err}
	}
	return env, nil
}

// Cookie returns a cookie set by this response, or nil.
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Cookies returns every cookie set by this response.
func (r *Response) Cookies() []*http.Cookie {
	return append([]*http.Cookie(nil), r.cookies...)
}

// IsRedirect reports whether the response is a 3xx redirect.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}
