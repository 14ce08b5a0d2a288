// Package actions has one function per operation of the interview service. Each builds
// the request for the operation from typed parameters and sends it, returning the raw
// response. None of them assert anything, so the same action serves both positive and
// negative test cases.
package actions

import (
	"context"
	"net/http"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"
)

func post(endpoint servicedef.EndpointName, payload interface{}) client.Request {
	return client.Request{Method: http.MethodPost, Endpoint: endpoint, Payload: payload}
}

// PingRequest is the readiness probe. It is the only GET in the catalog.
func PingRequest() client.Request {
	return client.Request{Method: http.MethodGet, Endpoint: servicedef.EndpointPing}
}

func Ping(ctx context.Context, c *client.Client) (*client.Response, error) {
	return c.Send(ctx, nil, PingRequest())
}

// RawRequest posts body to an endpoint unchanged, for cases where the body must not be
// valid JSON or must leave out fields the parameter types always send.
func RawRequest(endpoint servicedef.EndpointName, body []byte) client.Request {
	return client.Request{Method: http.MethodPost, Endpoint: endpoint, RawBody: body}
}

func SendRaw(
	ctx context.Context, c *client.Client, s *client.Session, endpoint servicedef.EndpointName, body []byte,
) (*client.Response, error) {
	return c.Send(ctx, s, RawRequest(endpoint, body))
}
