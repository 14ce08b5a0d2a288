package actions

import (
	"context"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"
)

func AdminLoginRequest(p servicedef.LoginParams) client.Request {
	return post(servicedef.EndpointAdminLogin, p)
}

// AdminLogin logs in as an administrator. On success the service sets the token cookie
// with path servicedef.AdminCookiePath.
func AdminLogin(ctx context.Context, c *client.Client, s *client.Session, p servicedef.LoginParams) (*client.Response, error) {
	return c.Send(ctx, s, AdminLoginRequest(p))
}

func PostEmailRequest(p servicedef.PostEmailParams) client.Request {
	return post(servicedef.EndpointAdminPostEmail, p)
}

// PostEmail mails a result notice to a candidate. Set TestMode to keep the service from
// actually sending mail.
func PostEmail(ctx context.Context, c *client.Client, s *client.Session, p servicedef.PostEmailParams) (*client.Response, error) {
	return c.Send(ctx, s, PostEmailRequest(p))
}

func SetPassRequest(p servicedef.SetPassParams) client.Request {
	return post(servicedef.EndpointAdminSetPass, p)
}

func SetPass(ctx context.Context, c *client.Client, s *client.Session, p servicedef.SetPassParams) (*client.Response, error) {
	return c.Send(ctx, s, SetPassRequest(p))
}

func SetResultRequest(p servicedef.SetResultParams) client.Request {
	return post(servicedef.EndpointAdminSetResult, p)
}

func SetResult(ctx context.Context, c *client.Client, s *client.Session, p servicedef.SetResultParams) (*client.Response, error) {
	return c.Send(ctx, s, SetResultRequest(p))
}

func SetScheduleRequest(p servicedef.SetScheduleParams) client.Request {
	return post(servicedef.EndpointAdminSetSchedule, p)
}

func SetSchedule(
	ctx context.Context, c *client.Client, s *client.Session, p servicedef.SetScheduleParams,
) (*client.Response, error) {
	return c.Send(ctx, s, SetScheduleRequest(p))
}
