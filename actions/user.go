package actions

import (
	"context"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/servicedef"
)

func UserLoginRequest(p servicedef.LoginParams) client.Request {
	return post(servicedef.EndpointUserLogin, p)
}

// UserLogin logs in as a user. On success the service sets the token cookie with path
// servicedef.UserCookiePath.
func UserLogin(ctx context.Context, c *client.Client, s *client.Session, p servicedef.LoginParams) (*client.Response, error) {
	return c.Send(ctx, s, UserLoginRequest(p))
}

func RegisterRequest(p servicedef.RegisterParams) client.Request {
	return post(servicedef.EndpointUserRegister, p)
}

func Register(ctx context.Context, c *client.Client, s *client.Session, p servicedef.RegisterParams) (*client.Response, error) {
	return c.Send(ctx, s, RegisterRequest(p))
}

func ForgetRequest(p servicedef.ForgetParams) client.Request {
	return post(servicedef.EndpointUserForget, p)
}

// Forget asks for a password reset code. With TestMode set, the service returns the
// code in the envelope's data instead of mailing it.
func Forget(ctx context.Context, c *client.Client, s *client.Session, p servicedef.ForgetParams) (*client.Response, error) {
	return c.Send(ctx, s, ForgetRequest(p))
}

func ResetPasswordRequest(p servicedef.ResetPasswordParams) client.Request {
	return post(servicedef.EndpointUserResetPassword, p)
}

func ResetPassword(
	ctx context.Context, c *client.Client, s *client.Session, p servicedef.ResetPasswordParams,
) (*client.Response, error) {
	return c.Send(ctx, s, ResetPasswordRequest(p))
}

func ResultRequest(p servicedef.ResultParams) client.Request {
	return post(servicedef.EndpointUserResult, p)
}

func Result(ctx context.Context, c *client.Client, s *client.Session, p servicedef.ResultParams) (*client.Response, error) {
	return c.Send(ctx, s, ResultRequest(p))
}

func SignupRequest(p servicedef.SignupParams) client.Request {
	return post(servicedef.EndpointUserSignup, p)
}

func Signup(ctx context.Context, c *client.Client, s *client.Session, p servicedef.SignupParams) (*client.Response, error) {
	return c.Send(ctx, s, SignupRequest(p))
}

func UpdateRequest(p servicedef.UpdateParams) client.Request {
	return post(servicedef.EndpointUserUpdate, p)
}

// Update moves the caller's booking to another slot, or cancels it.
func Update(ctx context.Context, c *client.Client, s *client.Session, p servicedef.UpdateParams) (*client.Response, error) {
	return c.Send(ctx, s, UpdateRequest(p))
}

func ConversationRequest(p servicedef.ConversationParams) client.Request {
	return post(servicedef.EndpointUserConversation, p)
}

func Conversation(
	ctx context.Context, c *client.Client, s *client.Session, p servicedef.ConversationParams,
) (*client.Response, error) {
	return c.Send(ctx, s, ConversationRequest(p))
}
