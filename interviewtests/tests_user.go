package interviewtests

import (
	"fmt"
	"strings"

	"github.com/acat-interview/interview-contract-tests/actions"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoUserLoginTests(t *T) {
	f := t.Fixtures()

	t.RunParallel("success", func(t *T) {
		resp := t.RequireResponse(actions.UserLogin(t.Ctx(), t.Client(), nil,
			servicedef.LoginParams{Phone: f.UserPhone, Password: f.UserPassword}))
		RequireOK(t, resp)
		cookie := resp.Cookie(servicedef.TokenCookieName)
		require.NotNil(t, cookie, "token cookie should have been set")
		assert.Equal(t, servicedef.UserCookiePath, cookie.Path)
	})

	for _, p := range []struct {
		name    string
		params  servicedef.LoginParams
		message string
	}{
		{"unknown phone", servicedef.LoginParams{Phone: "15229377777", Password: f.UserPassword}, servicedef.MsgBadCredentials},
		{"wrong password", servicedef.LoginParams{Phone: f.UserPhone, Password: "1"}, servicedef.MsgBadCredentials},
		{"malformed phone", servicedef.LoginParams{Phone: "1", Password: f.UserPassword}, servicedef.MsgMalformedParam},
		{"missing phone", servicedef.LoginParams{Password: f.UserPassword}, servicedef.MsgMissingRequiredField},
	} {
		p := p
		t.RunParallel(p.name, func(t *T) {
			resp := t.RequireResponse(actions.UserLogin(t.Ctx(), t.Client(), nil, p.params))
			RequireRejected(t, resp, p.message)
			AssertNoTokenCookie(t, resp)
		})
	}

	t.RunParallel("invalid JSON", func(t *T) {
		resp := t.RequireResponse(actions.SendRaw(t.Ctx(), t.Client(), nil, servicedef.EndpointUserLogin, []byte(`{"phone":`)))
		RequireBadRequest(t, resp)
		AssertNoTokenCookie(t, resp)
	})
}

func DoRegisterTests(t *T) {
	f := t.Fixtures()
	valid := servicedef.RegisterParams{
		Name:       "测试用户",
		Phone:      f.RegisterPhone,
		Password:   "123456",
		RePassword: "123456",
		Email:      f.RegisterEmail,
		StuID:      "2400413001",
		Gender:     1,
		Direction:  servicedef.DirectionGo,
	}

	t.Run("success", func(t *T) {
		env := RequireOK(t, t.RequireResponse(actions.Register(t.Ctx(), t.Client(), nil, valid)))
		assert.True(t, env.Data.GetByKey("uid").IsInt(), "data should carry the new user ID: %s", env)
	})

	for _, p := range []struct {
		name    string
		modify  func(*servicedef.RegisterParams)
		message string
	}{
		{"missing email", func(p *servicedef.RegisterParams) { p.Email = "" }, servicedef.MsgMissingRequiredField},
		{"password mismatch", func(p *servicedef.RegisterParams) { p.RePassword = "1234567" }, servicedef.MsgRegisterPasswordMismatch},
		{"malformed phone", func(p *servicedef.RegisterParams) { p.Phone = "1" }, servicedef.MsgRegisterMalformed},
		{"malformed email", func(p *servicedef.RegisterParams) { p.Email = "2998759818qq.com" }, servicedef.MsgRegisterMalformed},
		{"phone already registered", func(p *servicedef.RegisterParams) {
			p.Phone = f.UserPhone
			p.Email = "someone.else@example.com"
		}, servicedef.MsgRegisterPhoneExists},
	} {
		p := p
		t.RunParallel(p.name, func(t *T) {
			req := valid
			p.modify(&req)
			RequireRejected(t, t.RequireResponse(actions.Register(t.Ctx(), t.Client(), nil, req)), p.message)
		})
	}
}

func DoForgetTests(t *T) {
	f := t.Fixtures()

	t.RunParallel("success", func(t *T) {
		env := RequireOK(t, t.RequireResponse(actions.Forget(t.Ctx(), t.Client(), nil,
			servicedef.ForgetParams{Param: f.UserEmail, TestMode: true})))
		assert.NotEqual(t, "", env.DataString(), "test mode should return the code")
	})

	t.RunParallel("empty account", func(t *T) {
		resp := t.RequireResponse(actions.Forget(t.Ctx(), t.Client(), nil, servicedef.ForgetParams{TestMode: true}))
		RequireRejected(t, resp, servicedef.MsgForgetEmptyParam)
	})

	t.RunParallel("account is not an email", func(t *T) {
		resp := t.RequireResponse(actions.Forget(t.Ctx(), t.Client(), nil,
			servicedef.ForgetParams{Param: f.UserPhone, TestMode: true}))
		RequireRejected(t, resp, servicedef.MsgInvalidParam)
	})
}

// requestResetCode asks for a reset code in test mode, so that the code comes back in
// the response.
func requestResetCode(t *T, account string) string {
	env := RequireOK(t, t.RequireResponse(actions.Forget(t.Ctx(), t.Client(), nil,
		servicedef.ForgetParams{Param: account, TestMode: true})))
	code := env.DataString()
	require.NotEqual(t, "", code, "no reset code returned for %s", account)
	return code
}

// Reset codes are per account, so these run one at a time.
func DoResetPasswordTests(t *T) {
	f := t.Fixtures()

	t.Run("success", func(t *T) {
		code := requestResetCode(t, f.UserEmail)
		RequireOK(t, t.RequireResponse(actions.ResetPassword(t.Ctx(), t.Client(), nil,
			servicedef.ResetPasswordParams{Account: f.UserEmail, NewPassword: f.UserPassword, Code: code})))
	})

	for _, p := range []struct {
		name    string
		modify  func(*servicedef.ResetPasswordParams)
		message string
	}{
		{"account is not an email", func(p *servicedef.ResetPasswordParams) { p.Account = "2998759818qq.com" }, servicedef.MsgResetBadAccount},
		{"empty account", func(p *servicedef.ResetPasswordParams) { p.Account = "" }, servicedef.MsgResetMissingParam},
		{"wrong code", func(p *servicedef.ResetPasswordParams) { p.Code = "1" }, servicedef.MsgResetCodeMismatch},
	} {
		p := p
		t.Run(p.name, func(t *T) {
			req := servicedef.ResetPasswordParams{
				Account:     f.UserEmail,
				NewPassword: f.UserPassword,
				Code:        requestResetCode(t, f.UserEmail),
			}
			p.modify(&req)
			RequireRejected(t, t.RequireResponse(actions.ResetPassword(t.Ctx(), t.Client(), nil, req)), p.message)
		})
	}
}

func DoResultTests(t *T) {
	t.RunParallel("success", func(t *T) {
		s := t.UserSession()
		env := RequireOK(t, t.RequireResponse(actions.Result(t.Ctx(), t.Client(), s,
			servicedef.ResultParams{Round: servicedef.RoundFirst})))
		assert.NotEqual(t, "", env.DataString(), "result should be described in data")
	})

	for _, round := range []int{0, 3} {
		round := round
		t.RunParallel(fmt.Sprintf("round %d", round), func(t *T) {
			s := t.UserSession()
			resp := t.RequireResponse(actions.Result(t.Ctx(), t.Client(), s, servicedef.ResultParams{Round: round}))
			RequireRejected(t, resp, servicedef.MsgInvalidParam)
		})
	}
}

// The seeded user has at most one booking, so every step here depends on the one before.
// Each step still logs in on its own session: the booking belongs to the user, not to
// the session.
func DoSignupAndUpdateTests(t *T) {
	f := t.Fixtures()
	signup := func(slotID int) servicedef.SignupParams {
		return servicedef.SignupParams{Name: f.UserName, Direction: servicedef.DirectionGo, SlotID: slotID}
	}
	update := func(slotID, isDelete int) servicedef.UpdateParams {
		return servicedef.UpdateParams{Name: f.UserName, Direction: servicedef.DirectionGo, SlotID: slotID, IsDelete: isDelete}
	}

	t.Run("cancel any existing booking", func(t *T) {
		s := t.UserSession()
		RequireOK(t, t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(f.SignupSlotID, 1))))
	})

	t.Run("signup for unknown slot", func(t *T) {
		s := t.UserSession()
		resp := t.RequireResponse(actions.Signup(t.Ctx(), t.Client(), s, signup(0)))
		RequireRejected(t, resp, servicedef.MsgSignupSlotNotFound)
	})

	t.Run("signup", func(t *T) {
		s := t.UserSession()
		RequireOK(t, t.RequireResponse(actions.Signup(t.Ctx(), t.Client(), s, signup(f.SignupSlotID))))
	})

	t.Run("signup again", func(t *T) {
		s := t.UserSession()
		resp := t.RequireResponse(actions.Signup(t.Ctx(), t.Client(), s, signup(f.SignupSlotID)))
		RequireRejected(t, resp, servicedef.MsgSignupAlreadyBooked)
	})

	t.Run("update", func(t *T) {
		s := t.UserSession()
		RequireOK(t, t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(f.SignupSlotID, 0))))
	})

	t.Run("update is idempotent", func(t *T) {
		s := t.UserSession()
		first := t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(f.SignupSlotID, 0)))
		second := t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(f.SignupSlotID, 0)))
		firstEnv, secondEnv := RequireEnvelope(t, first), RequireEnvelope(t, second)
		assert.Equal(t, first.StatusCode, second.StatusCode, "transport status")
		assert.Equal(t, firstEnv.Status, secondEnv.Status, "business status")
		assert.Equal(t, firstEnv.Error, secondEnv.Error, "error message")
	})

	t.Run("update to unknown slot", func(t *T) {
		s := t.UserSession()
		resp := t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(0, 0)))
		RequireRejected(t, resp, servicedef.MsgUpdateSlotNotFound)
	})

	t.Run("cancel", func(t *T) {
		s := t.UserSession()
		RequireOK(t, t.RequireResponse(actions.Update(t.Ctx(), t.Client(), s, update(f.SignupSlotID, 1))))
	})
}

func DoConversationTests(t *T) {
	f := t.Fixtures()
	params := func(title, content string) servicedef.ConversationParams {
		return servicedef.ConversationParams{ReceiveID: f.AdminID, Title: title, Content: content}
	}

	t.RunParallel("success", func(t *T) {
		s := t.UserSession()
		content := strings.Repeat("字", servicedef.MaxConversationContentLength)
		RequireOK(t, t.RequireResponse(actions.Conversation(t.Ctx(), t.Client(), s, params("测试", content))))
	})

	t.RunParallel("missing title", func(t *T) {
		s := t.UserSession()
		resp := t.RequireResponse(actions.Conversation(t.Ctx(), t.Client(), s, params("", "测试")))
		RequireRejected(t, resp, servicedef.MsgConversationNoTitle)
	})

	t.RunParallel("content too long", func(t *T) {
		s := t.UserSession()
		content := strings.Repeat("字", servicedef.MaxConversationContentLength+1)
		resp := t.RequireResponse(actions.Conversation(t.Ctx(), t.Client(), s, params("测试", content)))
		RequireRejected(t, resp, servicedef.MsgConversationTooLong)
	})
}
