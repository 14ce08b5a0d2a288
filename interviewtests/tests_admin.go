package interviewtests

import (
	"github.com/acat-interview/interview-contract-tests/actions"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validScheduleStart = "2025-12-14T17:45"
	validScheduleEnd   = "2025-12-14T18:45"
)

func DoAdminLoginTests(t *T) {
	f := t.Fixtures()

	t.RunParallel("success", func(t *T) {
		resp := t.RequireResponse(actions.AdminLogin(t.Ctx(), t.Client(), nil,
			servicedef.LoginParams{Phone: f.AdminPhone, Password: f.AdminPassword}))
		RequireOK(t, resp)
		assert.NotNil(t, resp.Cookie(servicedef.TokenCookieName), "token cookie should have been set")
	})

	for name, params := range map[string]servicedef.LoginParams{
		"wrong password": {Phone: f.AdminPhone, Password: "1"},
		"unknown phone":  {Phone: "11111111111", Password: f.AdminPassword},
	} {
		params := params
		t.RunParallel(name, func(t *T) {
			resp := t.RequireResponse(actions.AdminLogin(t.Ctx(), t.Client(), nil, params))
			RequireRejectedWithAnyMessage(t, resp)
			AssertNoTokenCookie(t, resp)
		})
	}

	for name, body := range map[string]string{
		"missing phone":    `{"password":"123456"}`,
		"missing password": `{"phone":"13800138000"}`,
		"empty body":       `{}`,
		"invalid JSON":     `not a json`,
	} {
		body := body
		t.RunParallel(name, func(t *T) {
			resp := t.RequireResponse(actions.SendRaw(t.Ctx(), t.Client(), nil, servicedef.EndpointAdminLogin, []byte(body)))
			RequireBadRequest(t, resp)
			AssertNoTokenCookie(t, resp)
		})
	}
}

func DoPostEmailTests(t *T) {
	f := t.Fixtures()
	params := func(userID int) servicedef.PostEmailParams {
		return servicedef.PostEmailParams{
			UserID:    userID,
			Name:      f.UserName,
			Round:     servicedef.RoundFirst,
			Email:     f.UserEmail,
			Customize: true,
			Content:   "测试",
			TestMode:  true,
		}
	}

	t.RunParallel("success", func(t *T) {
		s := t.AdminSession()
		RequireOK(t, t.RequireResponse(actions.PostEmail(t.Ctx(), t.Client(), s, params(f.CandidateUserID))))
	})

	t.RunParallel("unknown user", func(t *T) {
		s := t.AdminSession()
		resp := t.RequireResponse(actions.PostEmail(t.Ctx(), t.Client(), s, params(f.UnknownUserID)))
		RequireRejected(t, resp, servicedef.MsgUserNotFound)
	})
}

func DoSetPassTests(t *T) {
	f := t.Fixtures()
	params := func(round, flag int) servicedef.SetPassParams {
		return servicedef.SetPassParams{
			UserID: f.CandidateUserID,
			SlotID: f.PassSlotID,
			Round:  round,
			IsPass: ldvalue.NewOptionalInt(flag),
		}
	}

	t.Run("success", func(t *T) {
		s := t.AdminSession()
		resp := t.RequireResponse(actions.SetPass(t.Ctx(), t.Client(), s, params(servicedef.RoundFirst, servicedef.PassFlagPassed)))
		RequireOK(t, resp)
	})

	t.Run("second round is blocked after failing the first", func(t *T) {
		s := t.AdminSession()
		t.Defer(func() {
			resp, err := actions.SetPass(t.Ctx(), t.Client(), s, params(servicedef.RoundFirst, servicedef.PassFlagPassed))
			if assert.NoError(t, err) {
				assert.Equal(t, servicedef.StatusOK, resp.StatusCode, "could not restore first round result")
			}
		})

		resp := t.RequireResponse(actions.SetPass(t.Ctx(), t.Client(), s, params(servicedef.RoundFirst, servicedef.PassFlagFailed)))
		RequireOK(t, resp)
		resp = t.RequireResponse(actions.SetPass(t.Ctx(), t.Client(), s, params(servicedef.RoundSecond, servicedef.PassFlagPassed)))
		RequireRejected(t, resp, servicedef.MsgSecondRoundBlocked)
	})

	for _, p := range []struct {
		name   string
		modify func(*servicedef.SetPassParams)
	}{
		{"unknown user", func(p *servicedef.SetPassParams) { p.UserID = -1 }},
		{"unknown slot", func(p *servicedef.SetPassParams) { p.SlotID = -1 }},
		{"round out of range", func(p *servicedef.SetPassParams) { p.Round = 3 }},
		{"pass flag out of range", func(p *servicedef.SetPassParams) { p.IsPass = ldvalue.NewOptionalInt(3) }},
	} {
		p := p
		t.RunParallel(p.name, func(t *T) {
			s := t.AdminSession()
			req := params(servicedef.RoundFirst, servicedef.PassFlagPassed)
			p.modify(&req)
			RequireRejectedWithAnyMessage(t, t.RequireResponse(actions.SetPass(t.Ctx(), t.Client(), s, req)))
		})
	}

	t.RunParallel("missing pass flag", func(t *T) {
		s := t.AdminSession()
		req := params(servicedef.RoundFirst, servicedef.PassFlagPassed)
		req.IsPass = ldvalue.OptionalInt{}
		RequireBadRequest(t, t.RequireResponse(actions.SetPass(t.Ctx(), t.Client(), s, req)))
	})
}

func DoSetResultTests(t *T) {
	f := t.Fixtures()

	t.RunParallel("success", func(t *T) {
		s := t.AdminSession()
		resp := t.RequireResponse(actions.SetResult(t.Ctx(), t.Client(), s,
			servicedef.SetResultParams{SlotID: f.ResultSlotID, Round: servicedef.RoundSecond}))
		RequireOK(t, resp)
	})

	t.RunParallel("round out of range", func(t *T) {
		s := t.AdminSession()
		resp := t.RequireResponse(actions.SetResult(t.Ctx(), t.Client(), s,
			servicedef.SetResultParams{SlotID: f.ResultSlotID, Round: 3}))
		RequireRejectedWithAnyMessage(t, resp)
	})

	t.RunParallel("unknown slot", func(t *T) {
		s := t.AdminSession()
		resp := t.RequireResponse(actions.SetResult(t.Ctx(), t.Client(), s,
			servicedef.SetResultParams{SlotID: 0, Round: servicedef.RoundSecond}))
		RequireRejectedWithAnyMessage(t, resp)
	})
}

func DoSetScheduleTests(t *T) {
	valid := servicedef.SetScheduleParams{
		StartTime: validScheduleStart,
		EndTime:   validScheduleEnd,
		MaxNum:    50,
		Round:     servicedef.RoundFirst,
	}

	t.RunParallel("success", func(t *T) {
		s := t.AdminSession()
		env := RequireOK(t, t.RequireResponse(actions.SetSchedule(t.Ctx(), t.Client(), s, valid)))
		assert.True(t, env.Has("msg"), "response should have a msg field")
	})

	for _, p := range []struct {
		name   string
		modify func(*servicedef.SetScheduleParams)
	}{
		{"round below range", func(p *servicedef.SetScheduleParams) { p.Round = 0 }},
		{"round above range", func(p *servicedef.SetScheduleParams) { p.Round = 3 }},
		{"capacity below range", func(p *servicedef.SetScheduleParams) { p.MaxNum = servicedef.MinSlotCapacity - 1 }},
		{"capacity above range", func(p *servicedef.SetScheduleParams) { p.MaxNum = servicedef.MaxSlotCapacity + 1 }},
		{"start after end", func(p *servicedef.SetScheduleParams) {
			p.StartTime, p.EndTime = "2025-12-14T19:00", "2025-12-14T18:00"
		}},
		{"start equal to end", func(p *servicedef.SetScheduleParams) { p.EndTime = p.StartTime }},
	} {
		p := p
		t.RunParallel(p.name, func(t *T) {
			s := t.AdminSession()
			req := valid
			p.modify(&req)
			require.NotEqual(t, valid, req)
			RequireRejectedWithAnyMessage(t, t.RequireResponse(actions.SetSchedule(t.Ctx(), t.Client(), s, req)))
		})
	}
}
