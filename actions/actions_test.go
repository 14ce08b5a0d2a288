package actions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionFunc func(context.Context, *client.Client, *client.Session) (*client.Response, error)

func TestActionsSendExpectedRequests(t *testing.T) {
	for _, p := range []struct {
		name   string
		action actionFunc
		path   string
		body   string
	}{
		{
			"admin login",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return AdminLogin(ctx, c, s, servicedef.LoginParams{Phone: "15229300775", Password: "123456"})
			},
			"/admin_login",
			`{"phone":"15229300775","password":"123456"}`,
		},
		{
			"post email",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return PostEmail(ctx, c, s, servicedef.PostEmailParams{
					UserID: 10, Name: "张皓翔", Round: 1, Email: "2998759818@qq.com", Content: "测试", TestMode: true,
				})
			},
			"/admin/postemail",
			`{"user_id":10,"name":"张皓翔","round":1,"email":"2998759818@qq.com","customize":false,"content":"测试","test_mode":true}`,
		},
		{
			"set pass",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return SetPass(ctx, c, s, servicedef.SetPassParams{
					UserID: 10, SlotID: 6, Round: 1, IsPass: ldvalue.NewOptionalInt(servicedef.PassFlagFailed),
				})
			},
			"/admin/setpass",
			`{"user_id":10,"slot_id":6,"round":1,"is_pass":0}`,
		},
		{
			"set pass without flag",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return SetPass(ctx, c, s, servicedef.SetPassParams{UserID: 10, SlotID: 6, Round: 1})
			},
			"/admin/setpass",
			`{"user_id":10,"slot_id":6,"round":1,"is_pass":null}`,
		},
		{
			"set result",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return SetResult(ctx, c, s, servicedef.SetResultParams{SlotID: 4, Round: 2})
			},
			"/admin/setresult",
			`{"slot_id":4,"round":2}`,
		},
		{
			"set schedule",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return SetSchedule(ctx, c, s, servicedef.SetScheduleParams{
					StartTime: "2025-12-14T17:45", EndTime: "2025-12-14T18:45", MaxNum: 50, Round: 1,
				})
			},
			"/admin/settimetable",
			`{"start_time":"2025-12-14T17:45","end_time":"2025-12-14T18:45","max_num":50,"round":1}`,
		},
		{
			"user login",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return UserLogin(ctx, c, s, servicedef.LoginParams{Password: "123456"})
			},
			"/user/login",
			`{"password":"123456"}`,
		},
		{
			"register",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Register(ctx, c, s, servicedef.RegisterParams{
					Name: "zhx", Phone: "15339300775", Password: "123456", RePassword: "123456",
					StuID: "2400413083", Gender: 1, Direction: 1,
				})
			},
			"/user/register",
			`{"name":"zhx","phone":"15339300775","password":"123456","re_password":"123456","stu_id":"2400413083","gender":1,"direction":1}`,
		},
		{
			"forget",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Forget(ctx, c, s, servicedef.ForgetParams{Param: "2998759818@qq.com", TestMode: true})
			},
			"/user/forget",
			`{"param":"2998759818@qq.com","test_mode":true}`,
		},
		{
			"reset password",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return ResetPassword(ctx, c, s, servicedef.ResetPasswordParams{
					Account: "2998759818@qq.com", NewPassword: "123456", Code: "1",
				})
			},
			"/user/reset-password",
			`{"account":"2998759818@qq.com","new_password":"123456","code":"1"}`,
		},
		{
			"result",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Result(ctx, c, s, servicedef.ResultParams{Round: 3})
			},
			"/user/auth/result",
			`{"round":3}`,
		},
		{
			"signup",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Signup(ctx, c, s, servicedef.SignupParams{Name: "张皓翔", Direction: 1, SlotID: 10})
			},
			"/user/auth/signup",
			`{"name":"张皓翔","direction":1,"slot_id":10}`,
		},
		{
			"update",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Update(ctx, c, s, servicedef.UpdateParams{Name: "张皓翔", Direction: 2, SlotID: 10, IsDelete: 1})
			},
			"/user/auth/update",
			`{"name":"张皓翔","direction":2,"slot_id":10,"is_delete":1}`,
		},
		{
			"conversation",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return Conversation(ctx, c, s, servicedef.ConversationParams{ReceiveID: 1, Title: "t", Content: "c"})
			},
			"/user/auth/conversation",
			`{"receive_id":1,"title":"t","content":"c"}`,
		},
		{
			"raw",
			func(ctx context.Context, c *client.Client, s *client.Session) (*client.Response, error) {
				return SendRaw(ctx, c, s, servicedef.EndpointUserLogin, []byte("not a json"))
			},
			"/user/login",
			"",
		},
	} {
		t.Run(p.name, func(t *testing.T) {
			handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
			server := httptest.NewServer(handler)
			defer server.Close()
			cfg, err := config.Default(server.URL)
			require.NoError(t, err)
			c := client.NewClient(cfg, nil)
			defer c.Close()

			resp, err := p.action(context.Background(), c, nil)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			require.Len(t, requestsCh, 1)
			r := <-requestsCh
			assert.Equal(t, http.MethodPost, r.Request.Method)
			assert.Equal(t, p.path, r.Request.URL.Path)
			if p.body == "" {
				assert.Equal(t, "not a json", string(r.Body))
			} else {
				assert.JSONEq(t, p.body, string(r.Body))
			}
		})
	}
}

func TestPingIsAGet(t *testing.T) {
	req := PingRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, servicedef.EndpointPing, req.Endpoint)
	assert.Nil(t, req.Payload)
}

func TestRequestBuildersArePure(t *testing.T) {
	p := servicedef.SignupParams{Name: "a", SlotID: 1}
	assert.Equal(t, SignupRequest(p), SignupRequest(p))
	assert.Equal(t, servicedef.EndpointUserSignup, SignupRequest(p).Endpoint)
	assert.False(t, SignupRequest(p).FollowRedirects)
}
