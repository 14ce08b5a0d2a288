package servicedef

// EndpointName is a logical endpoint name. The configuration maps each name to a path.
type EndpointName string

const (
	EndpointPing EndpointName = "ping"

	EndpointAdminLogin       EndpointName = "admin-login"
	EndpointAdminPostEmail   EndpointName = "admin-post-email"
	EndpointAdminSetPass     EndpointName = "admin-set-pass"
	EndpointAdminSetResult   EndpointName = "admin-set-result"
	EndpointAdminSetSchedule EndpointName = "admin-set-schedule"

	EndpointUserLogin         EndpointName = "user-login"
	EndpointUserRegister      EndpointName = "user-register"
	EndpointUserForget        EndpointName = "user-forget"
	EndpointUserResetPassword EndpointName = "user-reset-password"
	EndpointUserResult        EndpointName = "user-result"
	EndpointUserSignup        EndpointName = "user-signup"
	EndpointUserUpdate        EndpointName = "user-update"
	EndpointUserConversation  EndpointName = "user-conversation"
)

// AllEndpoints lists every endpoint the suite references. Configuration loading fails if
// any of them is not mapped to a path.
var AllEndpoints = []EndpointName{
	EndpointPing,
	EndpointAdminLogin,
	EndpointAdminPostEmail,
	EndpointAdminSetPass,
	EndpointAdminSetResult,
	EndpointAdminSetSchedule,
	EndpointUserLogin,
	EndpointUserRegister,
	EndpointUserForget,
	EndpointUserResetPassword,
	EndpointUserResult,
	EndpointUserSignup,
	EndpointUserUpdate,
	EndpointUserConversation,
}

// DefaultEndpointPaths is the endpoint catalog of the interview service as deployed.
var DefaultEndpointPaths = map[EndpointName]string{
	EndpointPing: "/ping",

	EndpointAdminLogin:       "/admin_login",
	EndpointAdminPostEmail:   "/admin/postemail",
	EndpointAdminSetPass:     "/admin/setpass",
	EndpointAdminSetResult:   "/admin/setresult",
	EndpointAdminSetSchedule: "/admin/settimetable",

	EndpointUserLogin:         "/user/login",
	EndpointUserRegister:      "/user/register",
	EndpointUserForget:        "/user/forget",
	EndpointUserResetPassword: "/user/reset-password",
	EndpointUserResult:        "/user/auth/result",
	EndpointUserSignup:        "/user/auth/signup",
	EndpointUserUpdate:        "/user/auth/update",
	EndpointUserConversation:  "/user/auth/conversation",
}

// TokenCookieName is the cookie set by both login endpoints.
const TokenCookieName = "token"

// Cookie scopes used by the service for the token cookie.
const (
	AdminCookiePath = "/admin"
	UserCookiePath  = "/user"
)

// DateTimeLocalFormat is the HTML datetime-local layout used for schedule times: no
// seconds, no zone.
const DateTimeLocalFormat = "2006-01-02T15:04"
