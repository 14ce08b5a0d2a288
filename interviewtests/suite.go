package interviewtests

import (
	"github.com/acat-interview/interview-contract-tests/framework"
)

// RunTestSuite runs every test group against the service. Groups run one after another,
// since several of them change state that a later group reads.
func RunTestSuite(harness *TestHarness, opts framework.RunOptions) framework.Results {
	return framework.Run(opts, func(c *framework.Context) {
		t := newTestScope(c, harness)

		t.Run("admin login", DoAdminLoginTests)
		t.Run("post email", DoPostEmailTests)
		t.Run("set pass", DoSetPassTests)
		t.Run("set result", DoSetResultTests)
		t.Run("set schedule", DoSetScheduleTests)

		t.Run("user login", DoUserLoginTests)
		t.Run("register", DoRegisterTests)
		t.Run("forget", DoForgetTests)
		t.Run("reset password", DoResetPasswordTests)
		t.Run("result", DoResultTests)
		t.Run("signup and update", DoSignupAndUpdateTests)
		t.Run("conversation", DoConversationTests)

		t.Run("login required", DoLoginRequiredTests)
	})
}
