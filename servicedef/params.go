package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// String fields use omitempty: the service treats an empty string and an absent field
// the same way. Numeric fields are always sent, since zero is a meaningful out-of-range
// value for several cases. Where zero is also a valid value, the field is an OptionalInt
// and an undefined value is sent as null, which the service treats as missing.

// LoginParams is the body of both the admin and the user login endpoints.
type LoginParams struct {
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// PostEmailParams asks the service to mail a result notice to a candidate.
type PostEmailParams struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name,omitempty"`
	Round     int    `json:"round"`
	Email     string `json:"email,omitempty"`
	Customize bool   `json:"customize"`
	Content   string `json:"content,omitempty"`
	TestMode  bool   `json:"test_mode"`
}

// SetPassParams marks one candidate as passed (PassFlagPassed) or failed
// (PassFlagFailed) for a round.
type SetPassParams struct {
	UserID int                 `json:"user_id"`
	SlotID int                 `json:"slot_id"`
	Round  int                 `json:"round"`
	IsPass ldvalue.OptionalInt `json:"is_pass"`
}

// SetResultParams finalizes the results of every candidate in a slot.
type SetResultParams struct {
	SlotID int `json:"slot_id"`
	Round  int `json:"round"`
}

// SetScheduleParams creates an interview slot. Times use DateTimeLocalFormat.
type SetScheduleParams struct {
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	MaxNum    int    `json:"max_num"`
	Round     int    `json:"round"`
}

// RegisterParams creates a user account.
type RegisterParams struct {
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Password   string `json:"password,omitempty"`
	RePassword string `json:"re_password,omitempty"`
	Email      string `json:"email,omitempty"`
	StuID      string `json:"stu_id,omitempty"`
	Gender     int    `json:"gender"`
	Direction  int    `json:"direction"`
}

// ForgetParams requests a password reset code for an account (an email address).
type ForgetParams struct {
	Param    string `json:"param,omitempty"`
	TestMode bool   `json:"test_mode"`
}

// ResetPasswordParams sets a new password using a code obtained from the forget endpoint.
type ResetPasswordParams struct {
	Account     string `json:"account,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
	Code        string `json:"code,omitempty"`
}

// ResultParams queries the caller's own result for a round.
type ResultParams struct {
	Round int `json:"round"`
}

// SignupParams books the caller into a slot.
type SignupParams struct {
	Name      string `json:"name,omitempty"`
	Direction int    `json:"direction"`
	SlotID    int    `json:"slot_id"`
}

// UpdateParams moves the caller's booking to another slot, or cancels it when IsDelete
// is 1.
type UpdateParams struct {
	Name      string `json:"name,omitempty"`
	Direction int    `json:"direction"`
	SlotID    int    `json:"slot_id"`
	IsDelete  int    `json:"is_delete"`
}

// ConversationParams sends a message from a user to an administrator.
type ConversationParams struct {
	ReceiveID int    `json:"receive_id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Direction values accepted by signup and registration.
const (
	DirectionUndecided = 0
	DirectionGo        = 1
	DirectionJava      = 2
	DirectionFrontend  = 3
	DirectionBackend   = 4
)

// Values of SetPassParams.IsPass.
const (
	PassFlagFailed = 0
	PassFlagPassed = 1
)

// Round values. No other round exists.
const (
	RoundFirst  = 1
	RoundSecond = 2
)

// Slot capacity bounds, inclusive.
const (
	MinSlotCapacity = 1
	MaxSlotCapacity = 100
)

// MaxConversationContentLength is counted in characters, not bytes.
const MaxConversationContentLength = 50
