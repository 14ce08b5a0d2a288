package servicedef

// Error messages returned in the envelope's error field. The suite compares them
// verbatim, so they change in lockstep with the service.
const (
	MsgMissingRequiredField = "缺少必填字段"
	MsgMalformedParam       = "参数格式错误"
	MsgBadCredentials       = "手机号或密码错误"

	MsgRegisterMalformed        = "格式不正确"
	MsgRegisterPasswordMismatch = "两次密码不一致"
	MsgRegisterPhoneExists      = "该手机号已被注册"
	MsgRegisterEmailExists      = "该邮箱已被注册"

	MsgForgetEmptyParam   = "空传递"
	MsgInvalidParam       = "无效参数"
	MsgResetMissingParam  = "缺少必要参数"
	MsgResetBadAccount    = "无效账号格式"
	MsgResetCodeMismatch  = "验证码不匹配"
	MsgResetCodeNotIssued = "无效验证码"
	MsgResetUserNotFound  = "未找到该用户"

	MsgSignupSlotNotFound     = "查询面试表失败"
	MsgSignupAlreadyBooked    = "用户已有其它面试"
	MsgSignupFirstRoundFailed = "一面未通过，无法参加二面"
	MsgUpdateSlotNotFound     = "没有该面试时段"
	MsgSlotFull               = "该面试时段已满"

	MsgConversationNoTitle     = "无标题"
	MsgConversationTooLong     = "正文超过50字"
	MsgConversationNoRecipient = "收件人不存在"

	MsgUserNotFound = "user not found"

	MsgScheduleBadTimeRange = "无效参数，时间设置有误"
	MsgScheduleBadRound     = "无效参数，面试轮次不对"
	MsgScheduleBadCapacity  = "无效参数，最大人数不对"
	MsgSlotNotFound         = "没有该面试表"
	MsgPassUserNotFound     = "查找用户失败"
	MsgSecondRoundBlocked   = "用户未通过一面无法设置二面结果"

	MsgAdminLoginFailed = "管理员登录失败"
)

// Values of the envelope's msg field.
const (
	MsgTextSuccess      = "成功"
	MsgTextFailure      = "参数错误"
	MsgTextTypeMismatch = "JSON类型不匹配"
)
