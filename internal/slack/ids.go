package slack

// 交互组件标识
const (
	// Callback IDs
	CallbackSubmitFAQ    = "submit_faq"
	CallbackAskFAQ       = "ask_faq"
	CallbackRejectReason = "reject_faq_reason"

	// Action IDs（审核消息按钮）
	ActionApproveFAQ = "approve_faq"
	ActionRejectFAQ  = "reject_faq"

	// 提交表单
	BlockIDQuestion  = "question_block"
	ActionIDQuestion = "question_input"
	BlockIDAnswer    = "answer_block"
	ActionIDAnswer   = "answer_input"
	BlockIDScope     = "scope_block"
	ActionIDScope    = "scope_checkbox"
	OptionGlobal     = "global"
	BlockIDChannels  = "channels_block"
	ActionIDChannels = "channels_select"

	// 查询表单
	BlockIDFAQSelect  = "faq_select_block"
	ActionIDFAQSelect = "faq_select"

	// 驳回原因表单
	BlockIDReason  = "reason_block"
	ActionIDReason = "reason_input"
)
