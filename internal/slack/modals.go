package slack

import (
	"strconv"

	slackapi "github.com/slack-go/slack"
)

// BuildSubmitModal 构造FAQ提交表单
func BuildSubmitModal() slackapi.ModalViewRequest {
	return slackapi.ModalViewRequest{
		Type:       slackapi.ViewType("modal"),
		CallbackID: CallbackSubmitFAQ,
		Title:      slackapi.NewTextBlockObject("plain_text", "Submit an FAQ", false, false),
		Submit:     slackapi.NewTextBlockObject("plain_text", "Submit", false, false),
		Close:      slackapi.NewTextBlockObject("plain_text", "Cancel", false, false),
		Blocks: slackapi.Blocks{
			BlockSet: []slackapi.Block{
				slackapi.NewInputBlock(
					BlockIDQuestion,
					slackapi.NewTextBlockObject("plain_text", "Question", false, false),
					slackapi.NewTextBlockObject("plain_text", "The question users will ask", false, false),
					slackapi.NewPlainTextInputBlockElement(
						slackapi.NewTextBlockObject("plain_text", "How do I ...?", false, false),
						ActionIDQuestion,
					),
				),
				slackapi.NewInputBlock(
					BlockIDAnswer,
					slackapi.NewTextBlockObject("plain_text", "Answer", false, false),
					nil,
					slackapi.NewPlainTextInputBlockElement(
						slackapi.NewTextBlockObject("plain_text", "The answer the bot should give", false, false),
						ActionIDAnswer,
					).WithMultiline(true),
				),
				slackapi.NewInputBlock(
					BlockIDScope,
					slackapi.NewTextBlockObject("plain_text", "Scope", false, false),
					nil,
					slackapi.NewCheckboxGroupsBlockElement(
						ActionIDScope,
						slackapi.NewOptionBlockObject(
							OptionGlobal,
							slackapi.NewTextBlockObject("plain_text", "Visible in every channel", false, false),
							nil,
						),
					),
				).WithOptional(true),
				slackapi.NewInputBlock(
					BlockIDChannels,
					slackapi.NewTextBlockObject("plain_text", "Channels", false, false),
					slackapi.NewTextBlockObject("plain_text", "Required unless the FAQ is global", false, false),
					slackapi.NewOptionsMultiSelectBlockElement(
						slackapi.MultiOptTypeConversations,
						slackapi.NewTextBlockObject("plain_text", "Select channels", false, false),
						ActionIDChannels,
					),
				).WithOptional(true),
			},
		},
	}
}

// BuildAskModal 构造FAQ查询表单，选项由外部选择器按频道动态加载
func BuildAskModal(channelID string) slackapi.ModalViewRequest {
	return slackapi.ModalViewRequest{
		Type:            slackapi.ViewType("modal"),
		CallbackID:      CallbackAskFAQ,
		PrivateMetadata: channelID,
		Title:           slackapi.NewTextBlockObject("plain_text", "Ask an FAQ", false, false),
		Submit:          slackapi.NewTextBlockObject("plain_text", "Ask", false, false),
		Close:           slackapi.NewTextBlockObject("plain_text", "Cancel", false, false),
		Blocks: slackapi.Blocks{
			BlockSet: []slackapi.Block{
				slackapi.NewInputBlock(
					BlockIDFAQSelect,
					slackapi.NewTextBlockObject("plain_text", "FAQ", false, false),
					nil,
					slackapi.NewOptionsSelectBlockElement(
						slackapi.OptTypeExternal,
						slackapi.NewTextBlockObject("plain_text", "Pick a question", false, false),
						ActionIDFAQSelect,
					),
				),
			},
		},
	}
}

// BuildRejectReasonModal 构造驳回原因表单，private_metadata 携带待审核ID
func BuildRejectReasonModal(pendingID uint) slackapi.ModalViewRequest {
	return slackapi.ModalViewRequest{
		Type:            slackapi.ViewType("modal"),
		CallbackID:      CallbackRejectReason,
		PrivateMetadata: strconv.FormatUint(uint64(pendingID), 10),
		Title:           slackapi.NewTextBlockObject("plain_text", "Reject FAQ", false, false),
		Submit:          slackapi.NewTextBlockObject("plain_text", "Reject", false, false),
		Close:           slackapi.NewTextBlockObject("plain_text", "Cancel", false, false),
		Blocks: slackapi.Blocks{
			BlockSet: []slackapi.Block{
				slackapi.NewInputBlock(
					BlockIDReason,
					slackapi.NewTextBlockObject("plain_text", "Reason", false, false),
					slackapi.NewTextBlockObject("plain_text", "Shared with the review channel", false, false),
					slackapi.NewPlainTextInputBlockElement(
						slackapi.NewTextBlockObject("plain_text", "Why is this FAQ being rejected?", false, false),
						ActionIDReason,
					).WithMultiline(true),
				),
			},
		},
	}
}
