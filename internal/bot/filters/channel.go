// Package filters 는 이벤트를 처리하기 전의 접근 제어를 담당한다.
package filters

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/Daco2020/ttobot-sub000/internal/features/members"
)

// ChannelFilter 는 메시지를 받아줄지 결정한다.
// 채널 메시지는 봇이 초대된 코어 채널에서만 오므로 통과,
// DM 은 등록된 멤버만 허용한다.
type ChannelFilter struct {
	noticeChannelID string
	memberService   *members.Service
	client          *slack.Client
}

func NewChannelFilter(noticeChannelID string, memberService *members.Service, client *slack.Client) *ChannelFilter {
	return &ChannelFilter{
		noticeChannelID: noticeChannelID,
		memberService:   memberService,
		client:          client,
	}
}

func (f *ChannelFilter) CheckAccess(ctx context.Context, ev *slackevents.MessageEvent) bool {
	if ev == nil {
		log.WithField("component", "ChannelFilter").Warn("nil 이벤트")
		return false
	}
	if ev.User == "" || ev.BotID != "" {
		// 봇/시스템 메시지는 처리하지 않는다
		return false
	}
	if f.memberService == nil || f.client == nil {
		log.WithField("component", "ChannelFilter").Error("필터 의존성이 초기화되지 않음")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component":    "ChannelFilter",
		"channel_id":   ev.Channel,
		"channel_type": ev.ChannelType,
		"user_id":      ev.User,
	})

	// 1) 채널 메시지: 봇이 초대된 채널이라는 것 자체가 접근 허가다
	if ev.ChannelType != "im" {
		logger.Debug("allow: channel message")
		return true
	}

	// 2) DM: 먼저 DB 로 빠르게 확인
	exists, err := f.memberService.Exists(ctx, ev.User)
	if err != nil {
		logger.WithError(err).Error("멤버 확인 실패 (db)")
		return false
	}
	if exists {
		logger.Debug("allow: DM (db member)")
		return true
	}

	// 2.1) DB 가 모르는 사용자: 공지 채널 멤버인지 Slack API 로 확인
	if f.isNoticeChannelMember(ctx, ev.User) {
		// DB 에 없지만 공지 채널에는 있다 — 입장 이벤트를 놓친 경우.
		// 여기서는 통과만 시키고, 등록은 입장 이벤트 재수신에 맡긴다.
		logger.Info("allow: DM (slack channel member, db 미등록)")
		return true
	}

	logger.Info("deny: DM (멤버 아님)")
	if _, _, sendErr := f.client.PostMessage(ev.Channel,
		slack.MsgOptionText("❌ 또봇은 글쓰기 모임 멤버만 사용할 수 있어요", false)); sendErr != nil {
		logger.WithError(sendErr).Warn("거절 메시지 전송 실패")
	}
	return false
}

// isNoticeChannelMember 는 공지 채널 멤버 목록에서 사용자를 찾는다.
func (f *ChannelFilter) isNoticeChannelMember(ctx context.Context, userID string) bool {
	params := &slack.GetUsersInConversationParameters{
		ChannelID: f.noticeChannelID,
		Limit:     200,
	}
	for {
		users, cursor, err := f.client.GetUsersInConversationContext(ctx, params)
		if err != nil {
			log.WithError(err).Error("공지 채널 멤버 조회 실패")
			return false
		}
		for _, u := range users {
			if u == userID {
				return true
			}
		}
		if cursor == "" {
			return false
		}
		params.Cursor = cursor
	}
}
