// Package admin — handlers.go 는 !로그인(DM 전용), !지급 명령을 처리한다.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/points"
)

// Handler 는 관리자 명령 처리기.
type Handler struct {
	service *Service
	points  *points.Service
	client  *slack.Client
}

// NewHandler 는 새 관리자 핸들러를 만든다.
func NewHandler(service *Service, pointsSvc *points.Service, client *slack.Client) *Handler {
	return &Handler{service: service, points: pointsSvc, client: client}
}

// HandleLogin 은 !로그인 <비밀번호> 명령을 처리한다.
// 비밀번호가 채널에 남으면 안 되므로 DM 에서만 받는다.
func (h *Handler) HandleLogin(ctx context.Context, channelID, userID string, args []string, isDM bool) {
	if !isDM {
		h.sendMessage(channelID, "🔒 로그인은 봇과의 DM 에서만 할 수 있어요")
		return
	}
	if len(args) != 1 {
		h.sendMessage(channelID, "사용법: !로그인 <비밀번호>")
		return
	}

	session, err := h.service.Login(ctx, userID, args[0])
	if err != nil {
		h.replyError(channelID, userID, err)
		return
	}
	h.sendMessage(channelID, fmt.Sprintf(
		"✅ 로그인했어요. 세션은 %s 까지 유효해요",
		common.FormatDateTime(session.ExpiresAt),
	))
}

// HandleGrant 는 !지급 <@멤버> <항목> [금액 사유...] 명령을 처리한다.
// 항목: 큐레이션선정 | 컨퍼런스 | 공지확인 | 자기소개 | 특별 <금액> <사유>
func (h *Handler) HandleGrant(ctx context.Context, channelID, userID string, args []string) {
	if err := h.service.Authorize(ctx, userID); err != nil {
		h.replyError(channelID, userID, err)
		return
	}
	if len(args) < 2 {
		h.sendMessage(channelID, "사용법: !지급 <@멤버> <큐레이션선정|컨퍼런스|공지확인|자기소개|특별 금액 사유>")
		return
	}

	targetID, ok := parseMention(args[0])
	if !ok {
		h.sendMessage(channelID, "❌ 지급 대상은 @멤버 멘션으로 지정해주세요")
		return
	}

	var (
		text string
		err  error
	)
	switch args[1] {
	case "큐레이션선정":
		text, err = h.points.GrantCurationSelected(ctx, targetID)
	case "컨퍼런스":
		text, err = h.points.GrantConference(ctx, targetID)
	case "공지확인":
		text, err = h.points.GrantNoticeAck(ctx, targetID)
	case "자기소개":
		text, err = h.points.GrantIntroduction(ctx, targetID)
	case "특별":
		if len(args) < 4 {
			h.sendMessage(channelID, "사용법: !지급 <@멤버> 특별 <금액> <사유>")
			return
		}
		amount, convErr := strconv.Atoi(args[2])
		if convErr != nil {
			h.sendMessage(channelID, "❌ 금액은 숫자여야 해요")
			return
		}
		text, err = h.points.GrantSpecial(ctx, targetID, amount, strings.Join(args[3:], " "))
	default:
		h.sendMessage(channelID, fmt.Sprintf("❌ 알 수 없는 지급 항목이에요: %s", args[1]))
		return
	}

	if err != nil {
		h.replyError(channelID, userID, err)
		return
	}

	log.WithFields(log.Fields{
		"admin_id":  userID,
		"member_id": targetID,
		"item":      args[1],
	}).Info("관리자 수동 지급")
	h.sendMessage(channelID, text)
}

func (h *Handler) replyError(channelID, userID string, err error) {
	switch {
	case errors.Is(err, common.ErrNotAdmin),
		errors.Is(err, common.ErrWrongPassword),
		errors.Is(err, common.ErrTooManyAttempts),
		errors.Is(err, common.ErrSessionExpired),
		errors.Is(err, common.ErrMemberNotFound),
		errors.Is(err, common.ErrInvalidAmount):
		h.sendMessage(channelID, "❌ "+err.Error())
	default:
		log.WithError(err).WithField("user_id", userID).Error("관리자 명령 처리 실패")
		h.sendMessage(channelID, "❌ 처리 중 문제가 생겼어요")
	}
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, _, err := h.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("메시지 전송 실패")
	}
}

// parseMention 은 "<@U012345>" 또는 "<@U012345|이름>" 에서 user ID 를 꺼낸다.
func parseMention(s string) (string, bool) {
	if !strings.HasPrefix(s, "<@") || !strings.HasSuffix(s, ">") {
		return "", false
	}
	id := s[2 : len(s)-1]
	if i := strings.IndexByte(id, '|'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", false
	}
	return id, true
}
