// Package submission — handlers.go 는 제출/패스 명령을 처리한다.
// 명령 형식:
//
//	!제출 <링크> [제목] [카테고리:<이름>] [태그:<a,b>] [큐레이션]
//	!패스
package submission

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Handler 는 제출 관련 Slack 명령 처리기.
type Handler struct {
	service *Service
	client  *slack.Client
}

// NewHandler 는 새 제출 핸들러를 만든다.
func NewHandler(service *Service, client *slack.Client) *Handler {
	return &Handler{service: service, client: client}
}

// HandleSubmit 은 !제출 명령을 처리한다.
func (h *Handler) HandleSubmit(ctx context.Context, channelID, userID string, args []string) {
	if len(args) == 0 {
		h.sendMessage(channelID, "사용법: !제출 <링크> [제목] [카테고리:이름] [태그:a,b] [큐레이션]")
		return
	}

	req := parseSubmitArgs(userID, args)
	if req.ContentURL == "" {
		h.sendMessage(channelID, "❌ 제출할 글의 링크를 찾지 못했어요")
		return
	}

	result, err := h.service.Submit(ctx, req)
	if err != nil {
		h.replyError(channelID, err, "제출 처리 중 문제가 생겼어요. 잠시 후 다시 시도해주세요")
		return
	}

	if result.Additional {
		h.sendMessage(channelID, "📝 이번 회차는 이미 제출을 마쳤어요. 추가 제출로 기록할게요!")
	}
	for _, text := range result.Notifications {
		h.sendMessage(channelID, text)
	}
}

// HandlePass 는 !패스 명령을 처리한다. 거절 사유는 그대로 보여준다.
func (h *Handler) HandlePass(ctx context.Context, channelID, userID string) {
	result, err := h.service.Pass(ctx, userID)
	if err != nil {
		h.replyError(channelID, err, "패스 처리 중 문제가 생겼어요. 잠시 후 다시 시도해주세요")
		return
	}
	h.sendMessage(channelID, result.Message)
}

// replyError 는 비즈니스 규칙 에러는 그대로, 나머지는 일반 문구로 보여준다.
func (h *Handler) replyError(channelID string, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrOutOfSchedule),
		errors.Is(err, common.ErrNoPassesRemaining),
		errors.Is(err, common.ErrConsecutivePass),
		errors.Is(err, common.ErrMemberNotFound):
		h.sendMessage(channelID, "❌ "+err.Error())
	default:
		log.WithError(err).Error("제출 명령 처리 실패")
		h.sendMessage(channelID, "❌ "+fallback)
	}
}

// parseSubmitArgs 는 명령 인자를 SubmitRequest 로 바꾼다.
// 링크는 첫 번째 <...> 또는 http 로 시작하는 토큰이다.
func parseSubmitArgs(userID string, args []string) SubmitRequest {
	req := SubmitRequest{MemberID: userID}
	var titleParts []string

	for _, arg := range args {
		switch {
		case req.ContentURL == "" && isURL(arg):
			req.ContentURL = stripSlackLink(arg)
		case strings.HasPrefix(arg, "카테고리:"):
			req.Category = strings.TrimPrefix(arg, "카테고리:")
		case strings.HasPrefix(arg, "태그:"):
			req.Tags = strings.TrimPrefix(arg, "태그:")
		case arg == "큐레이션":
			req.Curation = true
		default:
			titleParts = append(titleParts, arg)
		}
	}
	req.Title = strings.Join(titleParts, " ")
	return req
}

func isURL(s string) bool {
	s = strings.TrimPrefix(s, "<")
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// stripSlackLink 는 Slack 이 감싼 링크(<https://...|라벨>)를 벗긴다.
func stripSlackLink(s string) string {
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	if i := strings.IndexByte(s, '|'); i >= 0 {
		s = s[:i]
	}
	return s
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, _, err := h.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("메시지 전송 실패")
	}
}
