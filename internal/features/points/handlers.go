// Package points — handlers.go 는 !내점수, !점수표 명령과
// 공지 이모지 확인 이벤트를 처리한다.
package points

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Handler 는 포인트 관련 Slack 명령 처리기.
type Handler struct {
	service *Service
	repo    *Repository
	client  *slack.Client
}

// NewHandler 는 새 포인트 핸들러를 만든다.
func NewHandler(service *Service, repo *Repository, client *slack.Client) *Handler {
	return &Handler{service: service, repo: repo, client: client}
}

// HandleMyScore 는 !내점수 명령을 처리한다.
// 총점과 최근 지급 내역을 보여준다.
func (h *Handler) HandleMyScore(ctx context.Context, channelID, userID string) {
	text, err := h.service.FormatHistory(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("포인트 내역 조회 실패")
		h.sendMessage(channelID, "❌ 포인트 내역을 불러오지 못했어요")
		return
	}
	h.sendMessage(channelID, fmt.Sprintf("📋 <@%s>님의 포인트 내역\n\n%s", userID, text))
}

// HandleScoreboard 는 !점수표 명령을 처리한다. 총점 상위 10명.
func (h *Handler) HandleScoreboard(ctx context.Context, channelID string) {
	totals, err := h.repo.TopTotals(ctx, 10)
	if err != nil {
		log.WithError(err).Error("점수표 조회 실패")
		h.sendMessage(channelID, "❌ 점수표를 불러오지 못했어요")
		return
	}
	if len(totals) == 0 {
		h.sendMessage(channelID, "아직 포인트를 받은 멤버가 없어요")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	sb.WriteString("🏆 포인트 점수표\n\n")
	for i, t := range totals {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s <@%s> — %s점\n", prefix, t.MemberID, common.FormatNumber(t.Total)))
	}
	h.sendMessage(channelID, sb.String())
}

// HandleNoticeAck 는 공지 채널의 확인 이모지 이벤트를 처리한다.
// 공지를 확인한 멤버에게 포인트를 지급하고 DM 으로 알린다.
func (h *Handler) HandleNoticeAck(ctx context.Context, userID string) {
	text, err := h.service.GrantNoticeAck(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrMemberNotFound) {
			log.WithField("user_id", userID).Debug("멤버가 아닌 사용자의 공지 이모지, 무시")
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("공지 확인 포인트 지급 실패")
		return
	}
	h.sendDirectMessage(userID, text)
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, _, err := h.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("메시지 전송 실패")
	}
}

// sendDirectMessage 는 멤버와의 DM 채널을 열고 메시지를 보낸다.
func (h *Handler) sendDirectMessage(userID, text string) {
	ch, _, _, err := h.client.OpenConversation(&slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("DM 채널 열기 실패")
		return
	}
	h.sendMessage(ch.ID, text)
}
