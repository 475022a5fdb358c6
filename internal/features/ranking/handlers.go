// Package ranking — handlers.go 는 !순위 명령을 처리한다.
// 명령을 친 채널의 이번 회차 제출 순위를 보여준다.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Handler 는 순위 명령 처리기.
type Handler struct {
	service *Service
	client  *slack.Client
	clock   common.Clock
}

// NewHandler 는 새 순위 핸들러를 만든다.
func NewHandler(service *Service, client *slack.Client, clock common.Clock) *Handler {
	return &Handler{service: service, client: client, clock: clock}
}

// HandleRank 는 !순위 명령을 처리한다.
func (h *Handler) HandleRank(ctx context.Context, channelID string) {
	ranked, err := h.service.TopRanked(ctx, channelID, h.clock())
	if err != nil {
		if errors.Is(err, common.ErrOutOfSchedule) {
			h.sendMessage(channelID, "❌ "+err.Error())
			return
		}
		log.WithError(err).WithField("channel_id", channelID).Error("순위 조회 실패")
		h.sendMessage(channelID, "❌ 순위를 불러오지 못했어요")
		return
	}

	if len(ranked) == 0 {
		h.sendMessage(channelID, "아직 이번 회차에 제출한 멤버가 없어요. 1등의 기회! ✍️")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	sb.WriteString("⚡ 이번 회차 제출 순위\n\n")
	for i, e := range ranked {
		sb.WriteString(fmt.Sprintf("%s <@%s> — %s\n",
			medals[i], e.MemberID, common.FormatDateTime(e.SubmittedAt)))
	}
	h.sendMessage(channelID, sb.String())
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, _, err := h.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("메시지 전송 실패")
	}
}
