// Package bookmark — handlers.go 는 !북마크 / !북마크해제 / !북마크목록
// 명령을 처리한다. 북마크는 개인 기록이라 응답은 DM 으로 보낸다.
package bookmark

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Handler 는 북마크 명령 처리기.
type Handler struct {
	service *Service
	client  *slack.Client
}

// NewHandler 는 새 북마크 핸들러를 만든다.
func NewHandler(service *Service, client *slack.Client) *Handler {
	return &Handler{service: service, client: client}
}

// HandleAdd 는 !북마크 <글번호> [메모] 명령을 처리한다.
func (h *Handler) HandleAdd(ctx context.Context, userID string, args []string) {
	if len(args) == 0 {
		h.sendDM(userID, "사용법: !북마크 <글번호> [메모]")
		return
	}
	contentID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendDM(userID, "❌ 글번호는 숫자여야 해요")
		return
	}
	note := strings.Join(args[1:], " ")

	content, err := h.service.Add(ctx, userID, contentID, note)
	if err != nil {
		h.replyError(userID, err)
		return
	}
	h.sendDM(userID, fmt.Sprintf("🔖 북마크했어요: %s\n%s", content.Title, content.ContentURL))
}

// HandleCancel 은 !북마크해제 <글번호> 명령을 처리한다.
func (h *Handler) HandleCancel(ctx context.Context, userID string, args []string) {
	if len(args) == 0 {
		h.sendDM(userID, "사용법: !북마크해제 <글번호>")
		return
	}
	contentID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendDM(userID, "❌ 글번호는 숫자여야 해요")
		return
	}
	if err := h.service.Cancel(ctx, userID, contentID); err != nil {
		h.replyError(userID, err)
		return
	}
	h.sendDM(userID, "🗑 북마크를 해제했어요")
}

// HandleList 는 !북마크목록 명령을 처리한다.
func (h *Handler) HandleList(ctx context.Context, userID string) {
	contents, err := h.service.List(ctx, userID)
	if err != nil {
		h.replyError(userID, err)
		return
	}
	if len(contents) == 0 {
		h.sendDM(userID, "아직 북마크한 글이 없어요")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔖 북마크 %d개\n\n", len(contents)))
	for i, c := range contents {
		sb.WriteString(fmt.Sprintf("%d. [%d] %s\n%s\n", i+1, c.ID, c.Title, c.ContentURL))
	}
	h.sendDM(userID, sb.String())
}

func (h *Handler) replyError(userID string, err error) {
	switch {
	case errors.Is(err, common.ErrContentNotFound),
		errors.Is(err, common.ErrAlreadyBookmarked):
		h.sendDM(userID, "❌ "+err.Error())
	default:
		log.WithError(err).Error("북마크 명령 처리 실패")
		h.sendDM(userID, "❌ 북마크 처리 중 문제가 생겼어요")
	}
}

// sendDM 은 멤버와의 DM 채널을 열어 메시지를 보낸다.
func (h *Handler) sendDM(userID, text string) {
	ch, _, _, err := h.client.OpenConversation(&slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("DM 채널 열기 실패")
		return
	}
	if _, _, err := h.client.PostMessage(ch.ID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("DM 전송 실패")
	}
}
