// Package bot 은 봇의 메인 모듈이다 — Slack 이벤트 수신, 명령 라우팅,
// 중지 처리가 여기에 있다.
package bot

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/Daco2020/ttobot-sub000/internal/bot/filters"
	"github.com/Daco2020/ttobot-sub000/internal/bot/middleware"
	"github.com/Daco2020/ttobot-sub000/internal/config"
	"github.com/Daco2020/ttobot-sub000/internal/features/admin"
	"github.com/Daco2020/ttobot-sub000/internal/features/bookmark"
	"github.com/Daco2020/ttobot-sub000/internal/features/members"
	"github.com/Daco2020/ttobot-sub000/internal/features/points"
	"github.com/Daco2020/ttobot-sub000/internal/features/ranking"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

// Bot 은 모든 구성요소를 묶는 메인 구조체.
type Bot struct {
	client *slack.Client
	socket *socketmode.Client
	cfg    *config.Config

	channelFilter *filters.ChannelFilter
	rateLimiter   *middleware.RateLimiter

	memberService *members.Service

	submissionHandler *submission.Handler
	pointsHandler     *points.Handler
	rankingHandler    *ranking.Handler
	bookmarkHandler   *bookmark.Handler
	adminHandler      *admin.Handler

	parser *CommandParser

	// 이벤트 처리 동시성 제한
	inflight chan struct{}
}

// New 는 봇 인스턴스를 만든다.
func New(
	client *slack.Client,
	socket *socketmode.Client,
	cfg *config.Config,
	memberService *members.Service,
	submissionHandler *submission.Handler,
	pointsHandler *points.Handler,
	rankingHandler *ranking.Handler,
	bookmarkHandler *bookmark.Handler,
	adminHandler *admin.Handler,
	channelFilter *filters.ChannelFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		client:            client,
		socket:            socket,
		cfg:               cfg,
		channelFilter:     channelFilter,
		rateLimiter:       middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		memberService:     memberService,
		submissionHandler: submissionHandler,
		pointsHandler:     pointsHandler,
		rankingHandler:    rankingHandler,
		bookmarkHandler:   bookmarkHandler,
		adminHandler:      adminHandler,
		parser:            NewCommandParser(),
		inflight:          make(chan struct{}, maxInFlight),
	}
}

// Start 는 Socket Mode 연결을 열고 이벤트를 받는다.
// ctx 가 취소될 때까지 블록한다.
func (b *Bot) Start(ctx context.Context) error {
	go func() {
		if err := b.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Socket Mode 연결 종료")
		}
	}()

	log.WithField("max_inflight", b.cfg.BotMaxInflight).Info("또봇이 메시지를 기다리고 있어요...")

	for {
		select {
		case <-ctx.Done():
			log.Info("봇을 멈추는 중 (ctx done)...")
			b.rateLimiter.Close()
			return nil

		case evt, ok := <-b.socket.Events:
			if !ok {
				log.Info("이벤트 채널이 닫혀 봇을 멈춰요")
				b.rateLimiter.Close()
				return nil
			}

			switch evt.Type {
			case socketmode.EventTypeConnected:
				log.Info("Slack 에 연결됨")
			case socketmode.EventTypeConnectionError:
				log.WithField("data", evt.Data).Warn("Slack 연결 오류, 재시도 중")
			case socketmode.EventTypeEventsAPI:
				apiEvent, castOK := evt.Data.(slackevents.EventsAPIEvent)
				if !castOK {
					continue
				}
				if evt.Request != nil {
					b.socket.Ack(*evt.Request)
				}

				// 동시성 제한
				b.inflight <- struct{}{}
				go func(e slackevents.EventsAPIEvent) {
					defer func() { <-b.inflight }()
					b.handleEvent(ctx, e)
				}(apiEvent)
			}
		}
	}
}

// handleEvent 는 Events API 이벤트 하나를 처리한다.
func (b *Bot) handleEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	defer middleware.RecoverFromPanic()

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MemberJoinedChannelEvent:
		b.handleMemberJoined(ctx, ev)

	case *slackevents.ReactionAddedEvent:
		// 공지 채널의 이모지만 확인으로 친다
		if ev.Item.Channel == b.cfg.NoticeChannelID {
			b.pointsHandler.HandleNoticeAck(ctx, ev.User)
		}

	case *slackevents.MessageEvent:
		b.handleMessage(ctx, ev)
	}
}

// handleMessage 는 메시지 이벤트를 받아 명령으로 라우팅한다.
func (b *Bot) handleMessage(ctx context.Context, ev *slackevents.MessageEvent) {
	// 수정/삭제/스레드 브로드캐스트 같은 하위 타입은 건너뛴다
	if ev.SubType != "" {
		return
	}

	middleware.LogMessage(ev)

	if !b.channelFilter.CheckAccess(ctx, ev) {
		return
	}

	if !b.rateLimiter.Allow(ev.User) {
		log.WithField("user_id", ev.User).Debug("rate limited")
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(ev.Text)
	if !isCommand {
		return
	}

	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("명령 라우팅")

	b.routeCommand(ctx, ev.Channel, ev.User, cmd, args, ev.ChannelType == "im")
}

// routeCommand 는 명령을 담당 핸들러로 보낸다.
func (b *Bot) routeCommand(ctx context.Context, channelID, userID, cmd string, args []string, isDM bool) {
	switch cmd {
	case "도움말", "help":
		b.sendMessage(channelID, helpText)

	case "제출":
		b.submissionHandler.HandleSubmit(ctx, channelID, userID, args)

	case "패스":
		b.submissionHandler.HandlePass(ctx, channelID, userID)

	case "내점수":
		b.pointsHandler.HandleMyScore(ctx, channelID, userID)

	case "점수표":
		b.pointsHandler.HandleScoreboard(ctx, channelID)

	case "순위":
		b.rankingHandler.HandleRank(ctx, channelID)

	case "북마크":
		b.bookmarkHandler.HandleAdd(ctx, userID, args)

	case "북마크해제":
		b.bookmarkHandler.HandleCancel(ctx, userID, args)

	case "북마크목록":
		b.bookmarkHandler.HandleList(ctx, userID)

	case "로그인":
		b.adminHandler.HandleLogin(ctx, channelID, userID, args, isDM)

	case "지급":
		b.adminHandler.HandleGrant(ctx, channelID, userID, args)
	}
}

// handleMemberJoined 는 코어 채널 입장 이벤트를 처리한다.
func (b *Bot) handleMemberJoined(ctx context.Context, ev *slackevents.MemberJoinedChannelEvent) {
	// 공지 채널 입장은 명단에 반영하지 않는다
	if ev.Channel == b.cfg.NoticeChannelID {
		return
	}

	user, err := b.client.GetUserInfoContext(ctx, ev.User)
	if err != nil {
		log.WithError(err).WithField("user_id", ev.User).Warn("사용자 정보 조회 실패")
		return
	}
	if user.IsBot {
		return
	}

	name := user.Profile.DisplayName
	if name == "" {
		name = user.RealName
	}

	// 기수는 코어 채널 이름에서 읽는다 (예: 10기-글쓰기-1)
	cohort := ""
	if ch, chErr := b.client.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: ev.Channel,
	}); chErr == nil {
		cohort = cohortFromChannelName(ch.Name)
	}

	if err := b.memberService.HandleNewMember(ctx, ev.User, name, cohort, ev.Channel); err != nil {
		log.WithError(err).WithField("user_id", ev.User).Warn("새 멤버 처리 실패")
		return
	}

	b.sendMessage(ev.Channel, "👋 <@"+ev.User+">님, 어서오세요! `!도움말` 로 명령을 확인할 수 있어요")
}

// SendMessageToUser 는 멤버에게 DM 을 보낸다 (리마인더용).
func (b *Bot) SendMessageToUser(userID, text string) {
	ch, _, _, err := b.client.OpenConversation(&slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("DM 채널 열기 실패")
		return
	}
	if _, _, err := b.client.PostMessage(ch.ID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("DM 전송 실패")
	}
}

// SendMessageToChannel 은 채널에 메시지를 보낸다 (공지용).
func (b *Bot) SendMessageToChannel(channelID, text string) {
	b.sendMessage(channelID, text)
}

func (b *Bot) sendMessage(channelID, text string) {
	if _, _, err := b.client.PostMessage(channelID, slack.MsgOptionText(text, false)); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("메시지 전송 실패")
	}
}

// cohortFromChannelName 은 "10기-글쓰기-1" 같은 채널 이름에서 기수를 꺼낸다.
func cohortFromChannelName(name string) string {
	if i := strings.Index(name, "기"); i > 0 {
		return name[:i+len("기")]
	}
	return ""
}

const helpText = `📖 또봇 명령어

✍️ 글 제출
  !제출 <링크> [제목] [카테고리:이름] [태그:a,b] [큐레이션]
  !패스 — 이번 회차 패스 (시즌당 2회, 연속 불가)

💯 포인트
  !내점수 — 내 포인트 내역
  !점수표 — 전체 포인트 순위
  !순위 — 이번 회차 채널 제출 순위

🔖 북마크
  !북마크 <글번호> [메모]
  !북마크해제 <글번호>
  !북마크목록`
