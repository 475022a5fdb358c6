// Package jobs 는 백그라운드 작업(cron)을 관리한다.
// scheduler.go 는 마감 전날 리마인더와 시즌 종료 공지를 등록한다.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/members"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

// Scheduler 는 백그라운드 작업을 관리한다.
type Scheduler struct {
	cron              *cron.Cron
	sched             *schedule.Schedule
	submissionService *submission.Service
	memberService     *members.Service
	noticeChannelID   string
	sendToUser        func(userID, text string)
	sendToChannel     func(channelID, text string)
	clock             common.Clock

	seasonEndNotified bool
}

// NewScheduler 는 서울 시간대 기준의 작업 스케줄러를 만든다.
func NewScheduler(
	sched *schedule.Schedule,
	submissionService *submission.Service,
	memberService *members.Service,
	noticeChannelID string,
	sendToUser func(userID, text string),
	sendToChannel func(channelID, text string),
	clock common.Clock,
) *Scheduler {
	c := cron.New(cron.WithLocation(common.SeoulLocation()))

	return &Scheduler{
		cron:              c,
		sched:             sched,
		submissionService: submissionService,
		memberService:     memberService,
		noticeChannelID:   noticeChannelID,
		sendToUser:        sendToUser,
		sendToChannel:     sendToChannel,
		clock:             clock,
	}
}

// Start 는 모든 백그라운드 작업을 등록하고 cron 을 시작한다.
func (s *Scheduler) Start(ctx context.Context) {
	// 매일 오전 10시: 마감 전날이면 미제출 멤버에게 리마인더 DM
	s.cron.AddFunc("0 10 * * *", func() {
		log.Info("[CRON] 마감 리마인더 점검")
		if err := s.SendDueReminders(ctx); err != nil {
			log.WithError(err).Error("[CRON] 리마인더 전송 실패")
		}
	})

	// 매일 00:05: 시즌이 끝났으면 공지 채널에 한 번 알린다
	s.cron.AddFunc("5 0 * * *", func() {
		log.Debug("[CRON] 시즌 종료 점검")
		s.AnnounceSeasonEnd()
	})

	s.cron.Start()
	log.Info("작업 스케줄러 시작 (Asia/Seoul)")
}

// Stop 은 스케줄러를 멈추고 진행 중인 작업을 기다린다.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("작업 스케줄러 멈춤")
}

// SendDueReminders 는 내일이 마감일이면 아직 이번 회차를 채우지 않은
// 멤버들에게 DM 을 보낸다.
func (s *Scheduler) SendDueReminders(ctx context.Context) error {
	now := s.clock()

	round, err := s.sched.CurrentRound(now)
	if err != nil {
		// 시즌 종료면 리마인더도 끝이다
		return nil
	}

	// 마감 전날에만 보낸다
	tomorrow := common.DateOf(now).AddDate(0, 0, 1)
	if !common.DateOf(round.DueDate).Equal(tomorrow) {
		return nil
	}

	allMembers, err := s.memberService.ListAll(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, m := range allMembers {
		done, err := s.submissionService.HasSatisfiedCurrentRound(ctx, m.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", m.UserID).Warn("[CRON] 제출 여부 확인 실패")
			continue
		}
		if done {
			continue
		}

		s.sendToUser(m.UserID, fmt.Sprintf(
			"⏰ %d회차 마감이 내일(%s)이에요! 잊지 말고 글을 제출해주세요 ✍️\n힘들면 `!패스` 로 넘길 수도 있어요",
			round.Number, common.FormatDate(round.DueDate),
		))
		sent++
	}

	log.WithFields(log.Fields{
		"round": round.Number,
		"sent":  sent,
	}).Info("[CRON] 마감 리마인더 전송")
	return nil
}

// AnnounceSeasonEnd 는 시즌 종료를 공지 채널에 한 번 알린다.
func (s *Scheduler) AnnounceSeasonEnd() {
	if s.seasonEndNotified || !s.sched.IsOver(s.clock()) {
		return
	}
	s.seasonEndNotified = true

	s.sendToChannel(s.noticeChannelID,
		"🎊 이번 시즌의 모든 회차가 끝났어요! 참여해주신 모든 분들 수고 많으셨어요.\n`!점수표` 로 최종 순위를 확인해보세요 🏆")
	log.Info("[CRON] 시즌 종료 공지 전송")
}
