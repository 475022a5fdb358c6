// Package ranking — service.go 는 회차 경계를 계산해 저장소 조회와
// 순수 정렬(resolver)을 이어 붙인다.
package ranking

import (
	"context"
	"time"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

// Service 는 채널 순위를 계산한다.
type Service struct {
	repo  *Repository
	sched *schedule.Schedule
}

// NewService 는 새 순위 서비스를 만든다.
func NewService(repo *Repository, sched *schedule.Schedule) *Service {
	return &Service{repo: repo, sched: sched}
}

// TopRanked 는 채널의 이번 회차 1~3등을 반환한다.
func (s *Service) TopRanked(ctx context.Context, channelID string, now time.Time) ([]Entry, error) {
	round, err := s.sched.CurrentRound(now)
	if err != nil {
		return nil, err
	}

	// 회차 기간 (시작 열림, 끝 닫힘)을 자정 기준 반개구간으로 바꾼다:
	// [직전 마감일 다음날 00:00, 마감일 다음날 00:00)
	end := common.DateOf(round.DueDate).AddDate(0, 0, 1)
	var start time.Time
	if round.Number > 1 {
		start = common.DateOf(s.sched.DueDates()[round.Number-2]).AddDate(0, 0, 1)
	}

	entries, err := s.repo.ChannelSubmissions(ctx, channelID, start, end)
	if err != nil {
		return nil, err
	}
	return TopRanked(entries), nil
}

// RankOf 는 멤버의 이번 회차 채널 순위(1~3)를 반환한다. 순위 밖이면 0.
func (s *Service) RankOf(ctx context.Context, channelID, memberID string, now time.Time) (int, error) {
	ranked, err := s.TopRanked(ctx, channelID, now)
	if err != nil {
		return 0, err
	}
	return RankOf(ranked, memberID), nil
}
